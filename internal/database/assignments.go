package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"gorm.io/gorm"
)

// AssignableProjects — проекты, где у сотрудника нет активного назначения
func AssignableProjects(ctx context.Context, employeeID uint) ([]models.Project, error) {
	active := DB.Model(&models.Assignment{}).
		Select("project_id").
		Where("employee_id = ? AND withdrawn_at IS NULL", employeeID)

	var projects []models.Project
	err := DB.WithContext(ctx).
		Preload("Client").
		Where("id NOT IN (?)", active).
		Order("name asc").
		Find(&projects).Error
	return projects, err
}

// EmployeeAssignments — все назначения сотрудника, включая снятые
func EmployeeAssignments(ctx context.Context, employeeID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := DB.WithContext(ctx).
		Preload("Project").
		Where("employee_id = ?", employeeID).
		Order("assigned_at desc").
		Order("id desc").
		Find(&assignments).Error
	return assignments, err
}

// CreateAssignment назначает сотрудника на проект.
// Предпроверка и вставка в одной транзакции; решающее слово за частичным
// уникальным индексом — его нарушение возвращается как та же ошибка формы.
func CreateAssignment(ctx context.Context, actor validation.Actor, employeeID uint, form validation.AssignmentForm, now time.Time) (*models.Assignment, validation.Errors, error) {
	values, errs := validation.ValidateAssignment(form)
	if !errs.Empty() {
		return nil, errs, nil
	}

	var assignment models.Assignment
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.User
		if err := tx.Where("role = ?", models.RoleEmployee).First(&employee, employeeID).Error; err != nil {
			return notFound(err, "employee", employeeID)
		}

		var project models.Project
		if err := tx.First(&project, values.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = validation.InvalidChoice("project_id")
				return errRejected
			}
			return err
		}

		active, err := NewLookups(tx).HasActiveAssignment(ctx, employeeID, project.ID)
		if err != nil {
			return err
		}
		if active {
			errs = validation.DuplicateAssignment()
			return errRejected
		}

		assignment = models.Assignment{
			EmployeeID: employee.ID,
			ProjectID:  project.ID,
			Role:       values.Role,
			AssignedAt: now,
		}
		if err := tx.Omit("Employee", "Project").Create(&assignment).Error; err != nil {
			return err
		}
		assignment.Employee = employee
		assignment.Project = project

		return logActivity(tx, actor.UserID,
			fmt.Sprintf("Asignó a %s al proyecto: %s", employee.Username, project.Name),
			"project", project.ID)
	})

	switch {
	case err == nil:
		return &assignment, nil, nil
	case errors.Is(err, errRejected):
		return nil, errs, nil
	case IsUniqueViolation(err):
		return nil, validation.DuplicateAssignment(), nil
	default:
		return nil, nil, fmt.Errorf("create assignment: %w", err)
	}
}

// WithdrawAssignment снимает сотрудника с проекта: Active -> Withdrawn(now).
// Запись не удаляется. Повторное снятие — apperrors.ErrNotAssigned.
func WithdrawAssignment(ctx context.Context, actor validation.Actor, assignmentID uint, now time.Time) (*models.Assignment, error) {
	var assignment models.Assignment
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Employee").Preload("Project").First(&assignment, assignmentID).Error; err != nil {
			return notFound(err, "assignment", assignmentID)
		}
		if err := assignment.Withdraw(now); err != nil {
			return apperrors.ErrNotAssigned
		}

		// условие в WHERE закрывает гонку двух одновременных снятий
		res := tx.Model(&models.Assignment{}).
			Where("id = ? AND withdrawn_at IS NULL", assignment.ID).
			Update("withdrawn_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrNotAssigned
		}

		return logActivity(tx, actor.UserID,
			fmt.Sprintf("Desasignó a %s del proyecto: %s", assignment.Employee.Username, assignment.Project.Name),
			"project", assignment.ProjectID)
	})
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
