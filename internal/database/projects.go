package database

import (
	"context"
	"errors"
	"fmt"

	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectFilter struct {
	ClientID uint
	Status   models.ProjectStatus
}

func ListProjects(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	q := DB.WithContext(ctx).Preload("Client").Order("name asc")
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var projects []models.Project
	err := q.Find(&projects).Error
	return projects, err
}

func GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := DB.WithContext(ctx).
		Preload("Client").
		Preload("Administrators").
		First(&project, id).Error
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return &project, nil
}

// SaveProject создаёт (id == 0) или обновляет проект
func SaveProject(ctx context.Context, actor validation.Actor, id uint, form validation.ProjectForm) (*models.Project, validation.Errors, error) {
	values, errs := validation.ValidateProject(form)
	if !errs.Empty() {
		return nil, errs, nil
	}

	var project models.Project
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id != 0 {
			if err := tx.First(&project, id).Error; err != nil {
				return notFound(err, "project", id)
			}
		}

		var client models.Client
		if err := tx.First(&client, values.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs = validation.InvalidChoice("client_id")
				return errRejected
			}
			return err
		}

		var admins []models.User
		if len(values.AdministratorIDs) > 0 {
			if err := tx.Where("id IN ? AND role = ?", values.AdministratorIDs, models.RoleStaff).
				Find(&admins).Error; err != nil {
				return err
			}
			if len(admins) != len(uniqueIDs(values.AdministratorIDs)) {
				errs = validation.InvalidChoice("administrators")
				return errRejected
			}
		}

		project.Name = values.Name
		project.Description = values.Description
		project.StartDate = values.StartDate
		project.EndDate = values.EndDate
		project.BudgetHours = values.BudgetHours
		project.ClientID = client.ID
		if id == 0 {
			project.Status = models.StatusActive
		} else {
			project.Status = values.Status
		}

		action := "Creó el proyecto: "
		var err error
		if id == 0 {
			err = tx.Omit(clause.Associations).Create(&project).Error
		} else {
			err = tx.Omit(clause.Associations).Save(&project).Error
			action = "Actualizó el proyecto: "
		}
		if err != nil {
			return err
		}

		assoc := tx.Model(&project).Association("Administrators")
		if len(admins) == 0 {
			err = assoc.Clear()
		} else {
			err = assoc.Replace(admins)
		}
		if err != nil {
			return fmt.Errorf("set administrators: %w", err)
		}
		project.Client = client
		project.Administrators = admins

		return logActivity(tx, actor.UserID, action+project.Name, "project", project.ID)
	})

	switch {
	case err == nil:
		return &project, nil, nil
	case errors.Is(err, errRejected):
		return nil, errs, nil
	default:
		return nil, nil, fmt.Errorf("save project: %w", err)
	}
}

// DeleteProject — физическое удаление вместе с часами и назначениями
func DeleteProject(ctx context.Context, actor validation.Actor, id uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			return notFound(err, "project", id)
		}
		if err := deleteProjectTx(tx, &project); err != nil {
			return err
		}
		return logActivity(tx, actor.UserID, "Eliminó el proyecto: "+project.Name, "project", project.ID)
	})
}

// deleteProjectTx — каскад явно, не полагаясь на ON DELETE CASCADE конкретной БД
func deleteProjectTx(tx *gorm.DB, project *models.Project) error {
	if err := tx.Where("project_id = ?", project.ID).Delete(&models.TimeEntry{}).Error; err != nil {
		return fmt.Errorf("delete time entries of project %d: %w", project.ID, err)
	}
	if err := tx.Where("project_id = ?", project.ID).Delete(&models.Assignment{}).Error; err != nil {
		return fmt.Errorf("delete assignments of project %d: %w", project.ID, err)
	}
	if err := tx.Model(project).Association("Administrators").Clear(); err != nil {
		return fmt.Errorf("clear administrators of project %d: %w", project.ID, err)
	}
	if err := tx.Delete(project).Error; err != nil {
		return fmt.Errorf("delete project %d: %w", project.ID, err)
	}
	return nil
}

// ProjectsForTimeEntry — проекты, куда сотрудник может писать часы:
// активное назначение и проект не закрыт
func ProjectsForTimeEntry(ctx context.Context, employeeID uint) ([]models.Project, error) {
	active := DB.Model(&models.Assignment{}).
		Select("project_id").
		Where("employee_id = ? AND withdrawn_at IS NULL", employeeID)

	var projects []models.Project
	err := DB.WithContext(ctx).
		Preload("Client").
		Where("id IN (?)", active).
		Order("name asc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}

	open := projects[:0]
	for _, p := range projects {
		if p.Status.AcceptsHours() {
			open = append(open, p)
		}
	}
	return open, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
