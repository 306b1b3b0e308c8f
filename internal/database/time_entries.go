package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hours-tracker/internal/models"
	"hours-tracker/internal/report"
	"hours-tracker/internal/validation"

	"gorm.io/gorm"
)

// SaveTimeEntry — проверка и запись в одной транзакции; при отказе ничего не пишется
func SaveTimeEntry(ctx context.Context, actor validation.Actor, form validation.TimeEntryForm, today time.Time) (*models.TimeEntry, validation.Errors, error) {
	var (
		entry models.TimeEntry
		errs  validation.Errors
	)

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		values, verrs, err := validation.ValidateTimeEntry(ctx, actor, form, NewLookups(tx), today)
		if err != nil {
			return err
		}
		if !verrs.Empty() {
			errs = verrs
			return errRejected
		}

		entry = models.TimeEntry{
			EmployeeID:  values.EmployeeID,
			ProjectID:   values.ProjectID,
			Date:        values.Date,
			Hours:       values.Hours,
			Description: values.Description,
		}
		if err := tx.Omit("Employee", "Project").Create(&entry).Error; err != nil {
			return err
		}
		return logActivity(tx, actor.UserID,
			fmt.Sprintf("Registró %s horas el %s", entry.Hours.StringFixed(2), entry.Date.Format(validation.DisplayDateLayout)),
			"project", entry.ProjectID)
	})

	switch {
	case err == nil:
		return &entry, nil, nil
	case errors.Is(err, errRejected):
		return nil, errs, nil
	default:
		return nil, nil, fmt.Errorf("save time entry: %w", err)
	}
}

// EmployeeTimeEntries — «мои часы»
func EmployeeTimeEntries(ctx context.Context, employeeID uint) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := DB.WithContext(ctx).
		Preload("Project.Client").
		Where("employee_id = ?", employeeID).
		Order("date desc").
		Order("id desc").
		Find(&entries).Error
	return entries, err
}

// ListTimeEntries — все записи с фильтрами отчёта
func ListTimeEntries(ctx context.Context, f report.Filter) ([]models.TimeEntry, error) {
	q := DB.WithContext(ctx).
		Preload("Employee").
		Preload("Project.Client")
	q = applyFilter(q, f)

	var entries []models.TimeEntry
	err := q.Order("time_entries.date desc").Order("time_entries.id desc").Find(&entries).Error
	return entries, err
}

// applyFilter — условия по time_entries; клиент через подзапрос, без JOIN
func applyFilter(q *gorm.DB, f report.Filter) *gorm.DB {
	if f.EmployeeID != 0 {
		q = q.Where("time_entries.employee_id = ?", f.EmployeeID)
	}
	if f.ProjectID != 0 {
		q = q.Where("time_entries.project_id = ?", f.ProjectID)
	}
	if f.ClientID != 0 {
		q = q.Where("time_entries.project_id IN (?)",
			DB.Model(&models.Project{}).Select("id").Where("client_id = ?", f.ClientID))
	}
	if f.From != nil {
		q = q.Where("time_entries.date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("time_entries.date <= ?", *f.To)
	}
	return q
}
