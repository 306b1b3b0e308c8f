package database

import (
	"context"
	"errors"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"gorm.io/gorm"
)

// Lookups — read-only запросы для валидации. Внутри транзакции создаётся от tx,
// чтобы предпроверка и запись шли в одной транзакции.
type Lookups struct {
	db *gorm.DB
}

func NewLookups(db *gorm.DB) Lookups {
	return Lookups{db: db}
}

var (
	_ validation.TimeEntryLookups = Lookups{}
	_ validation.ClientLookups    = Lookups{}
)

func (l Lookups) Project(ctx context.Context, id uint) (models.Project, error) {
	var p models.Project
	err := l.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, apperrors.ErrNotFound
	}
	return p, err
}

func (l Lookups) HasActiveAssignment(ctx context.Context, employeeID, projectID uint) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("employee_id = ? AND project_id = ? AND withdrawn_at IS NULL", employeeID, projectID).
		Count(&count).Error
	return count > 0, err
}

// TaxIDTaken — без учёта регистра, кроме клиента excludeID
func (l Lookups) TaxIDTaken(ctx context.Context, taxID string, excludeID uint) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Model(&models.Client{}).
		Where("UPPER(tax_id) = UPPER(?) AND id <> ?", taxID, excludeID).
		Count(&count).Error
	return count > 0, err
}

// UsernameExists учитывает и мягко удалённых пользователей: уникальный индекс их тоже видит
func (l Lookups) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Unscoped().Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// HasActiveAssignment — предпроверка вне транзакции (для UX, не как защита от гонок)
func HasActiveAssignment(ctx context.Context, employeeID, projectID uint) (bool, error) {
	return NewLookups(DB).HasActiveAssignment(ctx, employeeID, projectID)
}
