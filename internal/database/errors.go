package database

import (
	"errors"
	"fmt"
	"strings"

	"hours-tracker/internal/apperrors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation — ошибка уникального ограничения от любого из поддерживаемых драйверов
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc sqlite не переводится в gorm.ErrDuplicatedKey
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// notFound превращает gorm.ErrRecordNotFound в apperrors.ErrNotFound
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, apperrors.ErrNotFound)
	}
	return fmt.Errorf("load %s %d: %w", what, id, err)
}
