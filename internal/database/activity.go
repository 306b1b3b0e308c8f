package database

import (
	"context"

	"hours-tracker/internal/logger"
	"hours-tracker/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityLimit — сколько последних записей показывает журнал
const ActivityLimit = 100

// LogActivity — запись в журнал действий; сбой журнала не отменяет основную операцию
func LogActivity(ctx context.Context, userID uint, action, entity string, entityID uint) {
	if DB == nil {
		return
	}
	if err := logActivity(DB.WithContext(ctx), userID, action, entity, entityID); err != nil {
		logger.FromContext(ctx).Warn("failed to write activity log",
			zap.Uint("user_id", userID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// logActivity пишет в переданной транзакции: запись журнала откатывается вместе с операцией
func logActivity(tx *gorm.DB, userID uint, action, entity string, entityID uint) error {
	record := models.ActivityLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	return tx.Create(&record).Error
}

// RecentActivity — последние записи, новые сверху
func RecentActivity(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > ActivityLimit {
		limit = ActivityLimit
	}
	var logs []models.ActivityLog
	err := DB.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// EntityHistory — история одной сущности, по возрастанию
func EntityHistory(ctx context.Context, entity string, entityID uint) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := DB.WithContext(ctx).
		Where("entity = ? AND entity_id = ?", entity, entityID).
		Preload("User").
		Order("created_at asc").
		Order("id asc").
		Find(&logs).Error
	return logs, err
}
