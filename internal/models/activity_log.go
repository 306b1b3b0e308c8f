package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrActivityLogImmutable = errors.New("activity log is append-only")

// ActivityLog — журнал действий пользователей, только добавление
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"<-:create;index"`

	UserID uint `gorm:"<-:create;index"`
	User   User

	Action   string `gorm:"<-:create;type:text;not null"`   // свободный текст
	Entity   string `gorm:"<-:create;size:50"`              // "project", "client", ... (может быть пусто)
	EntityID uint   `gorm:"<-:create"`
}

func (a *ActivityLog) BeforeUpdate(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}

func (a *ActivityLog) BeforeDelete(tx *gorm.DB) error {
	return ErrActivityLogImmutable
}
