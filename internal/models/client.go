package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Client удаляется физически (без soft delete), вместе с проектами
type Client struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Name    string `gorm:"size:200;not null"`
	TaxID   string `gorm:"size:13;uniqueIndex;not null"` // RFC, всегда в верхнем регистре
	Address string `gorm:"type:text"`
	Email   string `gorm:"size:100"`
	Phone   string `gorm:"size:20"`

	Projects []Project `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave — второй рубеж: уникальный индекс работает по нормализованному RFC,
// даже если запись пришла в обход формы
func (c *Client) BeforeSave(tx *gorm.DB) error {
	c.TaxID = strings.ToUpper(strings.TrimSpace(c.TaxID))
	return nil
}
