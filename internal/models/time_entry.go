package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TimeEntry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	EmployeeID uint `gorm:"not null;index"`
	Employee   User

	ProjectID uint `gorm:"not null;index"`
	Project   Project

	Date        time.Time       `gorm:"type:date;not null;index"`
	Hours       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Description string          `gorm:"type:text"`
}
