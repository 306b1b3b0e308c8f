package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProjectStatus string

const (
	StatusActive    ProjectStatus = "ACT"
	StatusPaused    ProjectStatus = "PAU"
	StatusFinished  ProjectStatus = "FIN"
	StatusCancelled ProjectStatus = "CAN"
)

// ProjectStatuses — порядок для выпадающих списков
var ProjectStatuses = []ProjectStatus{
	StatusActive,
	StatusPaused,
	StatusFinished,
	StatusCancelled,
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

func (s ProjectStatus) Label() string {
	switch s {
	case StatusActive:
		return "Activo"
	case StatusPaused:
		return "Pausado"
	case StatusFinished:
		return "Finalizado"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// AcceptsHours — в закрытые проекты часы не пишутся
func (s ProjectStatus) AcceptsHours() bool {
	return s != StatusFinished && s != StatusCancelled
}

type Project struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	ClientID uint `gorm:"not null;index"`
	Client   Client

	Name        string              `gorm:"size:200;not null"`
	Description string              `gorm:"type:text"`
	StartDate   time.Time           `gorm:"type:date;not null"`
	EndDate     *time.Time          `gorm:"type:date"`
	BudgetHours decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Status      ProjectStatus       `gorm:"type:varchar(3);not null;default:ACT"`

	Administrators []User       `gorm:"many2many:project_administrators"`
	TimeEntries    []TimeEntry  `gorm:"constraint:OnDelete:CASCADE"`
	Assignments    []Assignment `gorm:"constraint:OnDelete:CASCADE"`
}
