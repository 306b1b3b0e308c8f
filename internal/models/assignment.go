package models

import (
	"errors"
	"time"
)

type AssignmentRole string

const (
	AssignmentDeveloper AssignmentRole = "DEV"
	AssignmentPM        AssignmentRole = "PM"
	AssignmentQA        AssignmentRole = "QA"
	AssignmentOther     AssignmentRole = "OTR"
)

var AssignmentRoles = []AssignmentRole{
	AssignmentDeveloper,
	AssignmentPM,
	AssignmentQA,
	AssignmentOther,
}

func (r AssignmentRole) Valid() bool {
	switch r {
	case AssignmentDeveloper, AssignmentPM, AssignmentQA, AssignmentOther:
		return true
	}
	return false
}

func (r AssignmentRole) Label() string {
	switch r {
	case AssignmentDeveloper:
		return "Desarrollador"
	case AssignmentPM:
		return "Project Manager"
	case AssignmentQA:
		return "QA"
	case AssignmentOther:
		return "Otro"
	}
	return string(r)
}

var ErrAlreadyWithdrawn = errors.New("assignment already withdrawn")

// AssignmentState — либо Active, либо Withdrawn с датой снятия.
// В БД это одна колонка withdrawn_at: NULL = активно.
type AssignmentState interface {
	assignmentState()
}

type Active struct{}

type Withdrawn struct {
	On time.Time
}

func (Active) assignmentState()    {}
func (Withdrawn) assignmentState() {}

// Assignment никогда не удаляется: снятие с проекта = Withdraw.
// Частичный уникальный индекс держит не более одной активной записи на пару.
type Assignment struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	EmployeeID uint `gorm:"not null;uniqueIndex:idx_assignments_active_pair,where:withdrawn_at IS NULL"`
	Employee   User

	ProjectID uint `gorm:"not null;index;uniqueIndex:idx_assignments_active_pair,where:withdrawn_at IS NULL"`
	Project   Project

	Role        AssignmentRole `gorm:"type:varchar(3);not null;default:DEV"`
	AssignedAt  time.Time      `gorm:"not null"`
	WithdrawnAt *time.Time
}

func (a Assignment) State() AssignmentState {
	if a.WithdrawnAt == nil {
		return Active{}
	}
	return Withdrawn{On: *a.WithdrawnAt}
}

func (a Assignment) IsActive() bool {
	_, ok := a.State().(Active)
	return ok
}

// Withdraw — единственный переход Active -> Withdrawn
func (a *Assignment) Withdraw(at time.Time) error {
	if !a.IsActive() {
		return ErrAlreadyWithdrawn
	}
	a.WithdrawnAt = &at
	return nil
}
