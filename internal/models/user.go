package models

import (
	"strings"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStaff    UserRole = "staff"    // администратор
	RoleEmployee UserRole = "employee" // сотрудник, пишет часы
)

type User struct {
	gorm.Model
	Username     string   `gorm:"uniqueIndex;size:150;not null"`
	Email        string   `gorm:"size:254"`
	FirstName    string   `gorm:"size:150"`
	LastName     string   `gorm:"size:150"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null"`

	Profile *EmployeeProfile
}

func (u User) IsStaff() bool {
	return u.Role == RoleStaff
}

// FullName — для списков и отчётов; если имени нет, показываем логин
func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
