package models

import "strings"

// EmployeeProfile — расширение пользователя 1:1, части имени раздельно
type EmployeeProfile struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"uniqueIndex;not null"`

	FirstName     string `gorm:"size:150;not null"`
	SecondName    string `gorm:"size:150"`
	FirstSurname  string `gorm:"size:150;not null"`
	SecondSurname string `gorm:"size:150"`
}

func (p EmployeeProfile) FullName() string {
	parts := []string{p.FirstName, p.SecondName, p.FirstSurname, p.SecondSurname}
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}
