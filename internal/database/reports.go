package database

import (
	"context"
	"fmt"
	"time"

	"hours-tracker/internal/models"
	"hours-tracker/internal/report"
)

// SumHoursByProject — сумма часов по проектам, только проекты с записями
func SumHoursByProject(ctx context.Context, f report.Filter) ([]report.ProjectRow, error) {
	q := DB.WithContext(ctx).Model(&models.TimeEntry{}).
		Select(`projects.id AS project_id,
			projects.name AS project_name,
			clients.name AS client_name,
			projects.status AS status,
			projects.budget_hours AS budget_hours,
			COALESCE(SUM(time_entries.hours), 0) AS hours`).
		Joins("JOIN projects ON projects.id = time_entries.project_id").
		Joins("JOIN clients ON clients.id = projects.client_id")
	q = applyFilter(q, f)

	var rows []report.ProjectRow
	err := q.Group("projects.id, projects.name, clients.name, projects.status, projects.budget_hours").
		Order("projects.name asc").
		Scan(&rows).Error
	return rows, err
}

// SumHoursByEmployee — сумма часов и число записей по сотрудникам
func SumHoursByEmployee(ctx context.Context, f report.Filter) ([]report.EmployeeRow, error) {
	q := DB.WithContext(ctx).Model(&models.TimeEntry{}).
		Select(`users.id AS employee_id,
			users.username AS username,
			users.first_name AS first_name,
			users.last_name AS last_name,
			COALESCE(SUM(time_entries.hours), 0) AS hours,
			COUNT(time_entries.id) AS entries`).
		Joins("JOIN users ON users.id = time_entries.employee_id")
	q = applyFilter(q, f)

	var rows []report.EmployeeRow
	err := q.Group("users.id, users.username, users.first_name, users.last_name").
		Order("users.username asc").
		Scan(&rows).Error
	return rows, err
}

// BuildReport собирает экранный отчёт и выгрузки по одному фильтру
func BuildReport(ctx context.Context, f report.Filter, now time.Time) (*report.Report, error) {
	projects, err := SumHoursByProject(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sum hours by project: %w", err)
	}
	employees, err := SumHoursByEmployee(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("sum hours by employee: %w", err)
	}
	entries, err := ListTimeEntries(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	return &report.Report{
		Filter:      f,
		GeneratedAt: now,
		Projects:    projects,
		Employees:   employees,
		Entries:     entries,
	}, nil
}
