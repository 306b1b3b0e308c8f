// Package report — сводка часов по проектам и сотрудникам, выгрузка в Excel и PDF.
package report

import (
	"strconv"
	"strings"
	"time"

	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Filter — отбор записей для отчёта; нулевое значение = без ограничения
type Filter struct {
	ClientID   uint
	ProjectID  uint
	EmployeeID uint
	From       *time.Time
	To         *time.Time
}

// FilterForm — сырые параметры запроса экрана отчёта
type FilterForm struct {
	Client   string `form:"client"`
	Project  string `form:"project"`
	Employee string `form:"employee"`
	From     string `form:"from"`
	To       string `form:"to"`
	Export   string `form:"export"`
}

// ParseFilter нестрогий: нераспознанные значения просто отбрасываются
func ParseFilter(f FilterForm) Filter {
	return Filter{
		ClientID:   parseUint(f.Client),
		ProjectID:  parseUint(f.Project),
		EmployeeID: parseUint(f.Employee),
		From:       parseDate(f.From),
		To:         parseDate(f.To),
	}
}

func parseUint(raw string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

func parseDate(raw string) *time.Time {
	t, err := time.Parse(validation.DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &t
}

type ProjectRow struct {
	ProjectID   uint
	ProjectName string
	ClientName  string
	Status      models.ProjectStatus
	BudgetHours decimal.NullDecimal
	Hours       decimal.Decimal
}

// Variance — бюджет минус часы; без бюджета Valid=false
func (r ProjectRow) Variance() decimal.NullDecimal {
	if !r.BudgetHours.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(r.BudgetHours.Decimal.Sub(r.Hours))
}

// Consumption — доля израсходованного бюджета, %
func (r ProjectRow) Consumption() decimal.NullDecimal {
	if !r.BudgetHours.Valid || r.BudgetHours.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	pct := r.Hours.Mul(hundred).Div(r.BudgetHours.Decimal).Round(2)
	return decimal.NewNullDecimal(pct)
}

func (r ProjectRow) OverBudget() bool {
	return r.BudgetHours.Valid && r.Hours.GreaterThan(r.BudgetHours.Decimal)
}

type EmployeeRow struct {
	EmployeeID uint
	Username   string
	FirstName  string
	LastName   string
	Hours      decimal.Decimal
	Entries    int64
}

func (r EmployeeRow) FullName() string {
	name := strings.TrimSpace(r.FirstName + " " + r.LastName)
	if name == "" {
		return r.Username
	}
	return name
}

// Report — всё, что рисуют экран отчёта и обе выгрузки
type Report struct {
	Filter      Filter
	GeneratedAt time.Time
	Projects    []ProjectRow
	Employees   []EmployeeRow
	Entries     []models.TimeEntry
}

func (r Report) TotalHours() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Projects {
		total = total.Add(p.Hours)
	}
	return total
}

func (r Report) TotalEntries() int64 {
	var n int64
	for _, e := range r.Employees {
		n += e.Entries
	}
	return n
}

func formatHours(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatNull(d decimal.NullDecimal, suffix string) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(2) + suffix
}
