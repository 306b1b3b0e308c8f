package validation

import (
	"strings"
	"time"

	"hours-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	msgStartAfterEnd   = "La fecha inicial no puede ser posterior a la fecha final."
	msgEndBeforeStart  = "La fecha final no puede ser anterior a la fecha inicial."
	msgBudgetPositive  = "Las horas presupuestadas deben ser mayores a 0."
	msgProjectNameSize = "El nombre del proyecto debe tener al menos 3 caracteres."
)

// ProjectForm — сырые значения формы проекта
type ProjectForm struct {
	Name             string   `form:"name"`
	Description      string   `form:"description"`
	StartDate        string   `form:"start_date"`
	EndDate          string   `form:"end_date"`
	BudgetHours      string   `form:"budget_hours"`
	Status           string   `form:"status"`
	ClientID         string   `form:"client_id"`
	AdministratorIDs []string `form:"administrators"`
}

type ProjectValues struct {
	Name             string
	Description      string
	StartDate        time.Time
	EndDate          *time.Time
	BudgetHours      decimal.NullDecimal
	Status           models.ProjectStatus
	ClientID         uint
	AdministratorIDs []uint
}

// ValidateProject проверяет форму проекта. Пустой статус = Activo (форма создания статуса не имеет).
// Переходы между статусами не ограничиваются.
func ValidateProject(f ProjectForm) (ProjectValues, Errors) {
	var errs Errors
	v := ProjectValues{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
	}

	if v.Name == "" {
		errs = errs.with("name", msgRequired)
	} else if len([]rune(v.Name)) < 3 {
		errs = errs.with("name", msgProjectNameSize)
	}

	start, ok := parseDate(f.StartDate)
	switch {
	case !ok:
		errs = errs.with("start_date", msgInvalidDate)
	case start == nil:
		errs = errs.with("start_date", msgRequired)
	default:
		v.StartDate = DateOnly(*start)
	}

	end, ok := parseDate(f.EndDate)
	if !ok {
		errs = errs.with("end_date", msgInvalidDate)
	} else if end != nil {
		d := DateOnly(*end)
		v.EndDate = &d
	}

	if start != nil && v.EndDate != nil && v.StartDate.After(*v.EndDate) {
		errs = errs.with("start_date", msgStartAfterEnd)
		errs = errs.with("end_date", msgEndBeforeStart)
	}

	budget, ok := parseDecimal(f.BudgetHours)
	switch {
	case !ok:
		errs = errs.with("budget_hours", msgInvalidNumber)
	case budget.Valid && !budget.Decimal.IsPositive():
		errs = errs.with("budget_hours", msgBudgetPositive)
	case budget.Valid && !fitsDigits(budget.Decimal, budgetIntDigits):
		errs = errs.with("budget_hours", tooManyDigits(budgetIntDigits))
	default:
		v.BudgetHours = budget
	}

	v.Status = models.ProjectStatus(strings.TrimSpace(f.Status))
	if v.Status == "" {
		v.Status = models.StatusActive
	} else if !v.Status.Valid() {
		errs = errs.with("status", msgInvalidChoice)
	}

	clientID, ok := parseID(f.ClientID)
	if !ok {
		errs = errs.with("client_id", msgInvalidChoice)
	} else if clientID == 0 {
		errs = errs.with("client_id", msgRequired)
	}
	v.ClientID = clientID

	for _, raw := range f.AdministratorIDs {
		id, ok := parseID(raw)
		if !ok {
			errs = errs.with("administrators", msgInvalidChoice)
			break
		}
		if id != 0 {
			v.AdministratorIDs = append(v.AdministratorIDs, id)
		}
	}

	return v, errs
}
