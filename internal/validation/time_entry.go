package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/models"

	"github.com/shopspring/decimal"
)

const (
	msgProjectFinished  = "No puedes registrar horas en un proyecto finalizado."
	msgProjectCancelled = "No puedes registrar horas en un proyecto cancelado."
	msgFutureDate       = "No puedes registrar horas en fechas futuras."
	msgBeforeStart      = "La fecha no puede ser anterior al inicio del proyecto (%s)."
	msgAfterEnd         = "La fecha no puede ser posterior a la finalizacion del proyecto (%s)."
	msgNotAssigned      = "No tienes asignacion activa a este proyecto."
	msgHoursPositive    = "Las horas deben ser mayores a 0."
	msgStaffCannotLog   = "Solo los empleados pueden registrar horas."
)

// Actor — кто выполняет действие; передаётся явно, без глобального «текущего пользователя»
type Actor struct {
	UserID   uint
	Username string
	Staff    bool
}

func ActorFromUser(u models.User) Actor {
	return Actor{UserID: u.ID, Username: u.Username, Staff: u.IsStaff()}
}

type TimeEntryForm struct {
	ProjectID   string `form:"project_id"`
	Date        string `form:"date"`
	Hours       string `form:"hours"`
	Description string `form:"description"`
}

type TimeEntryValues struct {
	EmployeeID  uint
	ProjectID   uint
	Date        time.Time
	Hours       decimal.Decimal
	Description string
}

// TimeEntryLookups — read-only доступ к хранилищу.
// Project возвращает apperrors.ErrNotFound, если проекта нет.
type TimeEntryLookups interface {
	Project(ctx context.Context, id uint) (models.Project, error)
	HasActiveAssignment(ctx context.Context, employeeID, projectID uint) (bool, error)
}

// ValidateTimeEntry собирает все ошибки сразу, не останавливаясь на первой.
// Порядок: статус проекта, дата в будущем, до начала, после окончания, назначение, часы.
// Третье значение — только ошибки инфраструктуры (lookups), не валидации.
func ValidateTimeEntry(ctx context.Context, actor Actor, f TimeEntryForm, lk TimeEntryLookups, today time.Time) (TimeEntryValues, Errors, error) {
	var errs Errors
	v := TimeEntryValues{
		EmployeeID:  actor.UserID,
		Description: strings.TrimSpace(f.Description),
	}
	today = DateOnly(today)

	if actor.Staff {
		errs = errs.with(NonField, msgStaffCannotLog)
	}

	var project *models.Project
	projectID, ok := parseID(f.ProjectID)
	switch {
	case !ok:
		errs = errs.with("project_id", msgInvalidChoice)
	case projectID == 0:
		errs = errs.with("project_id", msgRequired)
	default:
		p, err := lk.Project(ctx, projectID)
		if errors.Is(err, apperrors.ErrNotFound) {
			errs = errs.with("project_id", msgInvalidChoice)
		} else if err != nil {
			return v, nil, fmt.Errorf("lookup project %d: %w", projectID, err)
		} else {
			project = &p
			v.ProjectID = p.ID
		}
	}

	date, ok := parseDate(f.Date)
	switch {
	case !ok:
		errs = errs.with("date", msgInvalidDate)
	case date == nil:
		errs = errs.with("date", msgRequired)
	default:
		v.Date = DateOnly(*date)
	}
	hasDate := ok && date != nil

	// 1. закрытый проект
	if project != nil && !project.Status.AcceptsHours() {
		if project.Status == models.StatusCancelled {
			errs = errs.with("project_id", msgProjectCancelled)
		} else {
			errs = errs.with("project_id", msgProjectFinished)
		}
	}

	// 2. будущее запрещено
	if hasDate && v.Date.After(today) {
		errs = errs.with("date", msgFutureDate)
	}

	if project != nil && hasDate {
		// 3-4. окно проекта
		start := DateOnly(project.StartDate)
		if v.Date.Before(start) {
			errs = errs.with("date", fmt.Sprintf(msgBeforeStart, start.Format(DisplayDateLayout)))
		}
		if project.EndDate != nil {
			end := DateOnly(*project.EndDate)
			if v.Date.After(end) {
				errs = errs.with("date", fmt.Sprintf(msgAfterEnd, end.Format(DisplayDateLayout)))
			}
		}
	}

	// 5. активное назначение
	if project != nil && !actor.Staff {
		assigned, err := lk.HasActiveAssignment(ctx, actor.UserID, project.ID)
		if err != nil {
			return v, nil, fmt.Errorf("lookup assignment: %w", err)
		}
		if !assigned {
			errs = errs.with("project_id", msgNotAssigned)
		}
	}

	// 6. часы, независимо от остального
	hours, ok := parseDecimal(f.Hours)
	switch {
	case !ok:
		errs = errs.with("hours", msgInvalidNumber)
	case !hours.Valid:
		errs = errs.with("hours", msgRequired)
	case !hours.Decimal.IsPositive():
		errs = errs.with("hours", msgHoursPositive)
	case !fitsDigits(hours.Decimal, hoursIntDigits):
		errs = errs.with("hours", tooManyDigits(hoursIntDigits))
	default:
		v.Hours = hours.Decimal
	}

	return v, errs, nil
}
