package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookups struct {
	projects map[uint]models.Project
	assigned map[[2]uint]bool
	err      error
}

func (f *fakeLookups) Project(ctx context.Context, id uint) (models.Project, error) {
	if f.err != nil {
		return models.Project{}, f.err
	}
	p, ok := f.projects[id]
	if !ok {
		return models.Project{}, apperrors.ErrNotFound
	}
	return p, nil
}

func (f *fakeLookups) HasActiveAssignment(ctx context.Context, employeeID, projectID uint) (bool, error) {
	return f.assigned[[2]uint{employeeID, projectID}], nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	employee = Actor{UserID: 10, Username: "PEREZJ"}
	today    = date(2025, 3, 1)
)

func newLookups(status models.ProjectStatus) *fakeLookups {
	end := date(2024, 12, 31)
	return &fakeLookups{
		projects: map[uint]models.Project{
			1: {ID: 1, Name: "P", StartDate: date(2024, 1, 1), EndDate: &end, Status: status},
		},
		assigned: map[[2]uint]bool{{10, 1}: true},
	}
}

func TestValidateTimeEntry_Scenario(t *testing.T) {
	ctx := context.Background()

	// в пределах проекта — принимается
	v, errs, err := ValidateTimeEntry(ctx, employee,
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "8", Description: " daily "},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	require.True(t, errs.Empty(), errs.Error())
	assert.Equal(t, uint(10), v.EmployeeID)
	assert.Equal(t, uint(1), v.ProjectID)
	assert.Equal(t, date(2024, 6, 15), v.Date)
	assert.Equal(t, "8", v.Hours.String())
	assert.Equal(t, "daily", v.Description)

	// после окончания проекта
	_, errs, err = ValidateTimeEntry(ctx, employee,
		TimeEntryForm{ProjectID: "1", Date: "2025-01-05", Hours: "8"},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	assert.Equal(t, []string{"La fecha no puede ser posterior a la finalizacion del proyecto (31/12/2024)."}, errs.For("date"))

	// проект завершён
	_, errs, err = ValidateTimeEntry(ctx, employee,
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "8"},
		newLookups(models.StatusFinished), today)
	require.NoError(t, err)
	assert.Equal(t, []string{msgProjectFinished}, errs.For("project_id"))
}

func TestValidateTimeEntry_ClosedProjectsAlwaysRejected(t *testing.T) {
	for status, msg := range map[models.ProjectStatus]string{
		models.StatusFinished:  msgProjectFinished,
		models.StatusCancelled: msgProjectCancelled,
	} {
		_, errs, err := ValidateTimeEntry(context.Background(), employee,
			TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "8"},
			newLookups(status), today)
		require.NoError(t, err)
		assert.Contains(t, errs.For("project_id"), msg)
	}

	// пауза не закрывает проект
	_, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "8"},
		newLookups(models.StatusPaused), today)
	require.NoError(t, err)
	assert.True(t, errs.Empty())
}

func TestValidateTimeEntry_FutureDateAlwaysRejected(t *testing.T) {
	lk := newLookups(models.StatusActive)
	lk.projects[1] = models.Project{ID: 1, StartDate: date(2024, 1, 1), Status: models.StatusActive}

	for _, d := range []string{"2025-03-02", "2026-01-01", "2099-12-31"} {
		_, errs, err := ValidateTimeEntry(context.Background(), employee,
			TimeEntryForm{ProjectID: "1", Date: d, Hours: "1"}, lk, today)
		require.NoError(t, err)
		assert.Contains(t, errs.For("date"), msgFutureDate, d)
	}

	// сегодня можно
	_, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "1", Date: "2025-03-01", Hours: "1"}, lk, today.Add(23*time.Hour))
	require.NoError(t, err)
	assert.True(t, errs.Empty(), errs.Error())
}

func TestValidateTimeEntry_BeforeStart(t *testing.T) {
	_, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "1", Date: "2023-12-31", Hours: "2"},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	assert.Equal(t, []string{"La fecha no puede ser anterior al inicio del proyecto (01/01/2024)."}, errs.For("date"))
}

func TestValidateTimeEntry_CollectsAllErrors(t *testing.T) {
	lk := newLookups(models.StatusCancelled)
	lk.assigned = nil
	other := Actor{UserID: 99}

	_, errs, err := ValidateTimeEntry(context.Background(), other,
		TimeEntryForm{ProjectID: "1", Date: "2025-06-01", Hours: "0"}, lk, today)
	require.NoError(t, err)

	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	// статус, будущее, после окончания, назначение, часы
	assert.Equal(t, []string{"project_id", "date", "date", "project_id", "hours"}, fields)
	assert.Equal(t, msgProjectCancelled, errs[0].Message)
	assert.Equal(t, msgFutureDate, errs[1].Message)
	assert.Equal(t, msgNotAssigned, errs[3].Message)
	assert.Equal(t, msgHoursPositive, errs[4].Message)
}

func TestValidateTimeEntry_Hours(t *testing.T) {
	for raw, want := range map[string]string{
		"0":       msgHoursPositive,
		"-3":      msgHoursPositive,
		"abc":     msgInvalidNumber,
		"":        msgRequired,
		"1000":    tooManyDigits(hoursIntDigits),
		"999.999": tooManyDigits(hoursIntDigits),
	} {
		_, errs, err := ValidateTimeEntry(context.Background(), employee,
			TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: raw},
			newLookups(models.StatusActive), today)
		require.NoError(t, err)
		assert.Equal(t, []string{want}, errs.For("hours"), raw)
	}

	v, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "999.99"},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	assert.True(t, errs.Empty(), errs.Error())
	assert.Equal(t, "999.99", v.Hours.StringFixed(2))
}

func TestValidateTimeEntry_UnknownProjectAndStaff(t *testing.T) {
	_, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "42", Date: "2024-06-15", Hours: "1"},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	assert.Equal(t, []string{msgInvalidChoice}, errs.For("project_id"))

	_, errs, err = ValidateTimeEntry(context.Background(), Actor{UserID: 1, Staff: true},
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "1"},
		newLookups(models.StatusActive), today)
	require.NoError(t, err)
	assert.Equal(t, []string{msgStaffCannotLog}, errs.For(NonField))
}

func TestValidateTimeEntry_LookupFailure(t *testing.T) {
	boom := errors.New("connection reset")
	lk := &fakeLookups{err: boom}

	_, errs, err := ValidateTimeEntry(context.Background(), employee,
		TimeEntryForm{ProjectID: "1", Date: "2024-06-15", Hours: "1"}, lk, today)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, errs)
}
