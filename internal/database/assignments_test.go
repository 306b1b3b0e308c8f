package database_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/database"
	"hours-tracker/internal/models"
	"hours-tracker/internal/testhelpers"
	"hours-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignmentForm(p *models.Project) validation.AssignmentForm {
	return validation.AssignmentForm{ProjectID: strconv.FormatUint(uint64(p.ID), 10), Role: "QA"}
}

func TestCreateAssignment(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()

	admin := testhelpers.Staff(t, db, "admin")
	emp := testhelpers.Employee(t, db, "PEREZJ")
	client := testhelpers.Client(t, db, "Acme", "ABC010203XY1")
	project := testhelpers.Project(t, db, client, "Portal", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	actor := validation.ActorFromUser(*admin)

	a, errs, err := database.CreateAssignment(ctx, actor, emp.ID, assignmentForm(project), time.Now())
	require.NoError(t, err)
	require.True(t, errs.Empty())
	assert.Equal(t, models.AssignmentQA, a.Role)
	assert.True(t, a.IsActive())

	t.Run("second active assignment is rejected by the pre-check", func(t *testing.T) {
		a2, errs, err := database.CreateAssignment(ctx, actor, emp.ID, assignmentForm(project), time.Now())
		require.NoError(t, err)
		assert.Nil(t, a2)
		assert.Equal(t, validation.DuplicateAssignment(), errs)
	})

	t.Run("direct insert is rejected by the partial unique index", func(t *testing.T) {
		dup := models.Assignment{EmployeeID: emp.ID, ProjectID: project.ID, Role: models.AssignmentPM, AssignedAt: time.Now()}
		err := db.Omit("Employee", "Project").Create(&dup).Error
		require.Error(t, err)
		assert.True(t, database.IsUniqueViolation(err))
	})

	t.Run("unknown project", func(t *testing.T) {
		_, errs, err := database.CreateAssignment(ctx, actor, emp.ID, validation.AssignmentForm{ProjectID: "999"}, time.Now())
		require.NoError(t, err)
		assert.True(t, errs.Has("project_id"))
	})

	t.Run("staff user cannot be assigned", func(t *testing.T) {
		_, _, err := database.CreateAssignment(ctx, actor, admin.ID, assignmentForm(project), time.Now())
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestCreateAssignmentConcurrent(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()

	admin := testhelpers.Staff(t, db, "admin")
	emp := testhelpers.Employee(t, db, "PEREZJ")
	client := testhelpers.Client(t, db, "Acme", "ABC010203XY1")
	project := testhelpers.Project(t, db, client, "Portal", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	actor := validation.ActorFromUser(*admin)

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		success  int
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs, err := database.CreateAssignment(ctx, actor, emp.ID, assignmentForm(project), time.Now())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				t.Errorf("unexpected error: %v", err)
			case errs.Empty():
				success++
			case errs.Has("project_id"):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, rejected)

	var count int64
	require.NoError(t, db.Model(&models.Assignment{}).Where("withdrawn_at IS NULL").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithdrawAndReassign(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()

	admin := testhelpers.Staff(t, db, "admin")
	emp := testhelpers.Employee(t, db, "PEREZJ")
	client := testhelpers.Client(t, db, "Acme", "ABC010203XY1")
	project := testhelpers.Project(t, db, client, "Portal", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	actor := validation.ActorFromUser(*admin)

	first := testhelpers.Assign(t, db, emp, project)

	assignable, err := database.AssignableProjects(ctx, emp.ID)
	require.NoError(t, err)
	assert.Empty(t, assignable)

	withdrawnAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w, err := database.WithdrawAssignment(ctx, actor, first.ID, withdrawnAt)
	require.NoError(t, err)
	state, ok := w.State().(models.Withdrawn)
	require.True(t, ok)
	assert.True(t, state.On.Equal(withdrawnAt))

	_, err = database.WithdrawAssignment(ctx, actor, first.ID, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotAssigned)

	_, err = database.WithdrawAssignment(ctx, actor, 12345, time.Now())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	active, err := database.HasActiveAssignment(ctx, emp.ID, project.ID)
	require.NoError(t, err)
	assert.False(t, active)

	assignable, err = database.AssignableProjects(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, assignable, 1)

	// после снятия можно назначить снова; история сохраняется
	_, errs, err := database.CreateAssignment(ctx, actor, emp.ID, assignmentForm(project), time.Now())
	require.NoError(t, err)
	require.True(t, errs.Empty())

	all, err := database.EmployeeAssignments(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsActive())
	assert.False(t, all[1].IsActive())
	assert.Equal(t, "Portal", all[0].Project.Name)
}
