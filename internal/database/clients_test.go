package database_test

import (
	"context"
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

func clientForm(name, taxID string) validation.ClientForm {
	return validation.ClientForm{
		Name:    name,
		TaxID:   taxID,
		Address: "Av. Reforma 1",
		Email:   "contacto@example.com",
		Phone:   "5512345678",
	}
}

func TestSaveClientDuplicateTaxID(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	actor := validation.ActorFromUser(*testhelpers.Staff(t, db, "admin"))

	c, errs, err := database.SaveClient(ctx, actor, 0, clientForm("Acme", "abc-010203-xy1"))
	require.NoError(t, err)
	require.True(t, errs.Empty(), errs.Error())
	assert.Equal(t, "ABC010203XY1", c.TaxID)

	// отличается только регистром и пунктуацией
	dup, errs, err := database.SaveClient(ctx, actor, 0, clientForm("Acme 2", "ABC 010203 XY1"))
	require.NoError(t, err)
	assert.Nil(t, dup)
	assert.True(t, errs.Has("tax_id"))

	// редактирование самого себя дублем не считается
	c.Name = "Acme SA"
	updated, errs, err := database.SaveClient(ctx, actor, c.ID, clientForm("Acme SA", "abc010203xy1"))
	require.NoError(t, err)
	require.True(t, errs.Empty(), errs.Error())
	assert.Equal(t, "Acme SA", updated.Name)

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSaveClientUniqueIndexIsAuthoritative(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	testhelpers.Client(t, db, "Acme", "ABC010203XY1")

	// в обход предпроверки
	err := db.Create(&models.Client{Name: "Other", TaxID: "abc010203xy1"}).Error
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))
}

func TestDeleteClientCascades(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	ctx := context.Background()
	admin := testhelpers.Staff(t, db, "admin")
	actor := validation.ActorFromUser(*admin)

	emp := testhelpers.Employee(t, db, "PEREZJ")
	client := testhelpers.Client(t, db, "Acme", "ABC010203XY1")
	other := testhelpers.Client(t, db, "Globex", "GLO010203AB2")
	p1 := testhelpers.Project(t, db, client, "Portal", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	p2 := testhelpers.Project(t, db, other, "ERP", testhelpers.Date(2024, 1, 1), time.Time{}, models.StatusActive)
	require.NoError(t, db.Model(p1).Association("Administrators").Append(admin))
	testhelpers.Assign(t, db, emp, p1)
	testhelpers.Assign(t, db, emp, p2)
	testhelpers.Entry(t, db, emp, p1, testhelpers.Date(2024, 2, 1), "4")
	testhelpers.Entry(t, db, emp, p2, testhelpers.Date(2024, 2, 1), "2")

	require.NoError(t, database.DeleteClient(ctx, actor, client.ID))

	_, err := database.GetClient(ctx, client.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var projects, entries, assignments int64
	require.NoError(t, db.Model(&models.Project{}).Count(&projects).Error)
	require.NoError(t, db.Model(&models.TimeEntry{}).Count(&entries).Error)
	require.NoError(t, db.Model(&models.Assignment{}).Count(&assignments).Error)
	assert.Equal(t, int64(1), projects)
	assert.Equal(t, int64(1), entries)
	assert.Equal(t, int64(1), assignments)

	assert.ErrorIs(t, database.DeleteClient(ctx, actor, client.ID), apperrors.ErrNotFound)
}
