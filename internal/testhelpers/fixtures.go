package testhelpers

import (
	"testing"
	"time"

	"hours-tracker/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "secret123"

var passwordHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

func create(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("create fixture %T: %v", v, err)
	}
}

func Staff(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, PasswordHash: passwordHash, Role: models.RoleStaff}
	create(t, db, u)
	return u
}

func Employee(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		FirstName:    "Juan",
		LastName:     "Pérez",
		PasswordHash: passwordHash,
		Role:         models.RoleEmployee,
		Profile:      &models.EmployeeProfile{FirstName: "Juan", FirstSurname: "Pérez"},
	}
	create(t, db, u)
	return u
}

func Client(t *testing.T, db *gorm.DB, name, taxID string) *models.Client {
	t.Helper()
	c := &models.Client{Name: name, TaxID: taxID, Email: "contacto@example.com", Phone: "5512345678"}
	create(t, db, c)
	return c
}

// Project — проект клиента с периодом start..end (end может быть нулевым)
func Project(t *testing.T, db *gorm.DB, client *models.Client, name string, start, end time.Time, status models.ProjectStatus) *models.Project {
	t.Helper()
	p := &models.Project{
		ClientID:    client.ID,
		Name:        name,
		StartDate:   start,
		BudgetHours: decimal.NewNullDecimal(decimal.NewFromInt(100)),
		Status:      status,
	}
	if !end.IsZero() {
		p.EndDate = &end
	}
	if err := db.Omit("Client", "Administrators").Create(p).Error; err != nil {
		t.Fatalf("create fixture project: %v", err)
	}
	return p
}

func Assign(t *testing.T, db *gorm.DB, employee *models.User, project *models.Project) *models.Assignment {
	t.Helper()
	a := &models.Assignment{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		Role:       models.AssignmentDeveloper,
		AssignedAt: time.Now(),
	}
	if err := db.Omit("Employee", "Project").Create(a).Error; err != nil {
		t.Fatalf("create fixture assignment: %v", err)
	}
	return a
}

func Entry(t *testing.T, db *gorm.DB, employee *models.User, project *models.Project, date time.Time, hours string) *models.TimeEntry {
	t.Helper()
	e := &models.TimeEntry{
		EmployeeID: employee.ID,
		ProjectID:  project.ID,
		Date:       date,
		Hours:      decimal.RequireFromString(hours),
	}
	if err := db.Omit("Employee", "Project").Create(e).Error; err != nil {
		t.Fatalf("create fixture time entry: %v", err)
	}
	return e
}
