package testhelpers

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"hours-tracker/internal/config"
	"hours-tracker/internal/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

const postgresImage = "postgres:16-alpine"

var (
	sharedPostgresDSN  string
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error
)

// NewPostgresDB returns a migrated database on a shared PostgreSQL container.
// Tables are emptied before each test. Skipped with -short (requires Docker).
func NewPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPostgresOnce.Do(func() {
		sharedPostgresDSN, sharedPostgresErr = startPostgres()
	})
	if sharedPostgresErr != nil {
		t.Fatalf("Failed to setup postgres container: %v", sharedPostgresErr)
	}

	db, err := database.Open(config.DBConfig{
		Driver:       "postgres",
		DSN:          sharedPostgresDSN,
		LogLevel:     "silent",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	err = db.Exec(`TRUNCATE activity_logs, time_entries, assignments, project_administrators,
		projects, clients, employee_profiles, users RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate postgres: %v", err)
	}

	Install(t, db)
	return db
}

func startPostgres() (string, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "hours",
			"POSTGRES_USER":     "hours",
			"POSTGRES_PASSWORD": "test_password",
		},
		// postgres перезапускается после initdb, ждём второе сообщение
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return "", fmt.Errorf("failed to get container port: %w", err)
	}

	return fmt.Sprintf("postgres://hours:test_password@%s:%s/hours?sslmode=disable", host, port.Port()), nil
}
