package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/config"
	"hours-tracker/internal/logger"
	"hours-tracker/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "modernc.org/sqlite" // pure Go SQLite, без CGO
)

var DB *gorm.DB

// Models — порядок миграции
var Models = []interface{}{
	&models.User{},
	&models.EmployeeProfile{},
	&models.Client{},
	&models.Project{},
	&models.Assignment{},
	&models.TimeEntry{},
	&models.ActivityLog{},
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// NewGorm — общий gorm.Config для любого диалекта; ошибки драйвера переводятся в gorm.Err*
func NewGorm(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormLogLevel(logLevel)),
		TranslateError: true,
	})
}

// Open открывает соединение без миграций и сидинга
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case "sqlite":
		return openSQLite(cfg.DSN, cfg.LogLevel)
	default:
		db, err := NewGorm(postgres.New(postgres.Config{DSN: cfg.DSN}), cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		return db, nil
	}
}

func openSQLite(path, logLevel string) (*gorm.DB, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
	}
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// sqlite пишет одним писателем
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewGorm(sqlite.Dialector{DriverName: "sqlite", Conn: sqlDB}, logLevel)
}

// Migrate — AutoMigrate всех моделей
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// Init — подключение с повторами, миграции, дефолтный администратор
func Init(cfg *config.Config) error {
	log := logger.GetLogger()

	attempts := cfg.DB.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		log.Info("connecting to DB", zap.Int("attempt", i), zap.Int("max_attempts", attempts), zap.String("driver", cfg.DB.Driver))

		DB, err = Open(cfg.DB)
		if err == nil {
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		if i < attempts {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return fmt.Errorf("connect to db after %d attempts: %w", attempts, err)
	}
	log.Info("connected to DB")

	if err := Migrate(DB); err != nil {
		return err
	}

	return EnsureStaff(cfg.Admin.Username, cfg.Admin.Password)
}

// EnsureStaff создаёт администратора, если в системе нет ни одного
func EnsureStaff(username, password string) error {
	log := logger.GetLogger()

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleStaff).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check staff user: %w", err)
	}
	if count > 0 {
		// администратор уже есть
		return nil
	}

	if _, err := CreateStaff(username, password); err != nil {
		return err
	}
	log.Info("created default staff user", zap.String("username", username))
	return nil
}

// CreateStaff — администратор из CLI/конфига (через веб администраторов не заводят)
func CreateStaff(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash staff password: %w", err)
	}
	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleStaff,
	}
	if err := DB.Create(&user).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, fmt.Errorf("create staff %q: %w", username, apperrors.ErrDuplicateUsername)
		}
		return nil, fmt.Errorf("create staff %q: %w", username, err)
	}
	return &user, nil
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
