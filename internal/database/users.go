package database

import (
	"context"
	"errors"
	"fmt"

	"hours-tracker/internal/apperrors"
	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// Authenticate — логин/пароль; неизвестный логин и неверный пароль неразличимы
func Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user %q: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

func ListEmployees(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := DB.WithContext(ctx).
		Preload("Profile").
		Where("role = ?", models.RoleEmployee).
		Order("username asc").
		Find(&users).Error
	return users, err
}

func ListStaff(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := DB.WithContext(ctx).
		Where("role = ?", models.RoleStaff).
		Order("username asc").
		Find(&users).Error
	return users, err
}

func GetEmployee(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).
		Preload("Profile").
		Where("role = ?", models.RoleEmployee).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "employee", id)
	}
	return &user, nil
}

// CreateEmployee заводит сотрудника со сгенерированным логином.
// Гонку двух одинаковых онбордингов ловит уникальный индекс; тогда подбираем логин ещё раз.
func CreateEmployee(ctx context.Context, actor validation.Actor, form validation.EmployeeForm) (*models.User, validation.Errors, error) {
	values, errs := validation.ValidateEmployee(form, true)
	if !errs.Empty() {
		return nil, errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(values.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash employee password: %w", err)
	}

	var user *models.User
	for attempt := 0; attempt < 2; attempt++ {
		user, err = createEmployeeTx(ctx, actor, values, string(hash))
		if err == nil || !IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, nil, fmt.Errorf("create employee: %w", apperrors.ErrDuplicateUsername)
		}
		return nil, nil, fmt.Errorf("create employee: %w", err)
	}
	return user, nil, nil
}

func createEmployeeTx(ctx context.Context, actor validation.Actor, v validation.EmployeeValues, hash string) (*models.User, error) {
	var user models.User
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		username, err := validation.GenerateUsername(ctx, v.FirstName, v.FirstSurname, NewLookups(tx).UsernameExists)
		if err != nil {
			return err
		}

		user = models.User{
			Username:     username,
			Email:        v.Email,
			FirstName:    v.FirstName,
			LastName:     v.FirstSurname,
			PasswordHash: hash,
			Role:         models.RoleEmployee,
			Profile: &models.EmployeeProfile{
				FirstName:     v.FirstName,
				SecondName:    v.SecondName,
				FirstSurname:  v.FirstSurname,
				SecondSurname: v.SecondSurname,
			},
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return logActivity(tx, actor.UserID, "Creó empleado: "+user.Username, "employee", user.ID)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmployee — почта и части имени в User и в профиле; логин и пароль не меняются
func UpdateEmployee(ctx context.Context, actor validation.Actor, id uint, form validation.EmployeeForm) (*models.User, validation.Errors, error) {
	values, errs := validation.ValidateEmployee(form, false)
	if !errs.Empty() {
		return nil, errs, nil
	}

	var user models.User
	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Profile").Where("role = ?", models.RoleEmployee).First(&user, id).Error; err != nil {
			return notFound(err, "employee", id)
		}

		user.Email = values.Email
		user.FirstName = values.FirstName
		user.LastName = values.FirstSurname
		if err := tx.Omit("Profile").Save(&user).Error; err != nil {
			return err
		}

		profile := models.EmployeeProfile{UserID: user.ID}
		if user.Profile != nil {
			profile = *user.Profile
		}
		profile.FirstName = values.FirstName
		profile.SecondName = values.SecondName
		profile.FirstSurname = values.FirstSurname
		profile.SecondSurname = values.SecondSurname
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		user.Profile = &profile

		return logActivity(tx, actor.UserID, "Editó empleado: "+user.Username, "employee", user.ID)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("update employee: %w", err)
	}
	return &user, nil, nil
}

// ChangePassword сверяет текущий пароль и сохраняет новый хеш
func ChangePassword(ctx context.Context, userID uint, form validation.PasswordChangeForm) (validation.Errors, error) {
	user, err := GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	errs := validation.ValidatePasswordChange(form, func(current string) bool {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) == nil
	})
	if !errs.Empty() {
		return errs, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.NewPassword1), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	if err := DB.WithContext(ctx).Model(user).Update("password_hash", string(hash)).Error; err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}
	LogActivity(ctx, user.ID, "Cambió su contraseña", "user", user.ID)
	return nil, nil
}
