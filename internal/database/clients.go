package database

import (
	"context"
	"errors"
	"fmt"

	"hours-tracker/internal/models"
	"hours-tracker/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := DB.WithContext(ctx).Order("name asc").Find(&clients).Error
	return clients, err
}

// GetClient — клиент вместе с проектами
func GetClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	err := DB.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB { return db.Order("name asc") }).
		First(&client, id).Error
	if err != nil {
		return nil, notFound(err, "client", id)
	}
	return &client, nil
}

// SaveClient создаёт (id == 0) или обновляет клиента.
// Проверка RFC и запись идут в одной транзакции; если дубль поймал уникальный индекс,
// форма получает то же сообщение, что и от предпроверки.
func SaveClient(ctx context.Context, actor validation.Actor, id uint, form validation.ClientForm) (*models.Client, validation.Errors, error) {
	var (
		client models.Client
		errs   validation.Errors
	)

	err := DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if id != 0 {
			if err := tx.First(&client, id).Error; err != nil {
				return notFound(err, "client", id)
			}
		}

		values, verrs, err := validation.ValidateClient(ctx, form, id, NewLookups(tx))
		if err != nil {
			return err
		}
		if !verrs.Empty() {
			errs = verrs
			return errRejected
		}

		client.Name = values.Name
		client.TaxID = values.TaxID
		client.Address = values.Address
		client.Email = values.Email
		client.Phone = values.Phone

		action := "Creó el cliente: "
		if id == 0 {
			err = tx.Create(&client).Error
		} else {
			err = tx.Omit(clause.Associations).Save(&client).Error
			action = "Actualizó el cliente: "
		}
		if err != nil {
			return err
		}
		return logActivity(tx, actor.UserID, action+client.Name, "client", client.ID)
	})

	switch {
	case err == nil:
		return &client, nil, nil
	case errors.Is(err, errRejected):
		return nil, errs, nil
	case IsUniqueViolation(err):
		return nil, validation.DuplicateTaxID(), nil
	default:
		return nil, nil, fmt.Errorf("save client: %w", err)
	}
}

// DeleteClient — физическое удаление клиента со всеми проектами
func DeleteClient(ctx context.Context, actor validation.Actor, id uint) error {
	return DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, id).Error; err != nil {
			return notFound(err, "client", id)
		}

		var projects []models.Project
		if err := tx.Where("client_id = ?", id).Find(&projects).Error; err != nil {
			return err
		}
		for i := range projects {
			if err := deleteProjectTx(tx, &projects[i]); err != nil {
				return err
			}
		}

		if err := tx.Delete(&client).Error; err != nil {
			return fmt.Errorf("delete client %d: %w", id, err)
		}
		return logActivity(tx, actor.UserID, "Eliminó el cliente: "+client.Name, "client", client.ID)
	})
}
