package repository

import (
	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *model.ContactMessage) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *model.ContactMessage) error {
	logger.Debug("Creating contact message in database", map[string]interface{}{
		"email": message.Email,
	})

	if err := r.db.Create(message).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": message.Email,
		})
		return err
	}

	logger.Debug("Contact message created in database", map[string]interface{}{
		"id": message.ID,
	})
	return nil
}
