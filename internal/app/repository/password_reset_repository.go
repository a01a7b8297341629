package repository

import (
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

// PasswordResetRepository stores the audit trail of issued reset links.
type PasswordResetRepository interface {
	Create(audit *model.PasswordResetAudit) error
	FindByUserID(userID uint) ([]model.PasswordResetAudit, error)
	MarkConsumedForUser(userID uint, at time.Time) (int64, error)
	DeleteExpiredBefore(cutoff time.Time) (int64, error)
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(audit *model.PasswordResetAudit) error {
	logger.Debug("Creating password reset audit in database", map[string]interface{}{
		"user_id": audit.UserID,
	})

	if err := r.db.Create(audit).Error; err != nil {
		logger.Error("Failed to create password reset audit in database", err, map[string]interface{}{
			"user_id": audit.UserID,
		})
		return err
	}

	logger.Debug("Password reset audit created in database", map[string]interface{}{
		"id":      audit.ID,
		"user_id": audit.UserID,
	})
	return nil
}

func (r *passwordResetRepository) FindByUserID(userID uint) ([]model.PasswordResetAudit, error) {
	var audits []model.PasswordResetAudit
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&audits).Error; err != nil {
		logger.Error("Failed to find password reset audits in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return audits, nil
}

// MarkConsumedForUser stamps every open audit row of the user.
func (r *passwordResetRepository) MarkConsumedForUser(userID uint, at time.Time) (int64, error) {
	logger.Debug("Marking password reset audits as consumed in database", map[string]interface{}{
		"user_id": userID,
	})

	result := r.db.Model(&model.PasswordResetAudit{}).
		Where("user_id = ? AND consumed_at IS NULL", userID).
		Update("consumed_at", at)
	if result.Error != nil {
		logger.Error("Failed to mark password reset audits as consumed in database", result.Error, map[string]interface{}{
			"user_id": userID,
		})
		return 0, result.Error
	}

	logger.Debug("Password reset audits marked as consumed in database", map[string]interface{}{
		"user_id": userID,
		"count":   result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *passwordResetRepository) DeleteExpiredBefore(cutoff time.Time) (int64, error) {
	logger.Debug("Deleting expired password reset audits from database", map[string]interface{}{
		"cutoff": cutoff,
	})

	result := r.db.Where("expires_at < ?", cutoff).Delete(&model.PasswordResetAudit{})
	if result.Error != nil {
		logger.Error("Failed to delete expired password reset audits from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Expired password reset audits deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
