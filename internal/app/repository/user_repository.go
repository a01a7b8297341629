package repository

import (
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	CreateWithProfile(user *model.User, profile *model.Profile) error
	FindByID(id uint) (*model.User, error)
	FindByIDWithProfile(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	ExistsByUsername(username string) (bool, error)
	ExistsByEmail(email string) (bool, error)
	UpdatePassword(id uint, passwordHash string) error
	UpdateLastLogin(id uint, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"username": user.Username,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// CreateWithProfile inserts the user and its profile in one transaction.
func (r *userRepository) CreateWithProfile(user *model.User, profile *model.Profile) error {
	logger.Debug("Creating user with profile in database", map[string]interface{}{
		"username": user.Username,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
	if err != nil {
		logger.Error("Failed to create user with profile in database", err, map[string]interface{}{
			"username": user.Username,
		})
		return err
	}

	user.Profile = profile
	logger.Debug("User with profile created in database", map[string]interface{}{
		"user_id":    user.ID,
		"profile_id": profile.ID,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Debug("User found by ID in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &user, nil
}

func (r *userRepository) FindByIDWithProfile(id uint) (*model.User, error) {
	logger.Debug("Finding user by ID with profile in database", map[string]interface{}{
		"user_id": id,
	})

	var user model.User
	if err := r.db.Preload("Profile").First(&user, id).Error; err != nil {
		logger.Error("Failed to find user by ID with profile in database", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}

	logger.Debug("User with profile found by ID in database", map[string]interface{}{
		"user_id":     user.ID,
		"has_profile": user.Profile != nil,
	})
	return &user, nil
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	logger.Debug("Finding user by username in database", map[string]interface{}{
		"username": username,
	})

	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		logger.Error("Failed to find user by username in database", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	logger.Debug("User found by username in database", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return &user, nil
}

// FindByEmail matches the address case-insensitively.
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	normalized := model.NormalizeEmail(email)
	logger.Debug("Finding user by email in database", map[string]interface{}{
		"email": normalized,
	})

	var user model.User
	err := r.db.Where("LOWER(email) = ?", normalized).Order("id").First(&user).Error
	if err != nil {
		logger.Error("Failed to find user by email in database", err, map[string]interface{}{
			"email": normalized,
		})
		return nil, err
	}

	logger.Debug("User found by email in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return &user, nil
}

func (r *userRepository) ExistsByUsername(username string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		logger.Error("Failed to check username in database", err, map[string]interface{}{
			"username": username,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) ExistsByEmail(email string) (bool, error) {
	normalized := model.NormalizeEmail(email)
	var count int64
	if err := r.db.Model(&model.User{}).Where("LOWER(email) = ?", normalized).Count(&count).Error; err != nil {
		logger.Error("Failed to check email in database", err, map[string]interface{}{
			"email": normalized,
		})
		return false, err
	}
	return count > 0, nil
}

// UpdatePassword replaces the stored hash with a single-statement update, so a
// concurrent save of other columns cannot write back a stale hash.
func (r *userRepository) UpdatePassword(id uint, passwordHash string) error {
	logger.Debug("Updating user password in database", map[string]interface{}{
		"user_id": id,
	})

	now := time.Now()
	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":       passwordHash,
		"password_changed_at": now,
		"updated_at":          now,
	})
	if result.Error != nil {
		logger.Error("Failed to update user password in database", result.Error, map[string]interface{}{
			"user_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("User password updated in database", map[string]interface{}{
		"user_id": id,
	})
	return nil
}

func (r *userRepository) UpdateLastLogin(id uint, at time.Time) error {
	logger.Debug("Updating user last login in database", map[string]interface{}{
		"user_id": id,
	})

	if err := r.db.Model(&model.User{}).Where("id = ?", id).
		UpdateColumn("last_login", at).Error; err != nil {
		logger.Error("Failed to update user last login in database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}
