package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/learnhub/learnhub-backend/pkg/mailer"
	"github.com/learnhub/learnhub-backend/pkg/util"
	"gorm.io/gorm"
)

const PasswordResetSubject = "Password Reset Request"

// ResetRequest is a forgot-password submission.
type ResetRequest struct {
	Email     string
	BaseURL   string // scheme://host the link is built on
	RequestIP string
}

// ResetLink is what was mailed out.
type ResetLink struct {
	UserID    uint
	UID       string
	Token     string
	URL       string
	ExpiresAt time.Time
}

type PasswordResetOptions struct {
	FromEmail      string
	AuditRetention time.Duration
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, req ResetRequest) (*ResetLink, error)
	CheckResetLink(uid, token string) (*model.User, bool, error)
	ResetPassword(ctx context.Context, uid, token, password, confirmPassword string) error
	PurgeAudit(ctx context.Context) (int64, error)
}

type passwordResetService struct {
	userRepo  repository.UserRepository
	resetRepo repository.PasswordResetRepository
	tokens    *ResetTokenGenerator
	mail      mailer.Mailer
	opts      PasswordResetOptions
	now       func() time.Time
}

func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	tokens *ResetTokenGenerator,
	mail mailer.Mailer,
	opts PasswordResetOptions,
) PasswordResetService {
	if opts.FromEmail == "" {
		opts.FromEmail = "from@example.com"
	}
	return &passwordResetService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		tokens:    tokens,
		mail:      mail,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, req ResetRequest) (*ResetLink, error) {
	email := strings.TrimSpace(req.Email)
	logger.Info("Processing password reset request", map[string]interface{}{
		"email":      email,
		"request_ip": req.RequestIP,
	})

	if email == "" {
		return nil, ErrEmailNotRegistered
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unregistered email", map[string]interface{}{
				"email": email,
			})
			return nil, ErrEmailNotRegistered
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	uid := util.EncodeUID(user.ID)
	token := s.tokens.MakeToken(user)
	link := &ResetLink{
		UserID:    user.ID,
		UID:       uid,
		Token:     token,
		URL:       fmt.Sprintf("%s/reset-password/%s/%s/", strings.TrimRight(req.BaseURL, "/"), uid, token),
		ExpiresAt: s.now().Add(s.tokens.Timeout()),
	}

	// audit only; token validity never reads it
	audit := &model.PasswordResetAudit{
		UserID:    user.ID,
		Email:     user.Email,
		RequestIP: req.RequestIP,
		ExpiresAt: link.ExpiresAt,
	}
	if err := s.resetRepo.Create(audit); err != nil {
		logger.Error("Failed to record password reset audit", err, map[string]interface{}{
			"user_id": user.ID,
		})
	}

	body, err := mailer.RenderPasswordResetEmail(mailer.PasswordResetEmail{
		Username: user.Username,
		ResetURL: link.URL,
		ValidFor: s.tokens.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render password reset email: %w", err)
	}

	if err := s.mail.Send(ctx, PasswordResetSubject, body, s.opts.FromEmail, []string{user.Email}); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Info("Password reset link sent", map[string]interface{}{
		"user_id":    user.ID,
		"expires_at": link.ExpiresAt,
	})
	return link, nil
}

// CheckResetLink resolves uid and verifies token. An undecodable uid or an unknown
// user is reported as an invalid link, not as an error.
func (s *passwordResetService) CheckResetLink(uid, token string) (*model.User, bool, error) {
	user, err := s.resolveUser(uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, s.tokens.CheckToken(user, token), nil
}

// ResetPassword re-verifies the link on every submission before looking at the
// passwords, so a stale link cannot be probed through the mismatch path.
func (s *passwordResetService) ResetPassword(ctx context.Context, uid, token, password, confirmPassword string) error {
	user, err := s.resolveUser(uid)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			logger.Warn("Password reset for unknown user", nil)
		}
		return err
	}

	if !s.tokens.CheckToken(user, token) {
		logger.Warn("Password reset with invalid or expired link", map[string]interface{}{
			"user_id": user.ID,
		})
		return ErrInvalidResetLink
	}

	if password != confirmPassword {
		return ErrPasswordMismatch
	}
	if password == "" {
		return ErrPasswordRequired
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update password: %w", err)
	}

	if _, err := s.resetRepo.MarkConsumedForUser(user.ID, s.now()); err != nil {
		logger.Error("Failed to mark password reset audits as consumed", err, map[string]interface{}{
			"user_id": user.ID,
		})
		// Don't return error as password was already updated
	}

	logger.Info("Password reset successful", map[string]interface{}{
		"user_id": user.ID,
	})
	return nil
}

// PurgeAudit deletes audit rows whose links expired before the retention window.
func (s *passwordResetService) PurgeAudit(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.opts.AuditRetention)
	deleted, err := s.resetRepo.DeleteExpiredBefore(cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge password reset audits: %w", err)
	}

	logger.Info("Password reset audits purged", map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff,
	})
	return deleted, nil
}

func (s *passwordResetService) resolveUser(uid string) (*model.User, error) {
	id, err := util.DecodeUID(uid)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}
