package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
	"github.com/learnhub/learnhub-backend/internal/app/repository"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/learnhub/learnhub-backend/pkg/util"
	"gorm.io/gorm"
)

// SessionRevoker remembers logged-out sessions. Optional; without it logout only
// clears the cookie.
type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Session is a signed session token and its claims.
type Session struct {
	Token     string
	Claims    *util.SessionClaims
	ExpiresAt time.Time
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	IsStudent       bool
	IsLecturer      bool
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, *Session, error)
	Logout(ctx context.Context, claims *util.SessionClaims) error
	Authenticate(ctx context.Context, token string) (*model.User, *util.SessionClaims, error)
	GetUserByID(id uint) (*model.User, error)
	ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmPassword string) (*Session, error)
}

type authService struct {
	userRepo      repository.UserRepository
	revoker       SessionRevoker
	sessionSecret string
	sessionExpiry time.Duration
	now           func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	revoker SessionRevoker,
	sessionSecret string,
	sessionExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		revoker:       revoker,
		sessionSecret: sessionSecret,
		sessionExpiry: sessionExpiry,
		now:           time.Now,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	logger.Info("Attempting user registration", map[string]interface{}{
		"username": username,
		"email":    email,
	})

	if username == "" || email == "" || input.Password == "" {
		return nil, ErrFieldsRequired
	}
	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	taken, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		logger.Warn("Registration failed: username already taken", map[string]interface{}{
			"username": username,
		})
		return nil, ErrUsernameTaken
	}

	registered, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if registered {
		logger.Warn("Registration failed: email already registered", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyRegistered
	}

	hashedPassword, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsStudent:    input.IsStudent,
		IsLecturer:   input.IsLecturer,
		IsActive:     true,
	}
	if err := s.userRepo.CreateWithProfile(user, &model.Profile{}); err != nil {
		// lost a uniqueness race against a concurrent registration
		if appErr := apperrors.ParseError(err, "register user"); appErr != nil && appErr.Kind == apperrors.KindConflict {
			return nil, appErr
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":     user.ID,
		"username":    user.Username,
		"is_student":  user.IsStudent,
		"is_lecturer": user.IsLecturer,
	})
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*model.User, *Session, error) {
	username = strings.TrimSpace(username)
	logger.Info("Login attempt", map[string]interface{}{
		"username": username,
	})

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"username": username,
			})
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		logger.Warn("Login failed: inactive account", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrInactiveAccount
	}

	// also invalidates reset links issued before this login
	now := s.now().UTC().Truncate(time.Second)
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, session, nil
}

func (s *authService) Logout(ctx context.Context, claims *util.SessionClaims) error {
	if claims == nil || s.revoker == nil {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(s.now())
	}
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	logger.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})
	return nil
}

// Authenticate resolves a session token to its user. The session dies when the
// user's password hash no longer matches the one it was issued for.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, *util.SessionClaims, error) {
	claims, err := util.ValidateSessionToken(token, s.sessionSecret)
	if err != nil {
		return nil, nil, ErrSessionInvalid
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check session revocation: %w", err)
		}
		if revoked {
			return nil, nil, ErrSessionRevoked
		}
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, fmt.Errorf("failed to load session user: %w", err)
	}

	if !user.IsActive {
		return nil, nil, ErrSessionInvalid
	}
	if !util.SessionAuthHashMatches(util.SessionAuthHash(user.PasswordHash, s.sessionSecret), claims.AuthHash) {
		logger.Debug("Session rejected: password changed since issue", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, ErrSessionInvalid
	}
	return user, claims, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	logger.Debug("Fetching user by ID", map[string]interface{}{
		"user_id": id,
	})

	user, err := s.userRepo.FindByIDWithProfile(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("User not found", map[string]interface{}{
				"user_id": id,
			})
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

// ChangePassword updates the hash and returns a new session bound to it, so the
// caller stays signed in while every other session of the user is dropped.
func (s *authService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirmPassword string) (*Session, error) {
	logger.Info("Processing password change", map[string]interface{}{
		"user_id": userID,
	})

	if newPassword != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !util.VerifyPassword(user.PasswordHash, oldPassword) {
		logger.Warn("Password change failed: old password incorrect", map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, ErrIncorrectOldPassword
	}
	if newPassword == "" {
		return nil, ErrPasswordRequired
	}

	hashedPassword, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash new password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, hashedPassword); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}
	user.PasswordHash = hashedPassword

	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}

	logger.Info("Password changed successfully", map[string]interface{}{
		"user_id": user.ID,
	})
	return session, nil
}

func (s *authService) issueSession(user *model.User) (*Session, error) {
	authHash := util.SessionAuthHash(user.PasswordHash, s.sessionSecret)
	token, claims, err := util.GenerateSessionToken(user.ID, user.Username, authHash, s.sessionSecret, s.sessionExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session: %w", err)
	}
	return &Session{
		Token:     token,
		Claims:    claims,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
