package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/model"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/pkg/util"
)

// Context keys for session information
const (
	UserIDKey        = "user_id"
	CurrentUserKey   = "current_user"
	SessionClaimsKey = "session_claims"
)

// LoginPath is where anonymous visitors of protected pages are sent.
const LoginPath = "/login/"

// SessionAuthenticator resolves a session token to its user.
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, *util.SessionClaims, error)
}

type AuthMiddleware struct {
	auth   SessionAuthenticator
	cookie SessionCookie
}

func NewAuthMiddleware(auth SessionAuthenticator, cookie SessionCookie) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		cookie: cookie,
	}
}

// LoadSession attaches the signed-in user, if any, and always continues.
// A dead session cookie is cleared.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := m.resolve(c); err != nil {
			GetLoggerFromContext(c).Error("Failed to load session", err)
		}
		c.Next()
	}
}

// RequireSession sends anonymous visitors to the login page with a next parameter.
func (m *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		user, err := m.resolve(c)
		if err != nil {
			log.Error("Failed to load session", err)
			apperrors.InternalError(c, "")
			return
		}
		if user == nil {
			log.Debug("Anonymous request to protected page", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolve returns the session user or nil for anonymous requests. Errors are
// infrastructure failures only.
func (m *AuthMiddleware) resolve(c *gin.Context) (*model.User, error) {
	if user, ok := GetCurrentUser(c); ok {
		return user, nil
	}

	token, ok := m.cookie.Read(c)
	if !ok {
		return nil, nil
	}

	user, claims, err := m.auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindAuthentication) {
			GetLoggerFromContext(c).Debug("Session rejected", map[string]interface{}{
				"reason": err.Error(),
			})
			m.cookie.Clear(c)
			return nil, nil
		}
		return nil, err
	}

	SetSession(c, user, claims)
	return user, nil
}

// SetSession records the signed-in user on the request.
func SetSession(c *gin.Context, user *model.User, claims *util.SessionClaims) {
	c.Set(UserIDKey, user.ID)
	c.Set(CurrentUserKey, user)
	c.Set(SessionClaimsKey, claims)
}

// GetUserID extracts user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetCurrentUser extracts the signed-in user from context
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// GetSessionClaims extracts the session claims from context
func GetSessionClaims(c *gin.Context) (*util.SessionClaims, bool) {
	v, exists := c.Get(SessionClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*util.SessionClaims)
	return claims, ok && claims != nil
}
