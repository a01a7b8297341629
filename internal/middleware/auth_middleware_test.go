package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnhub/learnhub-backend/internal/app/model"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSessionRejected = apperrors.Authentication(apperrors.AuthSessionInvalid, "Please log in to continue.")

type fakeAuthenticator struct {
	users map[string]*model.User
	err   error
	calls int
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*model.User, *util.SessionClaims, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	user, ok := f.users[token]
	if !ok {
		return nil, nil, errSessionRejected
	}
	return user, &util.SessionClaims{UserID: user.ID, Username: user.Username}, nil
}

func setupMiddlewareTest() (*gin.Engine, *fakeAuthenticator, *AuthMiddleware) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	auth := &fakeAuthenticator{
		users: map[string]*model.User{
			"good-token": {ID: 7, Username: "alice", Email: "alice@example.com"},
		},
	}
	return router, auth, NewAuthMiddleware(auth, NewSessionCookie("", false))
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoadSession(t *testing.T) {
	tests := []struct {
		name        string
		cookie      string
		wantUser    string
		wantCleared bool
	}{
		{name: "anonymous", cookie: ""},
		{name: "valid session", cookie: "good-token", wantUser: "alice"},
		{name: "dead session", cookie: "stale-token", wantCleared: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, authMiddleware := setupMiddlewareTest()
			router.GET("/test", authMiddleware.LoadSession(), func(c *gin.Context) {
				name := ""
				if user, ok := GetCurrentUser(c); ok {
					name = user.Username
				}
				c.String(http.StatusOK, name)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sessionid", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantUser, w.Body.String())

			cleared := findCookie(w, "sessionid")
			if tt.wantCleared {
				require.NotNil(t, cleared)
				assert.Empty(t, cleared.Value)
				assert.True(t, cleared.MaxAge < 0)
			} else {
				assert.Nil(t, cleared)
			}
		})
	}
}

func TestLoadSession_InfrastructureErrorStillServesPage(t *testing.T) {
	router, auth, authMiddleware := setupMiddlewareTest()
	auth.err = errors.New("database is down")

	router.GET("/test", authMiddleware.LoadSession(), func(c *gin.Context) {
		_, ok := GetCurrentUser(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, findCookie(w, "sessionid"))
}

func TestRequireSession_RedirectsAnonymous(t *testing.T) {
	router, _, authMiddleware := setupMiddlewareTest()
	router.GET("/dashboard/", authMiddleware.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/?tab=courses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Fdashboard%2F%3Ftab%3Dcourses", w.Header().Get("Location"))
}

func TestRequireSession_AllowsSignedIn(t *testing.T) {
	router, _, authMiddleware := setupMiddlewareTest()
	router.GET("/dashboard/", authMiddleware.RequireSession(), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		require.True(t, ok)
		claims, ok := GetSessionClaims(c)
		require.True(t, ok)
		assert.Equal(t, userID, claims.UserID)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireSession_ReusesLoadedSession(t *testing.T) {
	router, auth, authMiddleware := setupMiddlewareTest()
	router.Use(authMiddleware.LoadSession())
	router.GET("/dashboard/", authMiddleware.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, auth.calls)
}

func TestRequireSession_InfrastructureError(t *testing.T) {
	router, auth, authMiddleware := setupMiddlewareTest()
	auth.err = errors.New("redis unavailable")
	router.GET("/dashboard/", authMiddleware.RequireSession(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "sessionid", Value: "good-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSessionCookie_SetAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cookie := NewSessionCookie("custom", true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	cookie.Set(c, "abc", time.Now().Add(time.Hour))

	set := findCookie(w, "custom")
	require.NotNil(t, set)
	assert.Equal(t, "abc", set.Value)
	assert.True(t, set.HttpOnly)
	assert.True(t, set.Secure)
	assert.InDelta(t, 3600, set.MaxAge, 2)
	assert.Equal(t, http.SameSiteLaxMode, set.SameSite)
}
