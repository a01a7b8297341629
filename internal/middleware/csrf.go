package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFormField  = "csrfmiddlewaretoken"
	CSRFHeader     = "X-CSRF-Token"

	csrfKey          = "csrf_token"
	csrfTokenBytes   = 32
	csrfCookieMaxAge = 365 * 24 * 60 * 60
)

// CSRFFailedMessage is shown when a form post does not carry the cookie token.
const CSRFFailedMessage = "CSRF verification failed. Request aborted."

// CSRFMiddleware issues a per-browser token cookie and rejects unsafe requests whose
// form field or header does not echo it.
func CSRFMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookieToken, err := c.Cookie(CSRFCookieName)
		if err != nil || !validCSRFToken(cookieToken) {
			cookieToken = ""
		}

		if !isSafeMethod(c.Request.Method) {
			sent := c.GetHeader(CSRFHeader)
			if sent == "" {
				sent = c.PostForm(CSRFFormField)
			}
			if cookieToken == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(cookieToken)) != 1 {
				GetLoggerFromContext(c).Warn("CSRF check failed", map[string]interface{}{
					"path":       c.Request.URL.Path,
					"has_cookie": cookieToken != "",
				})
				apperrors.Forbidden(c, apperrors.AuthCSRFFailed, CSRFFailedMessage)
				return
			}
		}

		if cookieToken == "" {
			cookieToken = newCSRFToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CSRFCookieName, cookieToken, csrfCookieMaxAge, "/", "", secure, true)
		}
		c.Set(csrfKey, cookieToken)
		c.Next()
	}
}

// CSRFToken is the token forms on this request must post back.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfKey)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func validCSRFToken(token string) bool {
	if len(token) != csrfTokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

func newCSRFToken() string {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		panic("csrf: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(b)
}
