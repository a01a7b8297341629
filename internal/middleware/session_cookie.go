package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie reads and writes the session token cookie.
type SessionCookie struct {
	Name   string
	Secure bool
}

func NewSessionCookie(name string, secure bool) SessionCookie {
	if name == "" {
		name = "sessionid"
	}
	return SessionCookie{Name: name, Secure: secure}
}

func (s SessionCookie) Read(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.Name)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s SessionCookie) Set(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt) / time.Second)
	if maxAge < 1 {
		maxAge = 1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, maxAge, "/", "", s.Secure, true)
}

func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}
