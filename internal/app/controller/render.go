package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/learnhub/learnhub-backend/internal/errors"
	"github.com/learnhub/learnhub-backend/internal/middleware"
)

// render writes a page with the pending notices and the signed-in user.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = middleware.ConsumeFlashes(c)
	data["csrf_token"] = middleware.CSRFToken(c)
	if user, ok := middleware.GetCurrentUser(c); ok {
		data["user"] = user
	}
	c.HTML(status, name, data)
}

// redisplay renders the page again with a notice shown right away.
func redisplay(c *gin.Context, name string, level, notice string, data gin.H) {
	middleware.AddFlash(c, level, notice)
	render(c, http.StatusOK, name, data)
}

// redirectWithNotice carries the notice across the redirect.
func redirectWithNotice(c *gin.Context, location, level, notice string) {
	middleware.AddFlash(c, level, notice)
	c.Redirect(http.StatusFound, location)
}

// respondWithError renders an AppError as its notice page, or the 500 page for anything else.
func respondWithError(c *gin.Context, err error, action string) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		apperrors.RespondWithAppError(c, appErr)
		return
	}
	middleware.GetLoggerFromContext(c).Error("Failed to "+action, err)
	apperrors.InternalError(c, "")
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, strconv.IntSize-1)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

var errDisallowedHost = apperrors.Validation(apperrors.ValidationDisallowedHost, "Invalid host header.")

// baseURL is the scheme and host absolute links are built on. A configured public URL
// wins; otherwise the request host must be one of the allowed hosts.
func baseURL(c *gin.Context, publicURL string, allowedHosts []string) (string, error) {
	if publicURL != "" {
		return strings.TrimRight(publicURL, "/"), nil
	}
	if !hostAllowed(c.Request.Host, allowedHosts) {
		return "", errDisallowedHost
	}
	scheme := "http"
	if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host, nil
}

// hostAllowed matches host, port ignored, against exact names, ".example.com"
// suffix patterns or "*".
func hostAllowed(host string, allowed []string) bool {
	name := strings.ToLower(host)
	if h, _, err := net.SplitHostPort(name); err == nil {
		name = h
	}
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		return false
	}

	for _, pattern := range allowed {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		switch {
		case pattern == "*":
			return true
		case strings.HasPrefix(pattern, "."):
			if name == pattern[1:] || strings.HasSuffix(name, pattern) {
				return true
			}
		case name == pattern:
			return true
		}
	}
	return false
}

// safeNext keeps post-login redirects on this site.
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
