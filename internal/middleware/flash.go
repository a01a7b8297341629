package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Notice levels
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

const (
	flashCookieName = "messages"
	flashKey        = "flashes"
	flashCookieKey  = "flashes_cookie"
	maxFlashes      = 10
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// FlashMiddleware loads notices carried over from the previous response.
func FlashMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var pending []Flash
		if raw, err := c.Cookie(flashCookieName); err == nil && raw != "" {
			pending = decodeFlashes(raw)
			c.Set(flashCookieKey, true)
		}
		c.Set(flashKey, pending)
		c.Next()
	}
}

// AddFlash queues a notice. It survives a redirect until a page renders it.
func AddFlash(c *gin.Context, level, text string) {
	pending := append(pendingFlashes(c), Flash{Level: level, Text: text})
	if len(pending) > maxFlashes {
		pending = pending[len(pending)-maxFlashes:]
	}
	c.Set(flashKey, pending)
	writeFlashCookie(c, encodeFlashes(pending), 0)
}

// ConsumeFlashes returns queued notices and forgets them. Call before writing the body.
func ConsumeFlashes(c *gin.Context) []Flash {
	pending := pendingFlashes(c)
	c.Set(flashKey, []Flash(nil))
	if len(pending) > 0 || c.GetBool(flashCookieKey) {
		writeFlashCookie(c, "", -1)
		c.Set(flashCookieKey, false)
	}
	return pending
}

func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashKey); ok {
		if flashes, ok := v.([]Flash); ok {
			return flashes
		}
	}
	return nil
}

// writeFlashCookie replaces any Set-Cookie for the flash cookie already queued on
// this response, so only the latest state reaches the browser.
func writeFlashCookie(c *gin.Context, value string, maxAge int) {
	header := c.Writer.Header()
	kept := header.Values("Set-Cookie")[:0:0]
	for _, v := range header.Values("Set-Cookie") {
		if !strings.HasPrefix(v, flashCookieName+"=") {
			kept = append(kept, v)
		}
	}
	header.Del("Set-Cookie")
	for _, v := range kept {
		header.Add("Set-Cookie", v)
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     flashCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func encodeFlashes(flashes []Flash) string {
	data, err := json.Marshal(flashes)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func decodeFlashes(raw string) []Flash {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	if len(flashes) > maxFlashes {
		flashes = flashes[:maxFlashes]
	}
	return flashes
}
