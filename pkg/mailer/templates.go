package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var emailTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PasswordResetEmail is the data for the reset link email.
type PasswordResetEmail struct {
	Username string
	ResetURL string
	ValidFor time.Duration
	Year     int
}

// RenderPasswordResetEmail renders the HTML body of the reset link email.
func RenderPasswordResetEmail(data PasswordResetEmail) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var body bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&body, "password_reset.html", struct {
		PasswordResetEmail
		ValidForHours int
	}{
		PasswordResetEmail: data,
		ValidForHours:      int(data.ValidFor / time.Hour),
	}); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}
