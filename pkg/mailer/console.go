package mailer

import (
	"context"
	"strings"

	"github.com/learnhub/learnhub-backend/pkg/logger"
)

// ConsoleMailer writes mail to the log instead of sending it. Used when no SMTP
// relay is configured.
type ConsoleMailer struct{}

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(ctx context.Context, subject, body, from string, to []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger.Info("[DEV MODE] Email not sent, printing instead", map[string]interface{}{
		"from":    from,
		"to":      strings.Join(to, ","),
		"subject": subject,
		"body":    body,
	})
	return nil
}
