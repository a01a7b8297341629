package mailer

import (
	"context"
)

// Mailer delivers a single transactional message. Implementations must be safe
// for concurrent use.
type Mailer interface {
	Send(ctx context.Context, subject, body, from string, to []string) error
}
