package mailer

import (
	"context"
	"sync"
)

// SentMessage is one message captured by a Recorder.
type SentMessage struct {
	Subject string
	Body    string
	From    string
	To      []string
}

// Recorder keeps sent messages in memory. It backs tests and can be given an
// error to simulate a failing relay.
type Recorder struct {
	mu       sync.Mutex
	messages []SentMessage
	Err      error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(ctx context.Context, subject, body, from string, to []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.messages = append(r.messages, SentMessage{
		Subject: subject,
		Body:    body,
		From:    from,
		To:      append([]string(nil), to...),
	})
	return nil
}

// Messages returns a copy of everything sent so far.
func (r *Recorder) Messages() []SentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentMessage(nil), r.messages...)
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
