package mailer

import "context"

// EmailJob is the payload handed to a Sender, and the JSON message put on
// the RabbitMQ queue when queued delivery is configured. Either Subject+Text
// are set directly, or Template+Data name a template to render at send time.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Sender delivers one email. For the queue-backed implementation a
// successful Send only means the job was accepted by the broker.
type Sender interface {
	Send(ctx context.Context, job EmailJob) error
}
