package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"

	"github.com/samersoltani/dewini-server/pkg/mailer/templates"
)

// Mailgun sends directly through the Mailgun API. Used standalone when no
// queue is configured, and by the email worker to drain the queue.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

func (m *Mailgun) Send(ctx context.Context, job EmailJob) error {
	subject, text := job.Subject, job.Text
	if job.Template != "" {
		s, t, err := templates.Render(job.Template, job.Data)
		if err != nil {
			return err
		}
		subject, text = s, t
	}

	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, job.To)
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

var _ Sender = (*Mailgun)(nil)
