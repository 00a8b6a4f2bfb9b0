package mailer

import (
	"context"

	"github.com/samersoltani/dewini-server/pkg/helpers"
)

// QueueSender publishes jobs to the email queue instead of sending inline.
// The email worker consumes the queue and performs the Mailgun send.
type QueueSender struct {
	Pub *helpers.RabbitPublisher
}

func NewQueueSender(pub *helpers.RabbitPublisher) *QueueSender {
	return &QueueSender{Pub: pub}
}

func (q *QueueSender) Send(ctx context.Context, job EmailJob) error {
	return q.Pub.PublishJSON(ctx, job)
}

var _ Sender = (*QueueSender)(nil)
