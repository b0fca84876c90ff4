package ports

import "context"

// Mail templates, used as metric labels.
const (
	MailWelcome             = "welcome"
	MailResetCode           = "reset_code"
	MailBookingConfirmation = "booking_confirmation"
)

// MailJob is one outbound message.
type MailJob struct {
	To       string
	Subject  string
	Body     string
	Template string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(ctx context.Context, job MailJob) error
}

// MailQueue accepts messages for asynchronous delivery. Enqueue never
// blocks the request path on delivery failures.
type MailQueue interface {
	Enqueue(job MailJob)
}
