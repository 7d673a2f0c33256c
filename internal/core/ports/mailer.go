package ports

import "context"

// MailKind selects one of the hosted email templates.
type MailKind string

const (
	MailPasswordSetup MailKind = "password_setup"
	MailPasswordReset MailKind = "password_reset"
)

// MailJob is one outbound email handed to the mail dispatcher.
type MailJob struct {
	Kind  MailKind
	To    string
	Token string
	// HotelID is forwarded so the email function can brand per tenant.
	HotelID string
}

// Mailer delivers a single email, usually by invoking the hosted email
// function. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, job MailJob) error
}

// MailEnqueuer accepts mail jobs for asynchronous delivery.
type MailEnqueuer interface {
	Enqueue(job MailJob)
}
