package mailer

import "context"

// Mailer defines the interface for delivering transactional email.
// This abstraction allows swapping the log-only mock with the real Resend
// client without refactoring.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}
