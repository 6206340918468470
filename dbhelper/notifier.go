package dbhelper

import (
	"log"
	"time"
)

// Notifier delivers fire-and-forget emails. Failures are logged and swallowed
// by callers; they never fail the enclosing operation.
type Notifier interface {
	EnrollmentConfirmation(email, name, courseTitle string, enrolledAt time.Time) error
	PasswordReset(email, name, token string) error
}

// LogNotifier writes notifications to the log instead of sending mail.
type LogNotifier struct{}

func (LogNotifier) EnrollmentConfirmation(email, name, courseTitle string, enrolledAt time.Time) error {
	log.Printf("[notify] enrollment confirmation to %s (%s) for %q at %s", email, name, courseTitle, enrolledAt.Format(time.RFC3339))
	return nil
}

func (LogNotifier) PasswordReset(email, name, token string) error {
	log.Printf("[notify] password reset email to %s (%s)", email, name)
	return nil
}
