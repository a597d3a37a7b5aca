package mail

// Mailer sends transactional email. Sending is best-effort from the
// caller's perspective: failures are logged by the caller, never retried
// and never surfaced to the end user.
type Mailer interface {
	// IsEnabled reports whether an SMTP server is configured.
	IsEnabled() bool

	// SendTo sends an email to a single recipient address.
	SendTo(subject, body, recipient string) error
}
