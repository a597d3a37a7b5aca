package mail

import "fmt"

const resetSubject = "Password reset"

const resetBodyTmpl = `You requested a password reset.

Open the link below to choose a new password:

%s

The link is valid for 24 hours. If you did not request this email you can
safely ignore it.
`

// ResetEmail builds the password-reset email for a reset URL embedding the
// verification token.
func ResetEmail(resetURL string) (subject, body string) {
	return resetSubject, fmt.Sprintf(resetBodyTmpl, resetURL)
}

const inviteSubject = "Your account has been created"

const inviteBodyTmpl = `Hello %s,

An account has been created for you. Open the link below to set your
password:

%s

The link is valid for 7 days. If you did not expect this email you can
safely ignore it.
`

// InviteEmail builds the set-password email sent when an admin creates an
// account. The greeting uses the display name when one is set, otherwise
// the email address.
func InviteEmail(name *string, email, resetURL string) (subject, body string) {
	greeting := email
	if name != nil && *name != "" {
		greeting = *name
	}
	return inviteSubject, fmt.Sprintf(inviteBodyTmpl, greeting, resetURL)
}
