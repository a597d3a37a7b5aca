package validate

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Password requires at least 8 characters.
func Password(s string) bool {
	return len(s) >= 8
}

// Email checks the conventional local@domain.tld shape.
func Email(s string) bool {
	return emailRe.MatchString(s)
}
