// Package app holds the application services and business logic.
package app

import "regexp"

// minPasswordLen is the signup password policy.
const minPasswordLen = 6

// Simple local@domain.tld shape with no whitespace. Deliverability is the
// mail provider's problem, not ours.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailRe.MatchString(email)
}
