// Package validation provides pure validation predicates for domain input.
// Predicates have no side effects; services turn failures into
// classified errors with fixed messages.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Email format: ASCII local part of letters/digits/._%+-, domain of
// letters/digits/.-, TLD of at least two letters.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// EmailSyntax reports whether email matches the accepted format.
func EmailSyntax(email string) bool {
	return emailRegex.MatchString(email)
}

// NonEmpty reports whether s contains at least one non-whitespace character.
func NonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// FutureOrPresent reports whether t is at or after now.
func FutureOrPresent(t, now time.Time) bool {
	return !t.Before(now)
}

// MaxLength reports whether s is at most max characters long.
func MaxLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}
