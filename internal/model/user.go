// Package model defines domain entities for the application.
package model

// MaxNameLength is the maximum length for user names, task titles and
// email addresses. Matches the column limits in the database schema.
const MaxNameLength = 100

// User represents a registered user who can own tasks.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
