package model

import (
	"strings"
	"time"
)

const MaxUsernameLen = 80

// User is the identity the roster ledger is keyed on. Credentials live with the
// identity provider, not here.
type User struct {
	ID       int64     `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Created  time.Time `json:"created"`
}

// ValidateUser trims the inputs and checks they are usable.
func ValidateUser(username, email string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return "", "", ValidationError("username and email are required")
	}
	if len(username) > MaxUsernameLen {
		return "", "", ValidationError("username must be at most %d characters", MaxUsernameLen)
	}
	if !strings.Contains(email, "@") {
		return "", "", ValidationError("email is not valid: %s", email)
	}
	return username, email, nil
}
