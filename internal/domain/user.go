package domain

import "time"

// User is the persisted session record for an authenticated visitor.
type User struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Ticket pairs a target email with a one-time code while verification is in
// flight. It lives only inside the auth service and is never persisted.
type Ticket struct {
	Email string
	Code  string
	Sent  bool
}
