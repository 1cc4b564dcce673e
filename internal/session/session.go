// Package session holds the identity of the currently authenticated user.
//
// The session is immutable after construction: it is created from a
// successful login response, owned by the screen controller, and discarded on
// logout. It is never persisted, so reloading the application always starts
// without one.
package session

import "time"

// Session is the in-memory identity of the authenticated user. A nil
// *Session means nobody is logged in.
type Session struct {
	phone     string
	startedAt time.Time
}

// New creates a session for the given phone number. The phone is taken from
// the login response, not from the form field, so the server remains the
// authority on the canonical identity.
func New(phone string) *Session {
	return &Session{
		phone:     phone,
		startedAt: time.Now(),
	}
}

// Phone returns the phone number identifying the user.
func (s *Session) Phone() string {
	return s.phone
}

// StartedAt returns when the session was established.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Active reports whether s represents a logged-in user. Safe on a nil
// receiver.
func (s *Session) Active() bool {
	return s != nil && s.phone != ""
}
