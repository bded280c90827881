package model

import "time"

// Identity is the display claim decoded from a backend credential. It is
// never verified locally and must not drive authorization decisions.
type Identity struct {
	Subject  string
	Username string
	// ExpiresAt is the token's exp claim; zero when the token carries none.
	ExpiresAt time.Time
}

// Session is the server-side record behind an operator's session cookie.
// Only the credential and its decoded claim are persisted; the login
// response envelope is discarded once the token has been extracted.
type Session struct {
	ID        string
	Token     string
	Identity  Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session or the credential's own exp claim
// has lapsed at now.
func (s Session) Expired(now time.Time) bool {
	if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
		return true
	}
	if !s.Identity.ExpiresAt.IsZero() && !now.Before(s.Identity.ExpiresAt) {
		return true
	}
	return false
}
