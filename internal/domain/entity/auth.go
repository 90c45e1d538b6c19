// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ProviderType identifies the kind of credential backing an authentication record.
type ProviderType string

const (
	// ProviderTypeEmail is the email/password credential provider.
	ProviderTypeEmail ProviderType = "email"
)

// Authentication represents a single method of logging in (a credential).
// The email/password pair captured at registration is one record; the design
// leaves room for additional providers without touching the users table.
type Authentication struct {
	ID             uuid.UUID    // The unique ID for this specific authentication record itself.
	UserID         uuid.UUID    // Links this authentication method to the User it belongs to.
	Provider       ProviderType // The authentication provider, currently always "email".
	ProviderUserID string       // The user's identifier at the provider; the email address for "email".
	PasswordHash   string       // Stores the bcrypt-hashed password.
	CreatedAt      time.Time
}

// Session represents a live server-side login session. The browser holds the
// raw opaque secret in an http-only cookie; only a SHA-256 hash of it is
// persisted, so a database leak does not leak usable session secrets.
type Session struct {
	ID         uuid.UUID // The unique ID for this session record.
	UserID     uuid.UUID // Links this session to the User it belongs to.
	SecretHash string    // SHA-256 hash of the raw session secret.
	ExpiresAt  time.Time // The exact time when this session becomes invalid.
	CreatedAt  time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
