package repository

import (
	"context"

	"lbank/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionRepository defines the standard operations for server-side session persistence.
// Sessions are looked up by the SHA-256 hash of the raw secret; the raw secret
// itself never reaches the database.
type SessionRepository interface {
	// CreateSession persists a new session record, representing a live login.
	CreateSession(ctx context.Context, session *entity.Session) error

	// FindSessionBySecretHash retrieves a session record by its securely stored hash.
	FindSessionBySecretHash(ctx context.Context, hash string) (*entity.Session, error)

	// DeleteSessionBySecretHash deletes a session by its hash, effectively ending it.
	DeleteSessionBySecretHash(ctx context.Context, hash string) error

	// DeleteSessionsByUserID deletes every session for a user (sign out everywhere).
	DeleteSessionsByUserID(ctx context.Context, userID uuid.UUID) error
}
