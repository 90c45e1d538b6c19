// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"lbank/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// The profile fields feed payment-rail customer provisioning verbatim.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
	Email       string
	Password    string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user together with the raw session
// secret the delivery layer must set as a cookie. The secret is never stored.
type RegisterOutput struct {
	User             *entity.User
	SessionSecret    string
	SessionExpiresAt time.Time
}

// LoginOutput returns the logged-in user and the new session secret.
type LoginOutput struct {
	User             *entity.User
	SessionSecret    string
	SessionExpiresAt time.Time
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// CurrentUser resolves a session secret to its user. A missing, expired or
	// unknown session returns (nil, nil): absence is an expected outcome, not
	// an error.
	CurrentUser(ctx context.Context, sessionSecret string) (*entity.User, error)

	// Logout deletes the server-side session for a secret. Unknown secrets are
	// ignored so logout stays idempotent.
	Logout(ctx context.Context, sessionSecret string) error
}
