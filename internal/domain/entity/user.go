// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system, representing one registered person.
// The payment customer reference is minted by the payment-rail service during
// registration and embedded here at creation time; it is never patched in later.
type User struct {
	ID                 uuid.UUID // The unique identifier for the user.
	Email              string    // The user's primary contact email, used as the login identifier.
	FirstName          string    // The user's legal first name, required by the payment rail.
	LastName           string    // The user's legal last name.
	Profile            *Profile  // KYC profile captured at sign-up. Never nil for a persisted user.
	PaymentCustomerID  string    // Customer id extracted from the payment-rail reference URL. Immutable.
	PaymentCustomerURL string    // Full customer reference URL minted by the payment-rail service. Immutable.
	CreatedAt          time.Time // Timestamp of when this user account was created.
	UpdatedAt          time.Time // Timestamp of the last modification to this user's data.
}

// Profile holds the identity-verification fields collected at registration.
// These are forwarded verbatim to the payment-rail service when the customer
// record is provisioned and are never mutated afterwards by this core.
type Profile struct {
	UserID      uuid.UUID // Foreign key that links this profile to its User.
	Address1    string    // Street address line.
	City        string
	State       string // Two-letter state code.
	PostalCode  string
	DateOfBirth string // ISO-8601 date string, passed through to the payment rail.
	SSN         string // Government identifier. Stored opaque; only the rail consumes it.
	UpdatedAt   time.Time
}

// DisplayName returns the name the bank-linking widget shows for this user.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
