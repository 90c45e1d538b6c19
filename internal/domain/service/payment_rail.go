package service

import "context"

// CustomerProfile is the identity data the payment-rail service needs to
// provision a customer record. Mirrors the registration profile.
type CustomerProfile struct {
	FirstName   string
	LastName    string
	Email       string
	Address1    string
	City        string
	State       string
	PostalCode  string
	DateOfBirth string
	SSN         string
}

// FundingSourceRequest describes one fundable bank account to register with
// the payment-rail service.
type FundingSourceRequest struct {
	CustomerURL    string // Customer reference URL minted at registration.
	ProcessorToken string // Single-use token from the bank-linking service.
	Name           string // Display name for the funding source.
}

// PaymentRailService is the narrow contract with the external payment-rail
// service. Neither call is idempotent: invoking CreateCustomer twice for the
// same person creates two remote customer records, so callers must invoke it
// exactly once per registration.
type PaymentRailService interface {
	// CreateCustomer registers a customer record and returns its reference URL.
	CreateCustomer(ctx context.Context, profile *CustomerProfile) (string, error)

	// CreateFundingSource registers a fundable bank account under a customer
	// and returns the funding-source reference URL.
	CreateFundingSource(ctx context.Context, req *FundingSourceRequest) (string, error)
}
