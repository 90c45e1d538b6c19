package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// ExternalAccount is one account inside a linked bank item, as reported by the
// bank-linking service. Balances are pass-through data; this system never
// computes or reconciles them.
type ExternalAccount struct {
	AccountID        string          // The linking service's id for this account.
	Name             string          // Display name, e.g. "Plaid Checking".
	Mask             string          // Last digits of the account number.
	Type             string          // e.g. "depository".
	Subtype          string          // e.g. "checking".
	AvailableBalance decimal.Decimal // Balance available for withdrawal.
	CurrentBalance   decimal.Decimal // Total current balance.
}

// ExchangeResult holds the durable credentials returned by exchanging a
// one-time public token. AccessToken is a long-lived secret equivalent to a
// password and must only ever be stored inside a bank account record.
type ExchangeResult struct {
	AccessToken string
	ItemID      string
}

// BankLinkService is the narrow contract with the external bank-linking
// service. Each call is a single short-lived request; the service itself
// enforces token expiry and single-use semantics.
type BankLinkService interface {
	// CreateLinkToken requests a short-lived token scoped to one user and the
	// configured capability set, for the client-side linking widget.
	CreateLinkToken(ctx context.Context, userID string, displayName string) (string, error)

	// ExchangePublicToken trades the widget's one-time public token for
	// durable access credentials. The public token is consumed even if a
	// later step of the caller's flow fails.
	ExchangePublicToken(ctx context.Context, publicToken string) (*ExchangeResult, error)

	// GetAccounts lists the external accounts reachable through an access token.
	GetAccounts(ctx context.Context, accessToken string) ([]ExternalAccount, error)

	// CreateProcessorToken derives a single-use token authorizing the
	// configured payment-rail processor to act on one specific account.
	CreateProcessorToken(ctx context.Context, accessToken string, accountID string) (string, error)
}
