package entity

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount links a user to one external bank account that has completed the
// full token-exchange flow. A record only ever exists alongside a successfully
// provisioned funding source; partial link states are never persisted.
// Records are append-only: there are no update or delete operations.
type BankAccount struct {
	ID               uuid.UUID // The unique ID for this record.
	UserID           uuid.UUID // The owning user.
	ItemID           string    // Bank-link (item) reference returned by the public-token exchange.
	AccountID        string    // External account id within the linked item.
	AccessToken      string    // Durable access credential. Treated as a secret; never returned to clients.
	FundingSourceURL string    // Funding-source reference minted by the payment-rail service.
	ShareID          string    // Reversible obfuscation of AccountID for shareable URLs. Not a security boundary.
	CreatedAt        time.Time
}
