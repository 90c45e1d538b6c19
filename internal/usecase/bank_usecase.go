package usecase

import (
	"context"

	"lbank/internal/domain/entity"

	"github.com/google/uuid"
)

// ExchangeInput carries the one-time public token handed back by the
// client-side linking widget.
type ExchangeInput struct {
	User        *entity.User
	PublicToken string
}

// BankUsecase defines the interface for bank-linking business operations.
type BankUsecase interface {
	// CreateLinkToken requests a short-lived link token for the user's
	// client-side linking widget.
	CreateLinkToken(ctx context.Context, user *entity.User) (string, error)

	// ExchangePublicToken runs the full token-exchange flow and returns the
	// persisted bank account record. The public token is consumed even when a
	// later step fails; no partial record is ever written.
	ExchangePublicToken(ctx context.Context, input ExchangeInput) (*entity.BankAccount, error)

	// ListBankAccounts returns the user's linked bank accounts, newest first.
	ListBankAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error)

	// GetShareQR renders a PNG QR code of the shareable URL for one of the
	// user's bank accounts. Requesting another user's account is forbidden.
	GetShareQR(ctx context.Context, userID, bankAccountID uuid.UUID) ([]byte, error)
}
