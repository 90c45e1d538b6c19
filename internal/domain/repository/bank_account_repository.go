package repository

import (
	"context"
	"errors"

	"lbank/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for bank-account persistence.
var (
	// ErrBankAccountNotFound is returned when a bank account record is not found.
	ErrBankAccountNotFound = errors.New("bank account not found")
	// ErrDuplicateBankAccount is returned when the (user, item, account)
	// uniqueness constraint in the backing store rejects a second insert.
	ErrDuplicateBankAccount = errors.New("bank account already linked")
)

// BankAccountRepository defines the operations for persisted bank-account link records.
// Records are immutable once written; there are deliberately no update or
// delete operations on this interface.
type BankAccountRepository interface {
	// Create persists a new bank account record.
	Create(ctx context.Context, account *entity.BankAccount) error

	// FindByID retrieves a single record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error)

	// FindByUserID retrieves all records owned by a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error)
}
