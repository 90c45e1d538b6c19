package impl

import (
	"io"
	"log/slog"

	"lbank/internal/domain/entity"

	"github.com/google/uuid"
)

// discardLogger returns a logger that drops everything, keeping test output clean.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestUser builds a registered user with a payment customer reference.
func createTestUser() *entity.User {
	return &entity.User{
		ID:                 uuid.New(),
		Email:              "jane@example.com",
		FirstName:          "Jane",
		LastName:           "Doe",
		PaymentCustomerID:  "cust-123",
		PaymentCustomerURL: "https://rail.example.com/customers/cust-123",
		Profile: &entity.Profile{
			Address1:    "1 Main St",
			City:        "Springfield",
			State:       "IL",
			PostalCode:  "62704",
			DateOfBirth: "1990-01-02",
			SSN:         "1234",
		},
	}
}

// createTestBankAccount builds a persisted bank account record for a user.
func createTestBankAccount(userID uuid.UUID) *entity.BankAccount {
	return &entity.BankAccount{
		ID:               uuid.New(),
		UserID:           userID,
		ItemID:           "item-42",
		AccountID:        "acct-1",
		AccessToken:      "access-sandbox-123",
		FundingSourceURL: "https://rail.example.com/funding-sources/fs-456",
		ShareID:          "YWNjdC0x",
	}
}
