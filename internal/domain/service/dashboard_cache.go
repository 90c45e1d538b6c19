package service

import (
	"lbank/internal/domain/entity"

	"github.com/google/uuid"
)

// DashboardCache caches a user's bank-account list between dashboard reads.
// A successful token exchange invalidates the owning user's entry so the next
// read reflects the newly linked account.
type DashboardCache interface {
	// Get returns the cached account list for a user, or false if absent or expired.
	Get(userID uuid.UUID) ([]*entity.BankAccount, bool)

	// Set stores the account list for a user.
	Set(userID uuid.UUID, accounts []*entity.BankAccount)

	// Invalidate drops the cached entry for a user.
	Invalidate(userID uuid.UUID)
}
