// Package cache provides the in-memory dashboard cache implementation.
package cache

import (
	"sync"
	"time"

	"lbank/config"
	"lbank/internal/domain/entity"
	"lbank/internal/domain/service"

	"github.com/google/uuid"
)

const defaultTTL = 5 * time.Minute

type cacheEntry struct {
	accounts  []*entity.BankAccount
	expiresAt time.Time
}

// dashboardCache is a process-local TTL cache keyed by user id.
// Entries are invalidated eagerly on successful link and lazily on expiry.
type dashboardCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewDashboardCache creates the dashboard cache with the configured TTL.
func NewDashboardCache(cfg *config.Config) service.DashboardCache {
	ttl := defaultTTL
	if cfg != nil && cfg.Dashboard != nil && cfg.Dashboard.CacheTTL > 0 {
		ttl = cfg.Dashboard.CacheTTL
	}

	return &dashboardCache{
		entries: make(map[uuid.UUID]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached account list for a user, or false if absent or expired.
func (c *dashboardCache) Get(userID uuid.UUID) ([]*entity.BankAccount, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.Invalidate(userID)

		return nil, false
	}

	return entry.accounts, true
}

// Set stores the account list for a user.
func (c *dashboardCache) Set(userID uuid.UUID, accounts []*entity.BankAccount) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[userID] = cacheEntry{
		accounts:  accounts,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Invalidate drops the cached entry for a user.
func (c *dashboardCache) Invalidate(userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, userID)
}
