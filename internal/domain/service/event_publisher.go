package service

import (
	"context"
)

// BankAccountLinkedEvent is published after a bank account completes the full
// token-exchange flow. Downstream systems that actually move money consume
// this linkage metadata; this core only records it.
type BankAccountLinkedEvent struct {
	RequestID        string `json:"request_id,omitempty"` // For distributed tracing
	BankAccountID    string `json:"bank_account_id"`
	UserID           string `json:"user_id"`
	ItemID           string `json:"item_id"`
	AccountID        string `json:"account_id"`
	FundingSourceURL string `json:"funding_source_url"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishBankAccountLinked publishes a link-completion event for downstream consumers
	PublishBankAccountLinked(ctx context.Context, event *BankAccountLinkedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
