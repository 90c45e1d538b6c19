package model

import (
	"time"

	"github.com/google/uuid"
)

// BankAccountModel mirrors the 'bank_accounts' table. Rows are append-only;
// there is no update or delete path. The access token is the linking
// service's durable credential and never leaves the server.
type BankAccountModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bank_accounts_user_item_account"`
	ItemID           string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_bank_accounts_user_item_account"`
	AccountID        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_bank_accounts_user_item_account"`
	AccessToken      string    `gorm:"type:varchar(512);not null"`
	FundingSourceURL string    `gorm:"type:varchar(512);not null"`
	ShareID          string    `gorm:"type:varchar(255);not null;index"`
	CreatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}
