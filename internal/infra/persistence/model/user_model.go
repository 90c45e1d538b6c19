package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email     string    `gorm:"type:varchar(255);unique;not null"`
	FirstName string    `gorm:"type:varchar(100);not null"`
	LastName  string    `gorm:"type:varchar(100);not null"`

	// Payment-rail customer reference minted exactly once at registration.
	PaymentCustomerID  string `gorm:"type:varchar(255);not null"`
	PaymentCustomerURL string `gorm:"type:varchar(512);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Profile         *UserProfileModel     `gorm:"foreignKey:UserID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	Sessions        []SessionModel        `gorm:"foreignKey:UserID"`
	BankAccounts    []BankAccountModel    `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserProfileModel mirrors the 'user_profiles' table. UserID references users.id (UUID).
type UserProfileModel struct {
	UserID      uuid.UUID `gorm:"primaryKey"`
	Address1    string    `gorm:"type:varchar(255);not null"`
	City        string    `gorm:"type:varchar(100);not null"`
	State       string    `gorm:"type:varchar(10);not null"`
	PostalCode  string    `gorm:"type:varchar(20);not null"`
	DateOfBirth string    `gorm:"type:varchar(10);not null"`
	SSN         string    `gorm:"type:varchar(16);not null"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserProfileModel) TableName() string {
	return "user_profiles"
}
