// Package service provides hand-written testify mocks for the domain
// service interfaces.
package service

import (
	"context"
	"time"

	"lbank/internal/domain/entity"
	"lbank/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PasswordHasher is a mock implementation of service.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

func (m *PasswordHasher) ValidatePasswordStrength(password string) error {
	args := m.Called(password)

	return args.Error(0)
}

// SessionTokenService is a mock implementation of service.SessionTokenService.
type SessionTokenService struct {
	mock.Mock
}

func (m *SessionTokenService) GenerateSecret() (string, string, error) {
	args := m.Called()

	return args.String(0), args.String(1), args.Error(2)
}

func (m *SessionTokenService) HashSecret(raw string) string {
	args := m.Called(raw)

	return args.String(0)
}

func (m *SessionTokenService) SessionDuration() time.Duration {
	args := m.Called()

	return args.Get(0).(time.Duration)
}

// BankLinkService is a mock implementation of service.BankLinkService.
type BankLinkService struct {
	mock.Mock
}

func (m *BankLinkService) CreateLinkToken(ctx context.Context, userID string, displayName string) (string, error) {
	args := m.Called(ctx, userID, displayName)

	return args.String(0), args.Error(1)
}

func (m *BankLinkService) ExchangePublicToken(ctx context.Context, publicToken string) (*service.ExchangeResult, error) {
	args := m.Called(ctx, publicToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.ExchangeResult), args.Error(1)
}

func (m *BankLinkService) GetAccounts(ctx context.Context, accessToken string) ([]service.ExternalAccount, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]service.ExternalAccount), args.Error(1)
}

func (m *BankLinkService) CreateProcessorToken(ctx context.Context, accessToken string, accountID string) (string, error) {
	args := m.Called(ctx, accessToken, accountID)

	return args.String(0), args.Error(1)
}

// PaymentRailService is a mock implementation of service.PaymentRailService.
type PaymentRailService struct {
	mock.Mock
}

func (m *PaymentRailService) CreateCustomer(ctx context.Context, profile *service.CustomerProfile) (string, error) {
	args := m.Called(ctx, profile)

	return args.String(0), args.Error(1)
}

func (m *PaymentRailService) CreateFundingSource(ctx context.Context, req *service.FundingSourceRequest) (string, error) {
	args := m.Called(ctx, req)

	return args.String(0), args.Error(1)
}

// EventPublisher is a mock implementation of service.EventPublisher.
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishBankAccountLinked(ctx context.Context, event *service.BankAccountLinkedEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

func (m *EventPublisher) Close() error {
	args := m.Called()

	return args.Error(0)
}

// QRCodeService is a mock implementation of service.QRCodeService.
type QRCodeService struct {
	mock.Mock
}

func (m *QRCodeService) GenerateShareQR(shareID string) ([]byte, error) {
	args := m.Called(shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// DashboardCache is a mock implementation of service.DashboardCache.
type DashboardCache struct {
	mock.Mock
}

func (m *DashboardCache) Get(userID uuid.UUID) ([]*entity.BankAccount, bool) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}

	return args.Get(0).([]*entity.BankAccount), args.Bool(1)
}

func (m *DashboardCache) Set(userID uuid.UUID, accounts []*entity.BankAccount) {
	m.Called(userID, accounts)
}

func (m *DashboardCache) Invalidate(userID uuid.UUID) {
	m.Called(userID)
}
