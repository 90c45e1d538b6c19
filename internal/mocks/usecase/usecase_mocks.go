// Package usecase provides hand-written testify mocks for the usecase layer.
package usecase

import (
	"context"

	"lbank/internal/domain/entity"
	appusecase "lbank/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserUsecase is a mock implementation of usecase.UserUsecase.
type UserUsecase struct {
	mock.Mock
}

func (m *UserUsecase) Register(ctx context.Context, input appusecase.RegisterInput) (*appusecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*appusecase.RegisterOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserUsecase) Login(ctx context.Context, input appusecase.LoginInput) (*appusecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if out, ok := args.Get(0).(*appusecase.LoginOutput); ok {
		return out, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserUsecase) CurrentUser(ctx context.Context, sessionSecret string) (*entity.User, error) {
	args := m.Called(ctx, sessionSecret)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserUsecase) Logout(ctx context.Context, sessionSecret string) error {
	args := m.Called(ctx, sessionSecret)

	return args.Error(0)
}

// BankUsecase is a mock implementation of usecase.BankUsecase.
type BankUsecase struct {
	mock.Mock
}

func (m *BankUsecase) CreateLinkToken(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)

	return args.String(0), args.Error(1)
}

func (m *BankUsecase) ExchangePublicToken(ctx context.Context, input appusecase.ExchangeInput) (*entity.BankAccount, error) {
	args := m.Called(ctx, input)
	if account, ok := args.Get(0).(*entity.BankAccount); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *BankUsecase) ListBankAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error) {
	args := m.Called(ctx, userID)
	if accounts, ok := args.Get(0).([]*entity.BankAccount); ok {
		return accounts, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *BankUsecase) GetShareQR(ctx context.Context, userID, bankAccountID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, userID, bankAccountID)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}
