// Package repository provides hand-written testify mocks for the domain
// repository interfaces.
package repository

import (
	"context"

	"lbank/internal/domain/entity"
	"lbank/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

// AuthRepository is a mock implementation of repository.AuthRepository.
type AuthRepository struct {
	mock.Mock
}

func (m *AuthRepository) CreateAuthentication(ctx context.Context, auth *entity.Authentication) error {
	args := m.Called(ctx, auth)

	return args.Error(0)
}

func (m *AuthRepository) FindAuthentication(ctx context.Context, provider entity.ProviderType, providerUserID string) (*entity.Authentication, error) {
	args := m.Called(ctx, provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Authentication), args.Error(1)
}

// SessionRepository is a mock implementation of repository.SessionRepository.
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) CreateSession(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)

	return args.Error(0)
}

func (m *SessionRepository) FindSessionBySecretHash(ctx context.Context, hash string) (*entity.Session, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *SessionRepository) DeleteSessionBySecretHash(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)

	return args.Error(0)
}

func (m *SessionRepository) DeleteSessionsByUserID(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

// BankAccountRepository is a mock implementation of repository.BankAccountRepository.
type BankAccountRepository struct {
	mock.Mock
}

func (m *BankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *BankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.BankAccount), args.Error(1)
}

func (m *BankAccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.BankAccount), args.Error(1)
}

// TransactionManager is a mock implementation of repository.TransactionManager.
// Execute runs the callback against the Factory so tests exercise the real
// transactional flow without a database.
type TransactionManager struct {
	mock.Mock

	Factory repository.RepositoryFactory
}

func (m *TransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if args.Error(0) != nil {
		return args.Error(0)
	}

	return fn(m.Factory)
}

// RepositoryFactory is a mock implementation of repository.RepositoryFactory.
type RepositoryFactory struct {
	Users        repository.UserRepository
	Auths        repository.AuthRepository
	Sessions     repository.SessionRepository
	BankAccounts repository.BankAccountRepository
}

func (f *RepositoryFactory) UserRepo() repository.UserRepository {
	return f.Users
}

func (f *RepositoryFactory) AuthRepo() repository.AuthRepository {
	return f.Auths
}

func (f *RepositoryFactory) SessionRepo() repository.SessionRepository {
	return f.Sessions
}

func (f *RepositoryFactory) BankAccountRepo() repository.BankAccountRepository {
	return f.BankAccounts
}
