package impl

import (
	"context"
	"testing"
	"time"

	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	"lbank/internal/domain/repository"
	"lbank/internal/errors"
	mockrepo "lbank/internal/mocks/repository"
	mocksvc "lbank/internal/mocks/service"
	"lbank/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixture bundles the mocked dependencies of userService.
type userServiceFixture struct {
	txManager    *mockrepo.TransactionManager
	userRepo     *mockrepo.UserRepository
	authRepo     *mockrepo.AuthRepository
	sessionRepo  *mockrepo.SessionRepository
	hasher       *mocksvc.PasswordHasher
	sessionToken *mocksvc.SessionTokenService
	paymentRail  *mocksvc.PaymentRailService
	service      usecase.UserUsecase
}

func newUserServiceFixture() *userServiceFixture {
	fx := &userServiceFixture{
		userRepo:     &mockrepo.UserRepository{},
		authRepo:     &mockrepo.AuthRepository{},
		sessionRepo:  &mockrepo.SessionRepository{},
		hasher:       &mocksvc.PasswordHasher{},
		sessionToken: &mocksvc.SessionTokenService{},
		paymentRail:  &mocksvc.PaymentRailService{},
	}
	fx.txManager = &mockrepo.TransactionManager{
		Factory: &mockrepo.RepositoryFactory{
			Users:    fx.userRepo,
			Auths:    fx.authRepo,
			Sessions: fx.sessionRepo,
		},
	}

	fx.service = NewUserService(UserServiceParams{
		TxManager:    fx.txManager,
		UserRepo:     fx.userRepo,
		AuthRepo:     fx.authRepo,
		SessionRepo:  fx.sessionRepo,
		Hasher:       fx.hasher,
		SessionToken: fx.sessionToken,
		PaymentRail:  fx.paymentRail,
		Logger:       discardLogger(),
	})

	return fx
}

func validRegisterInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		FirstName:   "Jane",
		LastName:    "Doe",
		Address1:    "1 Main St",
		City:        "Springfield",
		State:       "IL",
		PostalCode:  "62704",
		DateOfBirth: "1990-01-02",
		SSN:         "1234",
		Email:       "jane@example.com",
		Password:    "StrongSecret123!",
	}
}

func TestUserService_Register(t *testing.T) {
	fx := newUserServiceFixture()
	input := validRegisterInput()

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)
	fx.paymentRail.On("CreateCustomer", mock.Anything, mock.Anything).
		Return("https://rail.example.com/customers/cust-123", nil).Once()
	fx.txManager.On("Execute", mock.Anything, mock.Anything).Return(nil)
	fx.userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.authRepo.On("CreateAuthentication", mock.Anything, mock.Anything).Return(nil)
	fx.sessionToken.On("GenerateSecret").Return("raw-secret", "secret-hash", nil)
	fx.sessionToken.On("SessionDuration").Return(time.Hour)
	fx.sessionRepo.On("CreateSession", mock.Anything, mock.Anything).Return(nil)

	output, err := fx.service.Register(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output)

	// The customer reference is embedded before the identity row is written.
	assert.Equal(t, "https://rail.example.com/customers/cust-123", output.User.PaymentCustomerURL)
	assert.Equal(t, "cust-123", output.User.PaymentCustomerID)
	assert.Equal(t, "raw-secret", output.SessionSecret)
	assert.WithinDuration(t, time.Now().Add(time.Hour), output.SessionExpiresAt, 5*time.Second)

	// Provisioning runs exactly once per registration.
	fx.paymentRail.AssertNumberOfCalls(t, "CreateCustomer", 1)

	fx.userRepo.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Email == input.Email && u.PaymentCustomerID == "cust-123" && u.Profile != nil
	}))
	fx.authRepo.AssertCalled(t, "CreateAuthentication", mock.Anything, mock.MatchedBy(func(a *entity.Authentication) bool {
		return a.Provider == entity.ProviderTypeEmail && a.ProviderUserID == input.Email && a.PasswordHash == "hashed-password"
	}))
	fx.sessionRepo.AssertCalled(t, "CreateSession", mock.Anything, mock.MatchedBy(func(s *entity.Session) bool {
		return s.SecretHash == "secret-hash"
	}))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := newUserServiceFixture()
	input := validRegisterInput()

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(&entity.Authentication{ProviderUserID: input.Email}, nil)

	_, err := fx.service.Register(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))

	// A duplicate must not provision a remote customer.
	fx.paymentRail.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_ProvisioningFailure(t *testing.T) {
	fx := newUserServiceFixture()
	input := validRegisterInput()

	fx.hasher.On("ValidatePasswordStrength", input.Password).Return(nil)
	fx.hasher.On("Hash", input.Password).Return("hashed-password", nil)
	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, input.Email).
		Return(nil, repository.ErrAuthNotFound)
	fx.paymentRail.On("CreateCustomer", mock.Anything, mock.Anything).
		Return("", errors.New("rail unavailable"))

	_, err := fx.service.Register(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProvisioningFailed))

	// No identity row is written when provisioning fails.
	fx.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.authRepo.AssertNotCalled(t, "CreateAuthentication", mock.Anything, mock.Anything)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	fx := newUserServiceFixture()
	input := validRegisterInput()
	input.Password = "weak"

	fx.hasher.On("ValidatePasswordStrength", input.Password).
		Return(domainerrors.ErrPasswordStrength)

	_, err := fx.service.Register(context.Background(), input)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	fx.paymentRail.AssertNotCalled(t, "CreateCustomer", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	fx := newUserServiceFixture()
	user := createTestUser()

	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, user.Email).
		Return(&entity.Authentication{UserID: user.ID, PasswordHash: "stored-hash"}, nil)
	fx.hasher.On("Check", "StrongSecret123!", "stored-hash").Return(true)
	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	fx.sessionToken.On("GenerateSecret").Return("raw-secret", "secret-hash", nil)
	fx.sessionToken.On("SessionDuration").Return(time.Hour)
	fx.sessionRepo.On("CreateSession", mock.Anything, mock.Anything).Return(nil)

	output, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    user.Email,
		Password: "StrongSecret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, user, output.User)
	assert.Equal(t, "raw-secret", output.SessionSecret)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := newUserServiceFixture()
	user := createTestUser()

	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, user.Email).
		Return(&entity.Authentication{UserID: user.ID, PasswordHash: "stored-hash"}, nil)
	fx.hasher.On("Check", "WrongSecret123!", "stored-hash").Return(false)

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    user.Email,
		Password: "WrongSecret123!",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	fx.sessionRepo.AssertNotCalled(t, "CreateSession", mock.Anything, mock.Anything)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := newUserServiceFixture()

	fx.authRepo.On("FindAuthentication", mock.Anything, entity.ProviderTypeEmail, "nobody@example.com").
		Return(nil, repository.ErrAuthNotFound)

	_, err := fx.service.Login(context.Background(), usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "StrongSecret123!",
	})
	require.Error(t, err)

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_CurrentUser(t *testing.T) {
	fx := newUserServiceFixture()
	user := createTestUser()

	fx.sessionToken.On("HashSecret", "raw-secret").Return("secret-hash")
	fx.sessionRepo.On("FindSessionBySecretHash", mock.Anything, "secret-hash").
		Return(&entity.Session{
			UserID:     user.ID,
			SecretHash: "secret-hash",
			ExpiresAt:  time.Now().Add(time.Hour),
		}, nil)
	fx.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	got, err := fx.service.CurrentUser(context.Background(), "raw-secret")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_CurrentUser_AbsentSession(t *testing.T) {
	fx := newUserServiceFixture()

	// Empty secret resolves to no user without touching storage.
	got, err := fx.service.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Unknown secret resolves to no user, not an error.
	fx.sessionToken.On("HashSecret", "unknown-secret").Return("unknown-hash")
	fx.sessionRepo.On("FindSessionBySecretHash", mock.Anything, "unknown-hash").
		Return(nil, repository.ErrSessionNotFound)

	got, err = fx.service.CurrentUser(context.Background(), "unknown-secret")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserService_CurrentUser_ExpiredSession(t *testing.T) {
	fx := newUserServiceFixture()
	user := createTestUser()

	fx.sessionToken.On("HashSecret", "raw-secret").Return("secret-hash")
	fx.sessionRepo.On("FindSessionBySecretHash", mock.Anything, "secret-hash").
		Return(&entity.Session{
			UserID:     user.ID,
			SecretHash: "secret-hash",
			ExpiresAt:  time.Now().Add(-time.Minute),
		}, nil)
	fx.sessionRepo.On("DeleteSessionBySecretHash", mock.Anything, "secret-hash").Return(nil)

	got, err := fx.service.CurrentUser(context.Background(), "raw-secret")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Expired rows are deleted on sight.
	fx.sessionRepo.AssertCalled(t, "DeleteSessionBySecretHash", mock.Anything, "secret-hash")
	fx.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserService_Logout(t *testing.T) {
	fx := newUserServiceFixture()

	fx.sessionToken.On("HashSecret", "raw-secret").Return("secret-hash")
	fx.sessionRepo.On("DeleteSessionBySecretHash", mock.Anything, "secret-hash").Return(nil)

	err := fx.service.Logout(context.Background(), "raw-secret")
	require.NoError(t, err)
}

func TestUserService_Logout_UnknownSession(t *testing.T) {
	fx := newUserServiceFixture()

	fx.sessionToken.On("HashSecret", "raw-secret").Return("secret-hash")
	fx.sessionRepo.On("DeleteSessionBySecretHash", mock.Anything, "secret-hash").
		Return(repository.ErrSessionNotFound)

	// Logout is idempotent.
	err := fx.service.Logout(context.Background(), "raw-secret")
	require.NoError(t, err)

	err = fx.service.Logout(context.Background(), "")
	require.NoError(t, err)
}
