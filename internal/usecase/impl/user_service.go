// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "lbank/internal/delivery/context"
	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	"lbank/internal/domain/repository"
	"lbank/internal/domain/service"
	"lbank/internal/usecase"
	"lbank/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	sessionToken service.SessionTokenService
	paymentRail  service.PaymentRailService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AuthRepo     repository.AuthRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	SessionToken service.SessionTokenService
	PaymentRail  service.PaymentRailService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		authRepo:     params.AuthRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		sessionToken: params.SessionToken,
		paymentRail:  params.PaymentRail,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
// Order matters: the duplicate check runs first, then the payment-rail
// customer is provisioned exactly once, and only then is the identity row
// written (with the customer reference embedded) in a single transaction.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "password does not meet security requirements")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	// Duplicate check before any external side effect.
	_, err = srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err == nil {
		srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrDuplicateIdentity, "email already registered")
	}
	if !errors.Is(err, repository.ErrAuthNotFound) {
		return nil, errors.Wrap(err, "failed to check existing authentication")
	}

	// Provision the payment-rail customer exactly once. A failure here means
	// no identity row is ever written.
	customerURL, err := srv.paymentRail.CreateCustomer(ctx, &service.CustomerProfile{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Address1:    input.Address1,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		DateOfBirth: input.DateOfBirth,
		SSN:         input.SSN,
	})
	if err != nil {
		srv.log(ctx).Error("Payment customer provisioning failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrProvisioningFailed, "failed to provision payment customer")
	}

	newUser := &entity.User{
		Email:              input.Email,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		PaymentCustomerID:  util.ExtractCustomerIDFromURL(customerURL),
		PaymentCustomerURL: customerURL,
		Profile: &entity.Profile{
			Address1:    input.Address1,
			City:        input.City,
			State:       input.State,
			PostalCode:  input.PostalCode,
			DateOfBirth: input.DateOfBirth,
			SSN:         input.SSN,
		},
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		newAuth := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := repoFactory.AuthRepo().CreateAuthentication(ctx, newAuth); err != nil {
			return errors.Wrap(err, "failed to create authentication during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	secret, expiresAt, err := srv.createSession(ctx, newUser)
	if err != nil {
		srv.log(ctx).Error("Failed to create session after registration", slog.Any("userID", newUser.ID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{
		User:             newUser,
		SessionSecret:    secret,
		SessionExpiresAt: expiresAt,
	}, nil
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	authRecord, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find authentication")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, authRecord.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	loggedInUser, err := srv.userRepo.FindByID(ctx, authRecord.UserID)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load login user")
	}

	secret, expiresAt, err := srv.createSession(ctx, loggedInUser)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", loggedInUser.ID))

	return &usecase.LoginOutput{
		User:             loggedInUser,
		SessionSecret:    secret,
		SessionExpiresAt: expiresAt,
	}, nil
}

// CurrentUser resolves a session secret to its user. Absence of a valid
// session is an expected outcome and returns (nil, nil).
func (srv *userService) CurrentUser(ctx context.Context, sessionSecret string) (*entity.User, error) {
	if sessionSecret == "" {
		return nil, nil
	}

	hash := srv.sessionToken.HashSecret(sessionSecret)

	session, err := srv.sessionRepo.FindSessionBySecretHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find session")
	}

	if session.Expired(time.Now()) {
		// Expired rows are garbage; drop them on sight.
		if delErr := srv.sessionRepo.DeleteSessionBySecretHash(ctx, hash); delErr != nil && !errors.Is(delErr, repository.ErrSessionNotFound) {
			srv.log(ctx).Warn("Failed to delete expired session", slog.Any("error", delErr))
		}

		return nil, nil
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Session references missing user", slog.Any("userID", session.UserID))

			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	return user, nil
}

// Logout deletes the server-side session. Unknown secrets are ignored.
func (srv *userService) Logout(ctx context.Context, sessionSecret string) error {
	if sessionSecret == "" {
		return nil
	}

	hash := srv.sessionToken.HashSecret(sessionSecret)

	if err := srv.sessionRepo.DeleteSessionBySecretHash(ctx, hash); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil
		}

		srv.log(ctx).Error("Failed to delete session", slog.Any("error", err))

		return errors.Wrap(err, "failed to delete session")
	}

	srv.log(ctx).Info("Successfully logged out")

	return nil
}

// createSession mints a fresh opaque session and persists only its hash.
func (srv *userService) createSession(ctx context.Context, user *entity.User) (string, time.Time, error) {
	secret, hash, err := srv.sessionToken.GenerateSecret()
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to generate session secret")
	}

	expiresAt := time.Now().Add(srv.sessionToken.SessionDuration())

	newSession := &entity.Session{
		UserID:     user.ID,
		SecretHash: hash,
		ExpiresAt:  expiresAt,
	}
	if err := srv.sessionRepo.CreateSession(ctx, newSession); err != nil {
		return "", time.Time{}, errors.Wrap(err, "failed to store session")
	}

	return secret, expiresAt, nil
}
