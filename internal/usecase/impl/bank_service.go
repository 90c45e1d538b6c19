package impl

import (
	"context"
	"log/slog"

	deliverycontext "lbank/internal/delivery/context"
	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	"lbank/internal/domain/repository"
	"lbank/internal/domain/service"
	"lbank/internal/usecase"
	"lbank/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bankService implements the BankUsecase interface. ExchangePublicToken is
// the core flow: five sequential external-and-storage steps, each gated on
// the previous one, with no partial persistence on failure.
type bankService struct {
	bankAccountRepo repository.BankAccountRepository
	bankLink        service.BankLinkService
	paymentRail     service.PaymentRailService
	dashboardCache  service.DashboardCache
	eventPublisher  service.EventPublisher
	qrService       service.QRCodeService
	logger          *slog.Logger
}

// BankServiceParams holds dependencies for BankService, injected by Fx.
type BankServiceParams struct {
	fx.In

	BankAccountRepo repository.BankAccountRepository
	BankLink        service.BankLinkService
	PaymentRail     service.PaymentRailService
	DashboardCache  service.DashboardCache
	EventPublisher  service.EventPublisher
	QRService       service.QRCodeService
	Logger          *slog.Logger
}

// NewBankService is the constructor for bankService.
func NewBankService(params BankServiceParams) usecase.BankUsecase {
	return &bankService{
		bankAccountRepo: params.BankAccountRepo,
		bankLink:        params.BankLink,
		paymentRail:     params.PaymentRail,
		dashboardCache:  params.DashboardCache,
		eventPublisher:  params.EventPublisher,
		qrService:       params.QRService,
		logger:          params.Logger,
	}
}

func (srv *bankService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateLinkToken requests a short-lived link token for the user. No retry:
// callers request a fresh token when one fails or expires.
func (srv *bankService) CreateLinkToken(ctx context.Context, user *entity.User) (string, error) {
	token, err := srv.bankLink.CreateLinkToken(ctx, user.ID.String(), user.DisplayName())
	if err != nil {
		srv.log(ctx).Error("Link token issuance failed", slog.Any("userID", user.ID), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrIssuerUnavailable, "failed to create link token")
	}

	return token, nil
}

// ExchangePublicToken runs the token-exchange flow:
//  1. exchange the public token for durable access credentials
//  2. list the item's accounts and select the first
//  3. mint a processor token for that account
//  4. create a funding source under the user's payment customer
//  5. persist the bank account record
//
// The public token is consumed at step 1 regardless of later failures; that
// gap is logged explicitly so operators can see spent-but-unlinked tokens.
func (srv *bankService) ExchangePublicToken(ctx context.Context, input usecase.ExchangeInput) (*entity.BankAccount, error) {
	user := input.User
	srv.log(ctx).Info("Starting public token exchange", slog.Any("userID", user.ID))

	// Step 1: exchange.
	exchange, err := srv.bankLink.ExchangePublicToken(ctx, input.PublicToken)
	if err != nil {
		srv.log(ctx).Error("Public token exchange failed", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrExchangeFailed, "failed to exchange public token")
	}

	// Step 2: list accounts, select the first.
	accounts, err := srv.bankLink.GetAccounts(ctx, exchange.AccessToken)
	if err != nil {
		srv.logConsumedTokenGap(ctx, user.ID, exchange.ItemID, "account fetch", err)

		return nil, errors.Wrap(domainerrors.ErrAccountFetchFailed, "failed to fetch accounts")
	}
	if len(accounts) == 0 {
		srv.logConsumedTokenGap(ctx, user.ID, exchange.ItemID, "account fetch", errors.New("item has no accounts"))

		return nil, errors.Wrap(domainerrors.ErrAccountFetchFailed, "linked item has no accounts")
	}
	account := accounts[0]

	// Step 3: processor token.
	processorToken, err := srv.bankLink.CreateProcessorToken(ctx, exchange.AccessToken, account.AccountID)
	if err != nil {
		srv.logConsumedTokenGap(ctx, user.ID, exchange.ItemID, "processor token", err)

		return nil, errors.Wrap(domainerrors.ErrProcessorTokenFailed, "failed to create processor token")
	}

	// Step 4: funding source.
	fundingSourceURL, err := srv.paymentRail.CreateFundingSource(ctx, &service.FundingSourceRequest{
		CustomerURL:    user.PaymentCustomerURL,
		ProcessorToken: processorToken,
		Name:           account.Name,
	})
	if err != nil {
		srv.logConsumedTokenGap(ctx, user.ID, exchange.ItemID, "funding source", err)

		return nil, errors.Wrap(domainerrors.ErrFundingSourceFailed, "failed to create funding source")
	}

	// Step 5: persist.
	bankAccount := &entity.BankAccount{
		UserID:           user.ID,
		ItemID:           exchange.ItemID,
		AccountID:        account.AccountID,
		AccessToken:      exchange.AccessToken,
		FundingSourceURL: fundingSourceURL,
		ShareID:          util.ObfuscateID(account.AccountID),
	}
	if err := srv.bankAccountRepo.Create(ctx, bankAccount); err != nil {
		srv.logConsumedTokenGap(ctx, user.ID, exchange.ItemID, "persist", err)

		if errors.Is(err, repository.ErrDuplicateBankAccount) {
			return nil, errors.Wrap(domainerrors.ErrConflict, "bank account already linked")
		}

		return nil, errors.Wrap(domainerrors.ErrWriteFailed, "failed to persist bank account")
	}

	// Success side effects. The record is already durable; neither may fail
	// the operation.
	srv.dashboardCache.Invalidate(user.ID)
	srv.publishLinkedEvent(ctx, bankAccount)

	srv.log(ctx).Info("Bank account linked",
		slog.Any("userID", user.ID),
		slog.Any("bankAccountID", bankAccount.ID),
		slog.String("itemID", bankAccount.ItemID),
	)

	return bankAccount, nil
}

// ListBankAccounts returns the user's linked accounts, served from the
// dashboard cache when fresh.
func (srv *bankService) ListBankAccounts(ctx context.Context, userID uuid.UUID) ([]*entity.BankAccount, error) {
	if cached, ok := srv.dashboardCache.Get(userID); ok {
		return cached, nil
	}

	accounts, err := srv.bankAccountRepo.FindByUserID(ctx, userID)
	if err != nil {
		srv.log(ctx).Error("Failed to list bank accounts", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list bank accounts")
	}

	srv.dashboardCache.Set(userID, accounts)

	return accounts, nil
}

// GetShareQR renders a PNG QR code of the shareable URL for one of the
// user's accounts.
func (srv *bankService) GetShareQR(ctx context.Context, userID, bankAccountID uuid.UUID) ([]byte, error) {
	account, err := srv.bankAccountRepo.FindByID(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, repository.ErrBankAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "bank account not found")
		}

		return nil, errors.Wrap(err, "failed to load bank account")
	}

	if account.UserID != userID {
		srv.log(ctx).Warn("Share QR requested for foreign account", slog.Any("userID", userID), slog.Any("bankAccountID", bankAccountID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "bank account does not belong to user")
	}

	png, err := srv.qrService.GenerateShareQR(account.ShareID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate share QR")
	}

	return png, nil
}

// logConsumedTokenGap records the window where the public token has been
// spent at step 1 but the flow failed before a record was written. The
// failure is surfaced, never masked.
func (srv *bankService) logConsumedTokenGap(ctx context.Context, userID uuid.UUID, itemID, step string, err error) {
	srv.log(ctx).Error("Token exchange failed after public token was consumed",
		slog.Any("userID", userID),
		slog.String("itemID", itemID),
		slog.String("failedStep", step),
		slog.Any("error", err),
	)
}

func (srv *bankService) publishLinkedEvent(ctx context.Context, account *entity.BankAccount) {
	event := &service.BankAccountLinkedEvent{
		RequestID:        deliverycontext.GetRequestIDFromContext(ctx),
		BankAccountID:    account.ID.String(),
		UserID:           account.UserID.String(),
		ItemID:           account.ItemID,
		AccountID:        account.AccountID,
		FundingSourceURL: account.FundingSourceURL,
	}

	if err := srv.eventPublisher.PublishBankAccountLinked(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish bank account linked event",
			slog.Any("bankAccountID", account.ID),
			slog.Any("error", err),
		)
	}
}
