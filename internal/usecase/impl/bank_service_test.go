package impl

import (
	"context"
	"testing"

	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	"lbank/internal/domain/repository"
	"lbank/internal/domain/service"
	"lbank/internal/errors"
	mockrepo "lbank/internal/mocks/repository"
	mocksvc "lbank/internal/mocks/service"
	"lbank/internal/usecase"
	"lbank/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// bankServiceFixture bundles the mocked dependencies of bankService.
type bankServiceFixture struct {
	bankAccountRepo *mockrepo.BankAccountRepository
	bankLink        *mocksvc.BankLinkService
	paymentRail     *mocksvc.PaymentRailService
	dashboardCache  *mocksvc.DashboardCache
	eventPublisher  *mocksvc.EventPublisher
	qrService       *mocksvc.QRCodeService
	service         usecase.BankUsecase
}

func newBankServiceFixture() *bankServiceFixture {
	fx := &bankServiceFixture{
		bankAccountRepo: &mockrepo.BankAccountRepository{},
		bankLink:        &mocksvc.BankLinkService{},
		paymentRail:     &mocksvc.PaymentRailService{},
		dashboardCache:  &mocksvc.DashboardCache{},
		eventPublisher:  &mocksvc.EventPublisher{},
		qrService:       &mocksvc.QRCodeService{},
	}

	fx.service = NewBankService(BankServiceParams{
		BankAccountRepo: fx.bankAccountRepo,
		BankLink:        fx.bankLink,
		PaymentRail:     fx.paymentRail,
		DashboardCache:  fx.dashboardCache,
		EventPublisher:  fx.eventPublisher,
		QRService:       fx.qrService,
		Logger:          discardLogger(),
	})

	return fx
}

func testExchangeResult() *service.ExchangeResult {
	return &service.ExchangeResult{
		AccessToken: "access-sandbox-123",
		ItemID:      "item-42",
	}
}

func testExternalAccounts() []service.ExternalAccount {
	return []service.ExternalAccount{
		{AccountID: "acct-1", Name: "Plaid Checking", Mask: "0000", Type: "depository", Subtype: "checking"},
		{AccountID: "acct-2", Name: "Plaid Saving", Mask: "1111", Type: "depository", Subtype: "savings"},
	}
}

func TestBankService_CreateLinkToken(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("CreateLinkToken", mock.Anything, user.ID.String(), user.DisplayName()).
		Return("link-sandbox-token", nil)

	token, err := fx.service.CreateLinkToken(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "link-sandbox-token", token)
}

func TestBankService_CreateLinkToken_IssuerDown(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("CreateLinkToken", mock.Anything, user.ID.String(), user.DisplayName()).
		Return("", errors.New("connection refused"))

	_, err := fx.service.CreateLinkToken(context.Background(), user)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrIssuerUnavailable))
}

func TestBankService_ExchangePublicToken(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(testExternalAccounts(), nil)
	fx.bankLink.On("CreateProcessorToken", mock.Anything, "access-sandbox-123", "acct-1").
		Return("processor-token-789", nil)
	fx.paymentRail.On("CreateFundingSource", mock.Anything, &service.FundingSourceRequest{
		CustomerURL:    user.PaymentCustomerURL,
		ProcessorToken: "processor-token-789",
		Name:           "Plaid Checking",
	}).Return("https://rail.example.com/funding-sources/fs-456", nil)
	fx.bankAccountRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.dashboardCache.On("Invalidate", user.ID).Return()
	fx.eventPublisher.On("PublishBankAccountLinked", mock.Anything, mock.Anything).Return(nil).Once()

	account, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.NoError(t, err)
	require.NotNil(t, account)

	// The first reported account is the one that gets linked.
	assert.Equal(t, user.ID, account.UserID)
	assert.Equal(t, "item-42", account.ItemID)
	assert.Equal(t, "acct-1", account.AccountID)
	assert.Equal(t, "access-sandbox-123", account.AccessToken)
	assert.Equal(t, "https://rail.example.com/funding-sources/fs-456", account.FundingSourceURL)
	assert.Equal(t, util.ObfuscateID("acct-1"), account.ShareID)

	// Success side effects: stale dashboard dropped, exactly one event.
	fx.dashboardCache.AssertCalled(t, "Invalidate", user.ID)
	fx.eventPublisher.AssertNumberOfCalls(t, "PublishBankAccountLinked", 1)
}

func TestBankService_ExchangePublicToken_ExchangeFails(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(nil, errors.New("invalid public token"))

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExchangeFailed))

	fx.bankLink.AssertNotCalled(t, "GetAccounts", mock.Anything, mock.Anything)
	fx.bankAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBankService_ExchangePublicToken_AccountFetchFails(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(nil, errors.New("item locked"))

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountFetchFailed))

	fx.bankLink.AssertNotCalled(t, "CreateProcessorToken", mock.Anything, mock.Anything, mock.Anything)
	fx.bankAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBankService_ExchangePublicToken_NoAccounts(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return([]service.ExternalAccount{}, nil)

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountFetchFailed))
}

func TestBankService_ExchangePublicToken_ProcessorTokenFails(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(testExternalAccounts(), nil)
	fx.bankLink.On("CreateProcessorToken", mock.Anything, "access-sandbox-123", "acct-1").
		Return("", errors.New("processor not enabled"))

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProcessorTokenFailed))

	fx.paymentRail.AssertNotCalled(t, "CreateFundingSource", mock.Anything, mock.Anything)
	fx.bankAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBankService_ExchangePublicToken_FundingSourceFails(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(testExternalAccounts(), nil)
	fx.bankLink.On("CreateProcessorToken", mock.Anything, "access-sandbox-123", "acct-1").
		Return("processor-token-789", nil)
	fx.paymentRail.On("CreateFundingSource", mock.Anything, mock.Anything).
		Return("", errors.New("customer suspended"))

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrFundingSourceFailed))

	// Nothing is persisted when a step before the write fails.
	fx.bankAccountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	fx.eventPublisher.AssertNotCalled(t, "PublishBankAccountLinked", mock.Anything, mock.Anything)
}

func TestBankService_ExchangePublicToken_DuplicateLink(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(testExternalAccounts(), nil)
	fx.bankLink.On("CreateProcessorToken", mock.Anything, "access-sandbox-123", "acct-1").
		Return("processor-token-789", nil)
	fx.paymentRail.On("CreateFundingSource", mock.Anything, mock.Anything).
		Return("https://rail.example.com/funding-sources/fs-456", nil)
	fx.bankAccountRepo.On("Create", mock.Anything, mock.Anything).
		Return(repository.ErrDuplicateBankAccount)

	_, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))

	fx.eventPublisher.AssertNotCalled(t, "PublishBankAccountLinked", mock.Anything, mock.Anything)
}

func TestBankService_ExchangePublicToken_PublishFailureDoesNotFail(t *testing.T) {
	fx := newBankServiceFixture()
	user := createTestUser()

	fx.bankLink.On("ExchangePublicToken", mock.Anything, "public-sandbox-token").
		Return(testExchangeResult(), nil)
	fx.bankLink.On("GetAccounts", mock.Anything, "access-sandbox-123").
		Return(testExternalAccounts(), nil)
	fx.bankLink.On("CreateProcessorToken", mock.Anything, "access-sandbox-123", "acct-1").
		Return("processor-token-789", nil)
	fx.paymentRail.On("CreateFundingSource", mock.Anything, mock.Anything).
		Return("https://rail.example.com/funding-sources/fs-456", nil)
	fx.bankAccountRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	fx.dashboardCache.On("Invalidate", user.ID).Return()
	fx.eventPublisher.On("PublishBankAccountLinked", mock.Anything, mock.Anything).
		Return(errors.New("broker unreachable"))

	// The account is durable; a publish failure is logged, not surfaced.
	account, err := fx.service.ExchangePublicToken(context.Background(), usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	})
	require.NoError(t, err)
	require.NotNil(t, account)
}

func TestBankService_ListBankAccounts_CacheMiss(t *testing.T) {
	fx := newBankServiceFixture()
	userID := uuid.New()
	accounts := []*entity.BankAccount{createTestBankAccount(userID)}

	fx.dashboardCache.On("Get", userID).Return(nil, false)
	fx.bankAccountRepo.On("FindByUserID", mock.Anything, userID).Return(accounts, nil)
	fx.dashboardCache.On("Set", userID, accounts).Return()

	got, err := fx.service.ListBankAccounts(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)

	fx.dashboardCache.AssertCalled(t, "Set", userID, accounts)
}

func TestBankService_ListBankAccounts_CacheHit(t *testing.T) {
	fx := newBankServiceFixture()
	userID := uuid.New()
	accounts := []*entity.BankAccount{createTestBankAccount(userID)}

	fx.dashboardCache.On("Get", userID).Return(accounts, true)

	got, err := fx.service.ListBankAccounts(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, accounts, got)

	fx.bankAccountRepo.AssertNotCalled(t, "FindByUserID", mock.Anything, mock.Anything)
}

func TestBankService_GetShareQR(t *testing.T) {
	fx := newBankServiceFixture()
	userID := uuid.New()
	account := createTestBankAccount(userID)

	fx.bankAccountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)
	fx.qrService.On("GenerateShareQR", account.ShareID).Return([]byte{0x89, 0x50, 0x4E, 0x47}, nil)

	png, err := fx.service.GetShareQR(context.Background(), userID, account.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestBankService_GetShareQR_NotFound(t *testing.T) {
	fx := newBankServiceFixture()

	accountID := uuid.New()
	fx.bankAccountRepo.On("FindByID", mock.Anything, accountID).
		Return(nil, repository.ErrBankAccountNotFound)

	_, err := fx.service.GetShareQR(context.Background(), uuid.New(), accountID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestBankService_GetShareQR_ForeignAccount(t *testing.T) {
	fx := newBankServiceFixture()
	account := createTestBankAccount(uuid.New())

	fx.bankAccountRepo.On("FindByID", mock.Anything, account.ID).Return(account, nil)

	// Another user must not be able to render the QR for this account.
	_, err := fx.service.GetShareQR(context.Background(), uuid.New(), account.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	fx.qrService.AssertNotCalled(t, "GenerateShareQR", mock.Anything)
}
