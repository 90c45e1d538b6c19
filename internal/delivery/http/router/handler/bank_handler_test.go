package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lbank/internal/domain/entity"
	domainerrors "lbank/internal/domain/errors"
	mockusecase "lbank/internal/mocks/usecase"
	"lbank/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthenticatedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, user *entity.User) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("currentUser", user)

	return c
}

func TestBankHandler_CreateLinkToken(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}

	uc.On("CreateLinkToken", mock.Anything, user).Return("link-sandbox-token", nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/bank/link-token", nil)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)

	require.NoError(t, handler.CreateLinkToken(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "link-sandbox-token")
}

func TestBankHandler_ExchangePublicToken(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}

	uc.On("ExchangePublicToken", mock.Anything, usecase.ExchangeInput{
		User:        user,
		PublicToken: "public-sandbox-token",
	}).Return(&entity.BankAccount{
		ID:          uuid.New(),
		UserID:      user.ID,
		ItemID:      "item-42",
		AccountID:   "acct-1",
		AccessToken: "access-sandbox-123",
		ShareID:     "YWNjdC0x",
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/bank/exchange",
		strings.NewReader(`{"publicToken":"public-sandbox-token"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)

	require.NoError(t, handler.ExchangePublicToken(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "item-42")

	// The durable access token stays server-side.
	assert.NotContains(t, rec.Body.String(), "access-sandbox-123")
}

func TestBankHandler_ExchangePublicToken_MissingToken(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/bank/exchange", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)

	err := handler.ExchangePublicToken(c)
	require.Error(t, err)

	uc.AssertNotCalled(t, "ExchangePublicToken", mock.Anything, mock.Anything)
}

func TestBankHandler_ListBankAccounts(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}

	uc.On("ListBankAccounts", mock.Anything, user.ID).Return([]*entity.BankAccount{
		{ID: uuid.New(), UserID: user.ID, ItemID: "item-42", AccountID: "acct-1", ShareID: "YWNjdC0x"},
	}, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/bank/accounts", nil)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)

	require.NoError(t, handler.ListBankAccounts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "acct-1")
}

func TestBankHandler_GetShareQR(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}
	accountID := uuid.New()

	pngBytes := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	uc.On("GetShareQR", mock.Anything, user.ID, accountID).Return(pngBytes, nil)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/bank/accounts/"+accountID.String()+"/share-qr", nil)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	require.NoError(t, handler.GetShareQR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, pngBytes, rec.Body.Bytes())
}

func TestBankHandler_GetShareQR_InvalidID(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/bank/accounts/not-a-uuid/share-qr", nil)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, handler.GetShareQR(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.AssertNotCalled(t, "GetShareQR", mock.Anything, mock.Anything, mock.Anything)
}

func TestBankHandler_GetShareQR_Forbidden(t *testing.T) {
	uc := &mockusecase.BankUsecase{}
	handler := &BankHandler{uc: uc}
	user := &entity.User{ID: uuid.New()}
	accountID := uuid.New()

	uc.On("GetShareQR", mock.Anything, user.ID, accountID).
		Return(nil, domainerrors.ErrForbidden)

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/bank/accounts/"+accountID.String()+"/share-qr", nil)
	rec := httptest.NewRecorder()
	c := newAuthenticatedContext(e, req, rec, user)
	c.SetParamNames("id")
	c.SetParamValues(accountID.String())

	err := handler.GetShareQR(c)
	require.Error(t, err)
}
