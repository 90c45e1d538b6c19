package handler

import (
	"log/slog"
	"net/http"

	"lbank/internal/delivery/http/middleware"
	"lbank/internal/delivery/http/response"
	"lbank/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BankHandler holds dependencies for bank-linking handlers. All routes
// require an authenticated session.
type BankHandler struct {
	uc     usecase.BankUsecase
	logger *slog.Logger
}

// NewBankHandler is the constructor for BankHandler, injected by Fx.
func NewBankHandler(uc usecase.BankUsecase, logger *slog.Logger) *BankHandler {
	return &BankHandler{
		uc:     uc,
		logger: logger,
	}
}

type exchangeRequest struct {
	PublicToken string `json:"publicToken" validate:"required"`
}

// bankAccountResponse is the safe projection of a bank account record. The
// access token never leaves the server.
type bankAccountResponse struct {
	ID               string `json:"id"`
	ItemID           string `json:"itemId"`
	AccountID        string `json:"accountId"`
	FundingSourceURL string `json:"fundingSourceUrl"`
	ShareID          string `json:"shareId"`
}

// CreateLinkToken issues a short-lived token for the client linking widget.
func (h *BankHandler) CreateLinkToken(c echo.Context) error {
	user := middleware.CurrentUser(c)

	token, err := h.uc.CreateLinkToken(c.Request().Context(), user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"linkToken": token}, "Link token created")
}

// ExchangePublicToken runs the full token-exchange flow and returns the new
// bank account record.
func (h *BankHandler) ExchangePublicToken(c echo.Context) error {
	var input exchangeRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid exchange input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)

	account, err := h.uc.ExchangePublicToken(c.Request().Context(), usecase.ExchangeInput{
		User:        user,
		PublicToken: input.PublicToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &bankAccountResponse{
		ID:               account.ID.String(),
		ItemID:           account.ItemID,
		AccountID:        account.AccountID,
		FundingSourceURL: account.FundingSourceURL,
		ShareID:          account.ShareID,
	}, "Bank account linked successfully")
}

// ListBankAccounts returns the user's linked accounts.
func (h *BankHandler) ListBankAccounts(c echo.Context) error {
	user := middleware.CurrentUser(c)

	accounts, err := h.uc.ListBankAccounts(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	items := make([]*bankAccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, &bankAccountResponse{
			ID:               account.ID.String(),
			ItemID:           account.ItemID,
			AccountID:        account.AccountID,
			FundingSourceURL: account.FundingSourceURL,
			ShareID:          account.ShareID,
		})
	}

	return response.Success(c, http.StatusOK, items, "")
}

// GetShareQR renders the share QR code for one of the user's accounts as PNG.
func (h *BankHandler) GetShareQR(c echo.Context) error {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid bank account id")
	}

	user := middleware.CurrentUser(c)

	png, err := h.uc.GetShareQR(c.Request().Context(), user.ID, accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
