// Package banklink implements the client for the external bank-linking service.
package banklink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lbank/config"
	"lbank/internal/domain/service"
	"lbank/internal/errors"
)

const defaultTimeout = 15 * time.Second

// client talks to the bank-linking service over its JSON-over-HTTP API.
// Credentials travel in the request body alongside each call.
type client struct {
	baseURL      string
	clientID     string
	clientSecret string
	products     []string
	language     string
	countryCodes []string
	processor    string
	httpClient   *http.Client
}

// NewClient is the constructor for the bank-linking client.
func NewClient(cfg *config.Config) (service.BankLinkService, error) {
	if cfg.BankLink == nil || cfg.BankLink.BaseURL == "" {
		return nil, errors.New("bank link base URL must be provided")
	}

	timeout := cfg.BankLink.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	products := cfg.BankLink.Products
	if len(products) == 0 {
		products = []string{"auth"}
	}
	language := cfg.BankLink.Language
	if language == "" {
		language = "en"
	}
	countryCodes := cfg.BankLink.CountryCodes
	if len(countryCodes) == 0 {
		countryCodes = []string{"US"}
	}
	processor := cfg.BankLink.Processor
	if processor == "" {
		processor = "dwolla"
	}

	return &client{
		baseURL:      strings.TrimRight(cfg.BankLink.BaseURL, "/"),
		clientID:     cfg.BankLink.ClientID,
		clientSecret: cfg.BankLink.ClientSecret,
		products:     products,
		language:     language,
		countryCodes: countryCodes,
		processor:    processor,
		httpClient:   &http.Client{Timeout: timeout},
	}, nil
}

type linkTokenRequest struct {
	User struct {
		ClientUserID string `json:"client_user_id"`
	} `json:"user"`
	ClientName   string   `json:"client_name"`
	Products     []string `json:"products"`
	Language     string   `json:"language"`
	CountryCodes []string `json:"country_codes"`
}

type linkTokenResponse struct {
	LinkToken string `json:"link_token"`
}

// CreateLinkToken requests a short-lived link token scoped to one user.
func (c *client) CreateLinkToken(ctx context.Context, userID string, displayName string) (string, error) {
	reqBody := linkTokenRequest{
		ClientName:   displayName,
		Products:     c.products,
		Language:     c.language,
		CountryCodes: c.countryCodes,
	}
	reqBody.User.ClientUserID = userID

	var resp linkTokenResponse
	if err := c.post(ctx, "/link/token/create", reqBody, &resp); err != nil {
		return "", err
	}
	if resp.LinkToken == "" {
		return "", errors.New("bank link service returned empty link token")
	}

	return resp.LinkToken, nil
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
	ItemID      string `json:"item_id"`
}

// ExchangePublicToken trades a one-time public token for durable credentials.
func (c *client) ExchangePublicToken(ctx context.Context, publicToken string) (*service.ExchangeResult, error) {
	var resp exchangeResponse
	if err := c.post(ctx, "/item/public_token/exchange", exchangeRequest{PublicToken: publicToken}, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" || resp.ItemID == "" {
		return nil, errors.New("bank link service returned incomplete exchange result")
	}

	return &service.ExchangeResult{
		AccessToken: resp.AccessToken,
		ItemID:      resp.ItemID,
	}, nil
}

type accountsRequest struct {
	AccessToken string `json:"access_token"`
}

type accountsResponse struct {
	Accounts []struct {
		AccountID string `json:"account_id"`
		Name      string `json:"name"`
		Mask      string `json:"mask"`
		Type      string `json:"type"`
		Subtype   string `json:"subtype"`
		Balances  struct {
			// NullDecimal: the linking service reports null balances for
			// account types it cannot quote.
			Available decimal.NullDecimal `json:"available"`
			Current   decimal.NullDecimal `json:"current"`
		} `json:"balances"`
	} `json:"accounts"`
}

// GetAccounts lists the external accounts reachable through an access token.
func (c *client) GetAccounts(ctx context.Context, accessToken string) ([]service.ExternalAccount, error) {
	var resp accountsResponse
	if err := c.post(ctx, "/accounts/get", accountsRequest{AccessToken: accessToken}, &resp); err != nil {
		return nil, err
	}

	accounts := make([]service.ExternalAccount, 0, len(resp.Accounts))
	for _, acct := range resp.Accounts {
		accounts = append(accounts, service.ExternalAccount{
			AccountID:        acct.AccountID,
			Name:             acct.Name,
			Mask:             acct.Mask,
			Type:             acct.Type,
			Subtype:          acct.Subtype,
			AvailableBalance: acct.Balances.Available.Decimal,
			CurrentBalance:   acct.Balances.Current.Decimal,
		})
	}

	return accounts, nil
}

type processorTokenRequest struct {
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id"`
	Processor   string `json:"processor"`
}

type processorTokenResponse struct {
	ProcessorToken string `json:"processor_token"`
}

// CreateProcessorToken derives a token authorizing the payment-rail processor
// to act on one specific account. The processor namespace comes from config.
func (c *client) CreateProcessorToken(ctx context.Context, accessToken string, accountID string) (string, error) {
	var resp processorTokenResponse
	req := processorTokenRequest{
		AccessToken: accessToken,
		AccountID:   accountID,
		Processor:   c.processor,
	}
	if err := c.post(ctx, "/processor/token/create", req, &resp); err != nil {
		return "", err
	}
	if resp.ProcessorToken == "" {
		return "", errors.New("bank link service returned empty processor token")
	}

	return resp.ProcessorToken, nil
}

// post sends a JSON request with the client credentials merged into the body
// headers and decodes a JSON response. Non-2xx responses become errors
// carrying the status and a truncated body for diagnostics.
func (c *client) post(ctx context.Context, path string, reqBody any, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Plaid-Client-Id", c.clientID)
	req.Header.Set("Plaid-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return errors.Errorf("bank link service %s returned status %d: %s", path, resp.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode bank link %s response", path)
	}

	return nil
}
