// Package paymentrail implements the client for the external payment-rail service.
package paymentrail

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"lbank/config"
	"lbank/internal/domain/service"
	"lbank/internal/errors"
)

const defaultTimeout = 15 * time.Second

// client talks to the payment-rail service. Created resources are returned
// as reference URLs in the Location header, not response bodies.
type client struct {
	baseURL    string
	key        string
	secret     string
	httpClient *http.Client
}

// NewClient is the constructor for the payment-rail client.
func NewClient(cfg *config.Config) (service.PaymentRailService, error) {
	if cfg.PaymentRail == nil || cfg.PaymentRail.BaseURL == "" {
		return nil, errors.New("payment rail base URL must be provided")
	}

	timeout := cfg.PaymentRail.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		baseURL:    strings.TrimRight(cfg.PaymentRail.BaseURL, "/"),
		key:        cfg.PaymentRail.Key,
		secret:     cfg.PaymentRail.Secret,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type createCustomerRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Type        string `json:"type"`
	Address1    string `json:"address1"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	DateOfBirth string `json:"dateOfBirth"`
	SSN         string `json:"ssn"`
}

// CreateCustomer registers a personal customer record.
// Not idempotent: a second call for the same person mints a second record.
func (c *client) CreateCustomer(ctx context.Context, profile *service.CustomerProfile) (string, error) {
	req := createCustomerRequest{
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		Type:        "personal",
		Address1:    profile.Address1,
		City:        profile.City,
		State:       profile.State,
		PostalCode:  profile.PostalCode,
		DateOfBirth: profile.DateOfBirth,
		SSN:         profile.SSN,
	}

	return c.postForLocation(ctx, "/customers", req)
}

type createFundingSourceRequest struct {
	CustomerURL string `json:"customerUrl"`
	PlaidToken  string `json:"plaidToken"`
	Name        string `json:"name"`
}

// CreateFundingSource registers a fundable bank account under a customer.
func (c *client) CreateFundingSource(ctx context.Context, req *service.FundingSourceRequest) (string, error) {
	body := createFundingSourceRequest{
		CustomerURL: req.CustomerURL,
		PlaidToken:  req.ProcessorToken,
		Name:        req.Name,
	}

	return c.postForLocation(ctx, "/funding-sources", body)
}

// postForLocation sends a JSON POST and returns the created resource URL
// from the Location header.
func (c *client) postForLocation(ctx context.Context, path string, reqBody any) (string, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.key, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return "", errors.Errorf("payment rail %s returned status %d: %s", path, resp.StatusCode, string(snippet))
	}

	location := resp.Header.Get("Location")
	if location == "" {
		return "", errors.Errorf("payment rail %s returned no Location header", path)
	}

	return location, nil
}
