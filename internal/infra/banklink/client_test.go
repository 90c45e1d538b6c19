package banklink

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lbank/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*httptest.Server, *client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.BankLink = &config.BankLinkConfig{
		BaseURL:      server.URL,
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		Products:     []string{"auth"},
		Language:     "en",
		CountryCodes: []string{"US"},
		Processor:    "dwolla",
		Timeout:      5 * time.Second,
	}

	svc, err := NewClient(cfg)
	require.NoError(t, err)

	return server, svc.(*client)
}

func TestClient_CreateLinkToken(t *testing.T) {
	var gotBody linkTokenRequest
	var gotClientID, gotSecret string

	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/link/token/create", r.URL.Path)
		gotClientID = r.Header.Get("Plaid-Client-Id")
		gotSecret = r.Header.Get("Plaid-Secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		json.NewEncoder(w).Encode(map[string]string{"link_token": "link-sandbox-abc"})
	}))

	token, err := c.CreateLinkToken(context.Background(), "user-1", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "link-sandbox-abc", token)

	assert.Equal(t, "test-client", gotClientID)
	assert.Equal(t, "test-secret", gotSecret)
	assert.Equal(t, "user-1", gotBody.User.ClientUserID)
	assert.Equal(t, "Jane Doe", gotBody.ClientName)
	assert.Equal(t, []string{"auth"}, gotBody.Products)
	assert.Equal(t, "en", gotBody.Language)
	assert.Equal(t, []string{"US"}, gotBody.CountryCodes)
}

func TestClient_CreateLinkToken_ServerError(t *testing.T) {
	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))

	_, err := c.CreateLinkToken(context.Background(), "user-1", "Jane Doe")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestClient_ExchangePublicToken(t *testing.T) {
	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/item/public_token/exchange", r.URL.Path)

		var req exchangeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "public-sandbox-xyz", req.PublicToken)

		json.NewEncoder(w).Encode(map[string]string{
			"access_token": "access-sandbox-123",
			"item_id":      "item-42",
		})
	}))

	result, err := c.ExchangePublicToken(context.Background(), "public-sandbox-xyz")
	require.NoError(t, err)
	assert.Equal(t, "access-sandbox-123", result.AccessToken)
	assert.Equal(t, "item-42", result.ItemID)
}

func TestClient_ExchangePublicToken_IncompleteResult(t *testing.T) {
	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "access-only"})
	}))

	_, err := c.ExchangePublicToken(context.Background(), "public-sandbox-xyz")
	assert.Error(t, err)
}

func TestClient_GetAccounts(t *testing.T) {
	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/get", r.URL.Path)

		var req accountsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "access-sandbox-123", req.AccessToken)

		w.Write([]byte(`{"accounts":[
			{"account_id":"acct-1","name":"Plaid Checking","mask":"0000","type":"depository","subtype":"checking",
			 "balances":{"available":100.50,"current":110.25}},
			{"account_id":"acct-2","name":"Plaid Credit Card","mask":"3333","type":"credit","subtype":"credit card",
			 "balances":{"available":null,"current":410}}
		]}`))
	}))

	accounts, err := c.GetAccounts(context.Background(), "access-sandbox-123")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "acct-1", accounts[0].AccountID)
	assert.Equal(t, "Plaid Checking", accounts[0].Name)
	assert.Equal(t, "0000", accounts[0].Mask)
	assert.Equal(t, "depository", accounts[0].Type)
	assert.Equal(t, "checking", accounts[0].Subtype)
	assert.True(t, accounts[0].AvailableBalance.Equal(decimal.NewFromFloat(100.50)))
	assert.True(t, accounts[0].CurrentBalance.Equal(decimal.NewFromFloat(110.25)))

	// Null balances decode as zero.
	assert.True(t, accounts[1].AvailableBalance.IsZero())
	assert.True(t, accounts[1].CurrentBalance.Equal(decimal.NewFromInt(410)))
}

func TestClient_CreateProcessorToken(t *testing.T) {
	_, c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/processor/token/create", r.URL.Path)

		var req processorTokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "access-sandbox-123", req.AccessToken)
		assert.Equal(t, "acct-1", req.AccountID)
		assert.Equal(t, "dwolla", req.Processor)

		json.NewEncoder(w).Encode(map[string]string{"processor_token": "processor-sandbox-789"})
	}))

	token, err := c.CreateProcessorToken(context.Background(), "access-sandbox-123", "acct-1")
	require.NoError(t, err)
	assert.Equal(t, "processor-sandbox-789", token)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewClient(cfg)
	assert.Error(t, err)
}
