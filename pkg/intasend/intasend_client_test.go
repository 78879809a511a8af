package intasend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/christinemirimba/VibeCodingHackathon/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) Client {
	return NewClient(Config{
		SecretKey:   "sk-test",
		BaseURL:     serverURL,
		CallbackURL: "https://example.com/api/v1/payments/callback",
	})
}

func TestInitiateSTKPush_Success(t *testing.T) {
	var gotPayload chargePayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"txn-1","invoice":{"invoice_id":"inv-1","state":"PENDING"}}`))
	}))
	defer server.Close()

	res, err := newTestClient(server.URL).InitiateSTKPush(context.Background(), ChargeRequest{
		Amount:   100,
		Currency: "KES",
		Email:    "jane@example.com",
		Phone:    "254712345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "txn-1", res.TransactionID)
	assert.Equal(t, "PENDING", res.State)
	assert.Equal(t, "sk-test", gotPayload.APIKey)
	assert.Equal(t, "MPESA_STK_PUSH", gotPayload.Channel)
	assert.Equal(t, "254712345678", gotPayload.Customer.Phone)
	assert.Equal(t, "https://example.com/api/v1/payments/callback", gotPayload.CallbackURL)
}

func TestInitiateSTKPush_FallsBackToInvoiceID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invoice":{"invoice_id":"inv-1","state":"PENDING"}}`))
	}))
	defer server.Close()

	res, err := newTestClient(server.URL).InitiateSTKPush(context.Background(), ChargeRequest{
		Amount:   100,
		Currency: "KES",
		Email:    "jane@example.com",
		Phone:    "254712345678",
	})

	require.NoError(t, err)
	assert.Equal(t, "inv-1", res.TransactionID)
}

func TestInitiateSTKPush_MissingContact(t *testing.T) {
	res, err := newTestClient("http://unused").InitiateSTKPush(context.Background(), ChargeRequest{
		Amount:   100,
		Currency: "KES",
	})

	assert.ErrorIs(t, err, domain.ErrPaymentValidation)
	assert.Nil(t, res)
}

func TestInitiateSTKPush_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	res, err := newTestClient(server.URL).InitiateSTKPush(context.Background(), ChargeRequest{
		Amount:   100,
		Currency: "KES",
		Email:    "jane@example.com",
		Phone:    "254712345678",
	})

	assert.ErrorIs(t, err, domain.ErrPaymentGateway)
	assert.Nil(t, res)
}

func TestInitiateSTKPush_MissingTransactionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invoice":{"state":"PENDING"}}`))
	}))
	defer server.Close()

	res, err := newTestClient(server.URL).InitiateSTKPush(context.Background(), ChargeRequest{
		Amount:   100,
		Currency: "KES",
		Email:    "jane@example.com",
		Phone:    "254712345678",
	})

	assert.ErrorIs(t, err, domain.ErrPaymentGateway)
	assert.Nil(t, res)
}
