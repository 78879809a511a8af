package intasend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
)

const defaultBaseURL = "https://sandbox.intasend.com/api/v1"

type (
	// Client initiates mobile-money charges against the IntaSend API.
	// Status updates arrive asynchronously on the webhook route, not here.
	Client interface {
		InitiateSTKPush(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
	}

	Config struct {
		SecretKey      string
		PublishableKey string
		BaseURL        string
		CallbackURL    string
		Timeout        time.Duration
	}

	ChargeRequest struct {
		Amount   float64
		Currency string
		Email    string
		Phone    string
	}

	ChargeResponse struct {
		TransactionID string
		State         string
	}

	client struct {
		config     Config
		httpClient *http.Client
	}

	chargePayload struct {
		APIKey      string         `json:"api_key"`
		Currency    string         `json:"currency"`
		Amount      float64        `json:"amount"`
		Channel     string         `json:"channel"`
		Customer    chargeCustomer `json:"customer"`
		CallbackURL string         `json:"callback_url"`
	}

	chargeCustomer struct {
		Email string `json:"email"`
		Phone string `json:"phone"`
	}

	chargeAPIResponse struct {
		ID      string `json:"id"`
		Invoice struct {
			InvoiceID string `json:"invoice_id"`
			State     string `json:"state"`
		} `json:"invoice"`
	}
)

func NewClient(config Config) Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	return &client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
	}
}

func (c *client) InitiateSTKPush(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	if req.Email == "" || req.Phone == "" {
		return nil, domain.ErrPaymentValidation
	}

	payload := chargePayload{
		APIKey:      c.config.SecretKey,
		Currency:    req.Currency,
		Amount:      req.Amount,
		Channel:     "MPESA_STK_PUSH",
		Customer:    chargeCustomer{Email: req.Email, Phone: req.Phone},
		CallbackURL: c.config.CallbackURL,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/payments", bytes.NewBuffer(payloadJSON))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentGateway, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s - %s", domain.ErrPaymentGateway, resp.Status, string(bodyBytes))
	}

	var apiResp chargeAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", domain.ErrPaymentGateway, err)
	}

	transactionID := apiResp.ID
	if transactionID == "" {
		transactionID = apiResp.Invoice.InvoiceID
	}
	if transactionID == "" {
		return nil, fmt.Errorf("%w: response missing transaction id", domain.ErrPaymentGateway)
	}

	return &ChargeResponse{
		TransactionID: transactionID,
		State:         apiResp.Invoice.State,
	}, nil
}
