package domain

import (
	"errors"
)

var (
	MessageSuccessInitiatePayment = "payment initiated successfully"
	MessageSuccessCallback        = "callback received"

	MessageFailedInitiatePayment = "failed to initiate payment"

	ErrPaymentValidation = errors.New("email and phone number are required")
	ErrPaymentGateway    = errors.New("payment gateway request failed")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrPaymentNotPending = errors.New("payment is not pending")
)

// Gateway callback status values as delivered by IntaSend.
const (
	CallbackStatusSuccess  = "SUCCESS"
	CallbackStatusComplete = "COMPLETE"
	CallbackStatusFailed   = "FAILED"
)

type (
	InitiatePaymentRequest struct {
		Email  string `json:"email" validate:"required,email"`
		Phone  string `json:"phone" validate:"required"`
		Months int    `json:"months,omitempty" validate:"omitempty,min=1,max=12"`
	}

	InitiatePaymentResponse struct {
		TransactionID string  `json:"transaction_id"`
		State         string  `json:"state"`
		Amount        float64 `json:"amount"`
		Currency      string  `json:"currency"`
	}

	PaymentCallbackRequest struct {
		TransactionID string `json:"transaction_id" validate:"required"`
		Status        string `json:"status" validate:"required"`
	}
)
