package handlers

import (
	"errors"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/internal/api/presenters"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/payment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type (
	PaymentHandler interface {
		InitiatePayment(c *fiber.Ctx) error
		PaymentCallback(c *fiber.Ctx) error
	}

	paymentHandler struct {
		paymentService payment.PaymentService
		validator      *validator.Validate
	}
)

func NewPaymentHandler(paymentService payment.PaymentService, validator *validator.Validate) PaymentHandler {
	return &paymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *paymentHandler) InitiatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.InitiatePaymentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedInitiatePayment, domain.ErrPaymentValidation)
	}

	res, err := h.paymentService.InitiatePayment(c.Context(), *req, userID)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, domain.ErrPaymentValidation) {
			status = fiber.StatusBadRequest
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedInitiatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessInitiatePayment)
}

// PaymentCallback acknowledges the gateway with 200 once the callback has
// been received; processing failures are logged, not surfaced, so the
// gateway does not retry into an error loop.
func (h *paymentHandler) PaymentCallback(c *fiber.Ctx) error {
	req := new(domain.PaymentCallbackRequest)
	if err := c.BodyParser(req); err != nil {
		log.Errorf("unreadable payment callback body: %v", err)
		return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCallback)
	}

	if err := h.paymentService.HandleCallback(c.Context(), *req); err != nil {
		log.Errorf("processing payment callback for transaction %s: %v", req.TransactionID, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCallback)
}
