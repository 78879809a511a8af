package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/entities"
	"github.com/christinemirimba/VibeCodingHackathon/internal/utils/mailing"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/intasend"
	"github.com/christinemirimba/VibeCodingHackathon/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PaymentService interface {
		InitiatePayment(ctx context.Context, req domain.InitiatePaymentRequest, userID string) (*domain.InitiatePaymentResponse, error)
		HandleCallback(ctx context.Context, req domain.PaymentCallbackRequest) error
	}

	paymentService struct {
		paymentRepository PaymentRepository
		userRepository    user.UserRepository
		gateway           intasend.Client
		mailer            mailing.Mailer
		premiumPrice      float64
		currency          string
	}
)

func NewPaymentService(paymentRepository PaymentRepository, userRepository user.UserRepository, gateway intasend.Client, mailer mailing.Mailer, premiumPrice float64, currency string) PaymentService {
	return &paymentService{
		paymentRepository: paymentRepository,
		userRepository:    userRepository,
		gateway:           gateway,
		mailer:            mailer,
		premiumPrice:      premiumPrice,
		currency:          currency,
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, req domain.InitiatePaymentRequest, userID string) (*domain.InitiatePaymentResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.Email == "" || req.Phone == "" {
		return nil, domain.ErrPaymentValidation
	}

	months := req.Months
	if months <= 0 {
		months = 1
	}
	amount := s.premiumPrice * float64(months)

	charge, err := s.gateway.InitiateSTKPush(ctx, intasend.ChargeRequest{
		Amount:   amount,
		Currency: s.currency,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		log.Errorf("initiating charge for user %s: %v", userID, err)
		if errors.Is(err, domain.ErrPaymentValidation) {
			return nil, err
		}
		return nil, domain.ErrPaymentGateway
	}

	payment := &entities.Payment{
		ID:            uuid.New(),
		UserID:        userUUID,
		Amount:        amount,
		Currency:      s.currency,
		TransactionID: charge.TransactionID,
		Status:        entities.PaymentStatusPending,
		Description:   fmt.Sprintf("Premium subscription (%d month(s))", months),
		PremiumMonths: months,
	}
	if err := s.paymentRepository.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	return &domain.InitiatePaymentResponse{
		TransactionID: charge.TransactionID,
		State:         charge.State,
		Amount:        amount,
		Currency:      s.currency,
	}, nil
}

// HandleCallback processes an asynchronous status report from the gateway.
// It is idempotent: a callback delivered more than once never re-applies
// the premium extension.
func (s *paymentService) HandleCallback(ctx context.Context, req domain.PaymentCallbackRequest) error {
	payment, err := s.paymentRepository.GetPaymentByTransactionID(ctx, req.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warnf("callback for unknown transaction %s ignored", req.TransactionID)
			return nil
		}
		return err
	}
	if payment.Status != entities.PaymentStatusPending {
		log.Infof("callback for transaction %s already processed (status %s)", req.TransactionID, payment.Status)
		return nil
	}

	switch req.Status {
	case domain.CallbackStatusSuccess, domain.CallbackStatusComplete:
		completed, err := s.paymentRepository.CompleteWithPremiumExtension(ctx, req.TransactionID)
		if err != nil {
			if errors.Is(err, domain.ErrPaymentNotPending) {
				return nil
			}
			return err
		}
		s.notifyPremiumActivated(ctx, completed)
	case domain.CallbackStatusFailed:
		if err := s.paymentRepository.MarkFailed(ctx, req.TransactionID); err != nil {
			return err
		}
	default:
		log.Warnf("callback for transaction %s carried unknown status %q", req.TransactionID, req.Status)
	}
	return nil
}

func (s *paymentService) notifyPremiumActivated(ctx context.Context, payment *entities.Payment) {
	owner, err := s.userRepository.GetUserByID(ctx, payment.UserID.String())
	if err != nil {
		log.Errorf("loading user %s for premium mail: %v", payment.UserID, err)
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your payment of %s %.2f was received and your premium access is now active for %d month(s). Enjoy unlimited recipe generation!</p>",
		owner.Username, payment.Currency, payment.Amount, payment.PremiumMonths,
	)
	if err := s.mailer.SendMail(owner.Email, "Premium subscription activated", body); err != nil {
		log.Errorf("sending premium mail to %s: %v", owner.Email, err)
	}
}
