package payment

import (
	"context"
	"time"

	"github.com/christinemirimba/VibeCodingHackathon/domain"
	"github.com/christinemirimba/VibeCodingHackathon/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PaymentRepository interface {
		CreatePayment(ctx context.Context, payment *entities.Payment) error
		GetPaymentByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error)
		CompleteWithPremiumExtension(ctx context.Context, transactionID string) (*entities.Payment, error)
		MarkFailed(ctx context.Context, transactionID string) error
	}

	paymentRepository struct {
		db *gorm.DB
	}
)

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *entities.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*entities.Payment, error) {
	var payment entities.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// CompleteWithPremiumExtension moves a pending payment to completed and
// extends the owning user's premium expiry, in one transaction. The payment
// row is locked and its status re-checked inside the transaction, so a
// callback delivered twice applies the extension exactly once: the second
// delivery sees a non-pending payment and gets ErrPaymentNotPending.
func (r *paymentRepository) CompleteWithPremiumExtension(ctx context.Context, transactionID string) (*entities.Payment, error) {
	var payment entities.Payment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("transaction_id = ?", transactionID).
			First(&payment).Error; err != nil {
			return err
		}

		if payment.Status != entities.PaymentStatusPending {
			return domain.ErrPaymentNotPending
		}

		if err := tx.Model(&entities.Payment{}).
			Where("id = ?", payment.ID).
			Update("status", entities.PaymentStatusCompleted).Error; err != nil {
			return err
		}
		payment.Status = entities.PaymentStatusCompleted

		var owner entities.User
		if err := tx.Where("id = ?", payment.UserID).First(&owner).Error; err != nil {
			return err
		}

		now := time.Now()
		base := now
		if owner.PremiumExpiry != nil && owner.PremiumExpiry.After(now) {
			base = *owner.PremiumExpiry
		}
		expiry := base.AddDate(0, 0, 30*payment.PremiumMonths)

		return tx.Model(&entities.User{}).
			Where("id = ?", owner.ID).
			Updates(map[string]any{
				"is_premium":     true,
				"premium_expiry": expiry,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) MarkFailed(ctx context.Context, transactionID string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Payment{}).
		Where("transaction_id = ? AND status = ?", transactionID, entities.PaymentStatusPending).
		Update("status", entities.PaymentStatusFailed).Error
}
