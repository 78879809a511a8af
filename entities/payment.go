package entities

import (
	"github.com/google/uuid"
)

type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"not null" json:"user_id"`
	Amount        float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(3);default:KES" json:"currency"`
	PaymentMethod string    `gorm:"type:varchar(50);default:mpesa" json:"payment_method"`
	TransactionID string    `gorm:"type:varchar(255);uniqueIndex" json:"transaction_id"`
	Status        string    `gorm:"type:varchar(20);default:pending" json:"status"`
	Description   string    `gorm:"type:varchar(255)" json:"description,omitempty"`
	PremiumMonths int       `gorm:"default:1" json:"premium_months"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)
