package entity

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

const (
	MethodManual       = "MANUAL"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodCard         = "CARD"
)

type Payment struct {
	gorm.Model
	Plan      string     `gorm:"size:16;not null" json:"plan"`
	Amount    int64      `gorm:"not null" json:"amount"`
	Currency  string     `gorm:"size:3;not null;default:USD" json:"currency"`
	Method    string     `gorm:"size:20;not null;default:MANUAL" json:"method"`
	Status    string     `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	Reference string     `json:"reference"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`

	SubscriptionID uint          `gorm:"index;not null" json:"subscriptionId"`
	Subscription   *Subscription `json:"-"`
	ProfileID      uint          `gorm:"index;not null" json:"profileId"`
	Profile        *Profile      `json:"-"`
}
