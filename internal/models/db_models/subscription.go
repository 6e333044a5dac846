package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SubscriptionStatus string

const (
	SubStatusTrialing SubscriptionStatus = "trialing"
	SubStatusActive   SubscriptionStatus = "active"
	SubStatusPastDue  SubscriptionStatus = "past_due"
	SubStatusCanceled SubscriptionStatus = "canceled"
	SubStatusExpired  SubscriptionStatus = "expired"
)

// Subscription is the account-level upgrade record. An account with an
// active or trialing subscription gets the upgraded quota tier on every
// trip it belongs to.
type Subscription struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Status   SubscriptionStatus `gorm:"index"`
	StartsAt int64              `gorm:"not null"`
	EndsAt   int64              `gorm:"not null"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Account Account `gorm:"foreignKey:AccountID"`
}
