package models

import (
	"time"
)

// Payment is an audit record: created once, never updated.
type Payment struct {
	ID                uint         `gorm:"primaryKey"`
	SubscriptionID    uint         `gorm:"not null;index"`
	Subscription      Subscription `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Amount            float64      `gorm:"not null"`
	Currency          string       `gorm:"size:3;default:'RUB'"`
	ProviderPaymentID string       `gorm:"size:100"`
	Payload           string       `gorm:"type:text"`
	CreatedAt         time.Time
}
