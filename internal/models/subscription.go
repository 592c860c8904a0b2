package models

import (
	"math"
	"time"
)

const (
	StatusPending = "pending"
	StatusActive  = "active"
	StatusExpired = "expired"
)

type Subscription struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"not null;index"`
	User         User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	VPNUsername  string `gorm:"size:100;index"`
	VPNConfig    string `gorm:"type:text"`
	Status       string `gorm:"size:20;default:'pending'"`
	Tariff       string `gorm:"size:20"`
	ExpiresAt    time.Time
	TrafficUsed  float64 `gorm:"default:0"`
	// No column default here: gorm drops zero-valued fields carrying a
	// default tag from INSERTs, which would rewrite a legitimate zero
	// limit back to a default.
	TrafficLimit float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DaysLeft returns whole days until expiry, never negative.
// A zero ExpiresAt counts as already expired.
func (s *Subscription) DaysLeft(now time.Time) int {
	if s.ExpiresAt.IsZero() {
		return 0
	}
	days := int(s.ExpiresAt.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// TrafficPercent returns used/limit as 0-100 rounded to two decimals.
// A zero limit yields 0 instead of dividing by zero.
func (s *Subscription) TrafficPercent() float64 {
	if s.TrafficLimit == 0 {
		return 0
	}
	return math.Round(s.TrafficUsed/s.TrafficLimit*100*100) / 100
}

func (s *Subscription) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// EffectiveStatus evaluates expiry lazily: the stored status is the
// last-known explicit state, overridden once ExpiresAt is in the past.
func (s *Subscription) EffectiveStatus(now time.Time) string {
	if s.IsExpired(now) {
		return StatusExpired
	}
	return s.Status
}
