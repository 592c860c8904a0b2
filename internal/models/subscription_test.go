package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_DaysLeft(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{"thirty days ahead", now.Add(30 * 24 * time.Hour), 30},
		{"partial day rounds down", now.Add(36 * time.Hour), 1},
		{"expires today", now.Add(2 * time.Hour), 0},
		{"already expired", now.Add(-5 * 24 * time.Hour), 0},
		{"unset expiry", time.Time{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, sub.DaysLeft(now))
		})
	}
}

func TestSubscription_TrafficPercent(t *testing.T) {
	tests := []struct {
		name  string
		used  float64
		limit float64
		want  float64
	}{
		{"half used", 50, 100, 50},
		{"zero limit never divides", 50, 0, 0},
		{"rounded to two decimals", 1, 3, 33.33},
		{"over limit", 150, 100, 150},
		{"nothing used", 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := &Subscription{TrafficUsed: tt.used, TrafficLimit: tt.limit}
			assert.Equal(t, tt.want, sub.TrafficPercent())
		})
	}
}

func TestSubscription_EffectiveStatus(t *testing.T) {
	now := time.Now()

	active := &Subscription{Status: StatusActive, ExpiresAt: now.Add(24 * time.Hour)}
	assert.Equal(t, StatusActive, active.EffectiveStatus(now))

	lapsed := &Subscription{Status: StatusActive, ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, StatusExpired, lapsed.EffectiveStatus(now))

	pending := &Subscription{Status: StatusPending, ExpiresAt: now.Add(24 * time.Hour)}
	assert.Equal(t, StatusPending, pending.EffectiveStatus(now))

	// Stored status stays authoritative while the subscription is current.
	explicit := &Subscription{Status: StatusExpired, ExpiresAt: now.Add(24 * time.Hour)}
	assert.Equal(t, StatusExpired, explicit.EffectiveStatus(now))
}

func TestSubscription_IsExpired(t *testing.T) {
	now := time.Now()

	assert.False(t, (&Subscription{ExpiresAt: now.Add(time.Minute)}).IsExpired(now))
	assert.True(t, (&Subscription{ExpiresAt: now.Add(-time.Minute)}).IsExpired(now))
	assert.False(t, (&Subscription{}).IsExpired(now))
}
