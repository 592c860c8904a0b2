package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"vpnsub/internal/models"
)

func TestUser(t *testing.T, db *gorm.DB, opts ...func(*models.User)) *models.User {
	t.Helper()

	user := &models.User{
		UserID:    fmt.Sprintf("%d", time.Now().UnixNano()),
		Username:  "testuser",
		FirstName: "Test",
	}
	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func WithUserID(userID string) func(*models.User) {
	return func(u *models.User) {
		u.UserID = userID
	}
}

func TestSubscription(t *testing.T, db *gorm.DB, user *models.User, opts ...func(*models.Subscription)) *models.Subscription {
	t.Helper()

	sub := &models.Subscription{
		UserID:       user.ID,
		VPNUsername:  fmt.Sprintf("vpnuser_%s", user.UserID),
		Status:       models.StatusActive,
		Tariff:       "1month",
		ExpiresAt:    time.Now().Add(30 * 24 * time.Hour),
		TrafficUsed:  0,
		TrafficLimit: 100,
	}
	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}
	return sub
}

func WithStatus(status string) func(*models.Subscription) {
	return func(s *models.Subscription) {
		s.Status = status
	}
}

func WithExpiresAt(at time.Time) func(*models.Subscription) {
	return func(s *models.Subscription) {
		s.ExpiresAt = at
	}
}

func WithTraffic(used, limit float64) func(*models.Subscription) {
	return func(s *models.Subscription) {
		s.TrafficUsed = used
		s.TrafficLimit = limit
	}
}

func WithVPNUsername(name string) func(*models.Subscription) {
	return func(s *models.Subscription) {
		s.VPNUsername = name
	}
}
