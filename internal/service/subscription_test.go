package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vpnsub/internal/models"
	"vpnsub/internal/repository"
	"vpnsub/internal/testutil"
)

func TestRecordPayment_CreatesPendingSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	payment, err := svc.RecordPayment("42", "alice", "Alice", "", 178.0, "RUB", "1month", "x")
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.NotZero(t, payment.ID)
	assert.Equal(t, 178.0, payment.Amount)
	assert.Equal(t, "RUB", payment.Currency)
	assert.Equal(t, "x", payment.Payload)

	var sub models.Subscription
	require.NoError(t, db.First(&sub, payment.SubscriptionID).Error)
	assert.Equal(t, models.StatusPending, sub.Status)
	assert.Equal(t, "1month", sub.Tariff)
	assert.Equal(t, 100.0, sub.TrafficLimit)
	assert.Equal(t, 0.0, sub.TrafficUsed)
	assert.Contains(t, sub.VPNUsername, "vpnuser_42_")
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sub.ExpiresAt, time.Minute)
}

func TestRecordPayment_UnknownTariffUsesDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	payment, err := svc.RecordPayment("42", "", "", "", 178.0, "RUB", "lifetime", "")
	require.NoError(t, err)

	var sub models.Subscription
	require.NoError(t, db.First(&sub, payment.SubscriptionID).Error)
	assert.Equal(t, "1month", sub.Tariff)
	assert.Equal(t, 100.0, sub.TrafficLimit)
}

func TestRecordPayment_ReusesExistingUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	_, err := svc.RecordPayment("42", "alice", "Alice", "", 178.0, "RUB", "1month", "")
	require.NoError(t, err)
	_, err = svc.RecordPayment("42", "alice", "Alice", "", 450.0, "RUB", "3months", "")
	require.NoError(t, err)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Every payment gets its own subscription, no in-place renewal.
	db.Model(&models.Subscription{}).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestActivate_RoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	payment, err := svc.RecordPayment("42", "alice", "Alice", "", 178.0, "RUB", "1month", "x")
	require.NoError(t, err)

	sub, err := svc.Activate(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, sub.Status)
	assert.NotEmpty(t, sub.VPNConfig)

	// Payment row is untouched by activation.
	var stored models.Payment
	require.NoError(t, db.First(&stored, payment.ID).Error)
	assert.Equal(t, payment.Amount, stored.Amount)
	assert.Equal(t, payment.Payload, stored.Payload)
	assert.WithinDuration(t, payment.CreatedAt, stored.CreatedAt, time.Second)
}

func TestActivate_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	payment, err := svc.RecordPayment("42", "", "", "", 178.0, "RUB", "1month", "")
	require.NoError(t, err)

	first, err := svc.Activate(payment.ID)
	require.NoError(t, err)

	second, err := svc.Activate(payment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, second.Status)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.VPNConfig, second.VPNConfig)

	var count int64
	db.Model(&models.Subscription{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestActivate_UnknownPayment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	svc := NewSubscriptionService(db)

	_, err := svc.Activate(99999)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
