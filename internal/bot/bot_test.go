package bot

import (
	"context"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/assert"

	"vpnsub/internal/service"
)

func TestFormatSummary(t *testing.T) {
	summary := &service.StatusSummary{
		Username:       "vpnuser_42_20250601",
		Status:         "active",
		DaysLeft:       29,
		TrafficUsed:    "50.00 GiB",
		TrafficLimit:   "100.00 GiB",
		TrafficPercent: 50.0,
	}

	out := formatSummary(summary)
	assert.Contains(t, out, "vpnuser_42_20250601")
	assert.Contains(t, out, "active")
	assert.Contains(t, out, "29")
	assert.Contains(t, out, "[■■■■■□□□□□]")
	assert.Contains(t, out, "50.00 GiB из 100.00 GiB")
}

func TestFormatSummary_BarClampedAtFull(t *testing.T) {
	summary := &service.StatusSummary{TrafficPercent: 150.0}

	out := formatSummary(summary)
	assert.Contains(t, out, "[■■■■■■■■■■]")
}

func TestTariffFromPayload(t *testing.T) {
	assert.Equal(t, "3months", tariffFromPayload("tariff:3months:user:42"))
	assert.Equal(t, "", tariffFromPayload("tariff_payment_42"))
	assert.Equal(t, "", tariffFromPayload(""))
}

func TestTariffKeyboard(t *testing.T) {
	kb := tariffKeyboard()

	// Four plans plus the profile button.
	assert.Len(t, kb.InlineKeyboard, 5)
	assert.Equal(t, "pay:1month", kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "lk", kb.InlineKeyboard[4][0].CallbackData)
}

func TestPaymentPredicates(t *testing.T) {
	ctx := context.Background()

	assert.False(t, anySuccessfulPayment(ctx, telego.Update{}))
	assert.False(t, anySuccessfulPayment(ctx, telego.Update{Message: &telego.Message{}}))
	assert.True(t, anySuccessfulPayment(ctx, telego.Update{
		Message: &telego.Message{SuccessfulPayment: &telego.SuccessfulPayment{}},
	}))

	assert.False(t, anyPreCheckoutQuery(ctx, telego.Update{}))
	assert.True(t, anyPreCheckoutQuery(ctx, telego.Update{
		PreCheckoutQuery: &telego.PreCheckoutQuery{},
	}))
}
