package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"vpnsub/internal/models"
	"vpnsub/internal/repository"
	"vpnsub/internal/tariff"
	"vpnsub/internal/vpnconfig"
)

// SubscriptionService owns the payment → pending → active lifecycle and the
// read-only status projection. All state lives in the store; every mutating
// flow runs in a single transaction.
type SubscriptionService struct {
	db   *gorm.DB
	subs *repository.SubscriptionRepository
	pays *repository.PaymentRepository
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{
		db:   db,
		subs: repository.NewSubscriptionRepository(db),
		pays: repository.NewPaymentRepository(db),
	}
}

// RecordPayment stores a confirmed payment together with its pending
// subscription. Tariff resolution never fails (unknown ids fall back to the
// default plan), and the three writes commit or roll back as one unit, so a
// payment row can never exist without a subscription behind it.
func (s *SubscriptionService) RecordPayment(userID, username, firstName, lastName string, amount float64, currency, tariffID, payload string) (*models.Payment, error) {
	plan := tariff.Resolve(tariffID)
	now := time.Now()

	var payment *models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		subs := repository.NewSubscriptionRepository(tx)
		pays := repository.NewPaymentRepository(tx)

		user, err := users.GetOrCreate(userID, username, firstName, lastName)
		if err != nil {
			return fmt.Errorf("failed to get/create user: %w", err)
		}

		sub := &models.Subscription{
			UserID:       user.ID,
			VPNUsername:  fmt.Sprintf("vpnuser_%s_%s", userID, now.Format("20060102")),
			Status:       models.StatusPending,
			Tariff:       plan.ID,
			ExpiresAt:    now.Add(time.Duration(plan.DurationDays) * 24 * time.Hour),
			TrafficUsed:  0,
			TrafficLimit: plan.TrafficLimitGB,
		}
		if err := subs.Create(sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		payment = &models.Payment{
			SubscriptionID: sub.ID,
			Amount:         amount,
			Currency:       currency,
			Payload:        payload,
		}
		if err := pays.Create(payment); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Payment %d saved for user %s (tariff %s)", payment.ID, userID, plan.ID)
	return payment, nil
}

// Activate flips the subscription behind a payment to active and attaches
// generated configuration. Re-activating an already-active subscription is
// a no-op, not an error. Unknown payment ids return repository.ErrNotFound.
func (s *SubscriptionService) Activate(paymentID uint) (*models.Subscription, error) {
	payment, err := s.pays.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("Payment not found: %d", paymentID)
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load payment %d: %w", paymentID, err)
	}

	sub := payment.Subscription
	if sub.Status == models.StatusActive {
		return &sub, nil
	}

	sub.Status = models.StatusActive
	sub.VPNConfig = vpnconfig.Generate(&sub)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return repository.NewSubscriptionRepository(tx).Activate(sub.ID, sub.VPNConfig)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to activate subscription %d: %w", sub.ID, err)
	}

	log.Printf("Subscription activated: %d", sub.ID)
	return &sub, nil
}
