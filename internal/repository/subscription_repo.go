package repository

import (
	"time"

	"gorm.io/gorm"

	"vpnsub/internal/models"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *models.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id uint) (*models.Subscription, error) {
	var sub models.Subscription
	if err := r.db.Preload("User").First(&sub, id).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// GetByVPNUsername returns the newest subscription carrying the VPN account
// name. The name is unique per payment in practice, newest-first keeps the
// lookup deterministic if a user pays twice the same day.
func (r *SubscriptionRepository) GetByVPNUsername(name string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("User").
		Where("vpn_username = ?", name).
		Order("expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// LatestActiveForUser returns the unexpired active subscription with the
// furthest expiry, mirroring how the status page picks what to show.
func (r *SubscriptionRepository) LatestActiveForUser(userID string, now time.Time) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("users.user_id = ? AND subscriptions.status = ? AND subscriptions.expires_at > ?",
			userID, models.StatusActive, now).
		Order("subscriptions.expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// LatestForUser is the fallback when no active subscription exists: the most
// recent one regardless of state, so the client still sees expiry info.
func (r *SubscriptionRepository) LatestForUser(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.Preload("User").
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("users.user_id = ?", userID).
		Order("subscriptions.expires_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

// ListExpiring returns subscriptions whose expiry falls inside [from, to).
func (r *SubscriptionRepository) ListExpiring(from, to time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("User").
		Where("status = ? AND expires_at >= ? AND expires_at < ?", models.StatusActive, from, to).
		Find(&subs).Error
	return subs, err
}

// ListLapsed returns subscriptions already past expiry whose stored status
// has not been flipped yet.
func (r *SubscriptionRepository) ListLapsed(now time.Time) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := r.db.Preload("User").
		Where("status <> ? AND expires_at < ?", models.StatusExpired, now).
		Find(&subs).Error
	return subs, err
}

// Activate marks the subscription active and attaches its generated config.
func (r *SubscriptionRepository) Activate(id uint, config string) error {
	return r.db.Model(&models.Subscription{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     models.StatusActive,
			"vpn_config": config,
		}).Error
}

func (r *SubscriptionRepository) SetStatus(id uint, status string) error {
	return r.db.Model(&models.Subscription{}).Where("id = ?", id).
		Update("status", status).Error
}
