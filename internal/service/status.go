package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"vpnsub/internal/models"
	"vpnsub/internal/repository"
)

// StatusSummary is the client-facing projection of a subscription. Traffic
// fields are pre-formatted the way the status page and the bot render them.
type StatusSummary struct {
	UserID         string  `json:"userId"`
	Username       string  `json:"username"`
	Status         string  `json:"status"`
	ExpiresAt      string  `json:"expiresAt"`
	DaysLeft       int     `json:"daysLeft"`
	TrafficUsed    string  `json:"trafficUsed"`
	TrafficLimit   string  `json:"trafficLimit"`
	TrafficPercent float64 `json:"trafficPercent"`
}

// GetStatus resolves an identifier to a status summary without mutating
// anything. The canonical lookup key is the VPN account name; a plain
// Telegram user id also works so the bot can poll with the only key it
// holds. Returns repository.ErrNotFound when neither matches.
func (s *SubscriptionService) GetStatus(identifier string) (*StatusSummary, error) {
	now := time.Now()

	sub, err := s.subs.GetByVPNUsername(identifier)
	if errors.Is(err, repository.ErrNotFound) {
		sub, err = s.subs.LatestActiveForUser(identifier, now)
	}
	if errors.Is(err, repository.ErrNotFound) {
		sub, err = s.subs.LatestForUser(identifier)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up subscription %q: %w", identifier, err)
	}

	return summarize(sub, now), nil
}

// GetConfig returns the opaque configuration blob and expiry for VPN
// clients polling the home endpoint.
func (s *SubscriptionService) GetConfig(identifier string) (string, time.Time, error) {
	sub, err := s.subs.GetByVPNUsername(identifier)
	if errors.Is(err, repository.ErrNotFound) {
		sub, err = s.subs.LatestActiveForUser(identifier, time.Now())
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, repository.ErrNotFound
		}
		return "", time.Time{}, fmt.Errorf("failed to look up config %q: %w", identifier, err)
	}
	return sub.VPNConfig, sub.ExpiresAt, nil
}

func summarize(sub *models.Subscription, now time.Time) *StatusSummary {
	var percent float64
	if sub.TrafficLimit > 0 {
		percent = math.Round(sub.TrafficUsed/sub.TrafficLimit*100*10) / 10
	}

	return &StatusSummary{
		UserID:         sub.User.UserID,
		Username:       sub.VPNUsername,
		Status:         sub.EffectiveStatus(now),
		ExpiresAt:      sub.ExpiresAt.Format("02.01.2006"),
		DaysLeft:       sub.DaysLeft(now),
		TrafficUsed:    fmt.Sprintf("%.2f GiB", sub.TrafficUsed),
		TrafficLimit:   fmt.Sprintf("%.2f GiB", sub.TrafficLimit),
		TrafficPercent: percent,
	}
}
