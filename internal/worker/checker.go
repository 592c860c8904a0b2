package worker

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vpnsub/internal/models"
	"vpnsub/internal/repository"
)

// SendFunc delivers a notification to one user, addressed by Telegram id.
type SendFunc func(ctx context.Context, userID, text string) error

// Checker sweeps subscriptions hourly: warns users a day before expiry and
// flips the stored status of lapsed ones. The read path computes expiry
// lazily and never depends on this; the sweep only keeps stored status
// usable for listing and delivers notifications.
type Checker struct {
	Subs  *repository.SubscriptionRepository
	Redis *redis.Client
	Send  SendFunc
}

func NewChecker(db *gorm.DB, rdb *redis.Client, bot *telego.Bot) *Checker {
	return &Checker{
		Subs:  repository.NewSubscriptionRepository(db),
		Redis: rdb,
		Send:  telegramSender(bot),
	}
}

func telegramSender(bot *telego.Bot) SendFunc {
	return func(ctx context.Context, userID, text string) error {
		id, err := strconv.ParseInt(userID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid telegram id %q: %w", userID, err)
		}
		_, err = bot.SendMessage(ctx, tu.Message(tu.ID(id), text))
		return err
	}
}

func (c *Checker) Start() {
	ticker := time.NewTicker(1 * time.Hour)
	log.Println("Background subscription worker started")

	c.checkSubscriptions()

	for range ticker.C {
		c.checkSubscriptions()
	}
}

func (c *Checker) checkSubscriptions() {
	ctx := context.Background()
	now := time.Now()

	log.Println("Running subscription check cycle...")

	// 1. Notify 24h before expiry, once per subscription. The dedup key is
	// only written after a successful send, so a failed delivery gets
	// another chance on the next cycle.
	expiringSoon, err := c.Subs.ListExpiring(now.Add(23*time.Hour), now.Add(25*time.Hour))
	if err != nil {
		log.Printf("Error querying expiring subscriptions: %v", err)
	}

	for _, sub := range expiringSoon {
		key := fmt.Sprintf("notified_24h_%d", sub.ID)
		exists, _ := c.Redis.Exists(ctx, key).Result()
		if exists != 0 {
			continue
		}
		if err := c.Send(ctx, sub.User.UserID,
			"⚠️ Ваша подписка истекает через сутки! Продлите её, чтобы не потерять доступ."); err != nil {
			log.Printf("Failed to send 24h notification to %s: %v", sub.User.UserID, err)
			continue
		}
		c.Redis.Set(ctx, key, "true", 48*time.Hour)
		log.Printf("Sent 24h notification to user %s", sub.User.UserID)
	}

	// 2. Flip lapsed subscriptions to their stored expired state.
	lapsed, err := c.Subs.ListLapsed(now)
	if err != nil {
		log.Printf("Error querying lapsed subscriptions: %v", err)
	}

	for _, sub := range lapsed {
		log.Printf("Marking subscription %d expired (expired at: %s)", sub.ID, sub.ExpiresAt)

		if err := c.Subs.SetStatus(sub.ID, models.StatusExpired); err != nil {
			log.Printf("Failed to mark subscription %d expired: %v", sub.ID, err)
			continue
		}

		if err := c.Send(ctx, sub.User.UserID,
			"❌ Ваша подписка истекла. Оформите новую командой /start."); err != nil {
			log.Printf("Failed to send expiration notification to %s: %v", sub.User.UserID, err)
		}
	}
}
