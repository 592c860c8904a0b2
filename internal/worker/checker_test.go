package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vpnsub/internal/models"
	"vpnsub/internal/repository"
	"vpnsub/internal/testutil"
)

type sentMessage struct {
	UserID string
	Text   string
}

func setupChecker(t *testing.T) (*Checker, *gorm.DB, *[]sentMessage) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	var sent []sentMessage
	checker := &Checker{
		Subs:  repository.NewSubscriptionRepository(db),
		Redis: rdb,
		Send: func(_ context.Context, userID, text string) error {
			sent = append(sent, sentMessage{UserID: userID, Text: text})
			return nil
		},
	}
	return checker, db, &sent
}

func TestChecker_ExpiryNoticeSentOncePerSubscription(t *testing.T) {
	checker, db, sent := setupChecker(t)

	user := testutil.TestUser(t, db, testutil.WithUserID("42"))
	testutil.TestSubscription(t, db, user,
		testutil.WithExpiresAt(time.Now().Add(24*time.Hour)))

	checker.checkSubscriptions()
	checker.checkSubscriptions()

	require.Len(t, *sent, 1)
	assert.Equal(t, "42", (*sent)[0].UserID)
	assert.Contains(t, (*sent)[0].Text, "истекает")
}

func TestChecker_ExpiryNoticeRetriedAfterSendFailure(t *testing.T) {
	checker, db, sent := setupChecker(t)

	user := testutil.TestUser(t, db, testutil.WithUserID("42"))
	testutil.TestSubscription(t, db, user,
		testutil.WithExpiresAt(time.Now().Add(24*time.Hour)))

	// A failed delivery must not burn the dedup key.
	realSend := checker.Send
	checker.Send = func(_ context.Context, _, _ string) error {
		return errors.New("telegram unavailable")
	}
	checker.checkSubscriptions()
	require.Empty(t, *sent)

	checker.Send = realSend
	checker.checkSubscriptions()
	require.Len(t, *sent, 1)

	// And once delivered, the dedup holds.
	checker.checkSubscriptions()
	require.Len(t, *sent, 1)
}

func TestChecker_FlipsLapsedAndNotifies(t *testing.T) {
	checker, db, sent := setupChecker(t)

	user := testutil.TestUser(t, db, testutil.WithUserID("42"))
	sub := testutil.TestSubscription(t, db, user,
		testutil.WithExpiresAt(time.Now().Add(-time.Hour)))

	checker.checkSubscriptions()

	stored, err := checker.Subs.GetByID(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, stored.Status)

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].Text, "истекла")

	// Already flipped, the next sweep leaves it alone.
	checker.checkSubscriptions()
	require.Len(t, *sent, 1)
}
