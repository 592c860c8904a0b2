package notify

import (
	"context"
	"log"
	"strconv"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Notifier sends best-effort messages to the admin chat. Notification
// failure is logged and swallowed, never turned into a caller-visible error.
type Notifier struct {
	bot         *telego.Bot
	adminChatID int64
}

func NewNotifier(bot *telego.Bot, adminChatID string) *Notifier {
	id, err := strconv.ParseInt(adminChatID, 10, 64)
	if err != nil && adminChatID != "" {
		log.Printf("Invalid ADMIN_CHAT_ID %q: %v", adminChatID, err)
	}
	return &Notifier{bot: bot, adminChatID: id}
}

func (n *Notifier) Notify(text string) {
	if n.adminChatID == 0 || text == "" {
		return
	}

	_, err := n.bot.SendMessage(context.Background(), tu.Message(tu.ID(n.adminChatID), text))
	if err != nil {
		log.Printf("Failed to notify admin: %v", err)
	}
}
