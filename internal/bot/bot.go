package bot

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"vpnsub/internal/botapi"
	"vpnsub/internal/notify"
	"vpnsub/internal/service"
	"vpnsub/internal/tariff"
)

type Bot struct {
	Instance      *telego.Bot
	Subscriptions *service.SubscriptionService
	API           *botapi.Client
	Notifier      *notify.Notifier
	MiniAppURL    string
	ProviderToken string
}

func NewBot(token string, subscriptions *service.SubscriptionService, api *botapi.Client, adminChatID, miniAppURL, providerToken string) (*Bot, error) {
	tgBot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		Instance:      tgBot,
		Subscriptions: subscriptions,
		API:           api,
		Notifier:      notify.NewNotifier(tgBot, adminChatID),
		MiniAppURL:    miniAppURL,
		ProviderToken: providerToken,
	}, nil
}

func (b *Bot) Start() {
	updates, _ := b.Instance.UpdatesViaLongPolling(context.Background(), nil)

	handler, _ := th.NewBotHandler(b.Instance, updates)

	// /start command - profile with subscription summary
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		message := update.Message
		from := message.From

		returnMessage := fmt.Sprintf("👤 Профиль: %s %s\n\n", from.FirstName, from.LastName)

		summary, err := b.API.GetStatus(fmt.Sprintf("%d", from.ID))
		if err != nil {
			log.Printf("Error getting user status: %v", err)
		}

		var rows [][]telego.InlineKeyboardButton
		if summary != nil {
			returnMessage += formatSummary(summary)
			if b.MiniAppURL != "" {
				rows = append(rows, tu.InlineKeyboardRow(
					tu.InlineKeyboardButton("Управлять подпиской").
						WithWebApp(&telego.WebAppInfo{URL: fmt.Sprintf("%s/%d", b.MiniAppURL, from.ID)}),
				))
			}
		}
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(" + Добавить подписку").WithCallbackData("replace_msg"),
		))

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(message.Chat.ID),
			returnMessage,
		).WithParseMode(telego.ModeHTML).WithReplyMarkup(tu.InlineKeyboard(rows...)))
		return nil
	}, th.CommandEqual("start"))

	// Callback for "Add subscription" - tariff selection
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(callback.From.ID),
			"💳 Выберите тарифный план для создания нового ключа:",
		).WithReplyMarkup(tariffKeyboard()))
		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))
		return nil
	}, th.CallbackDataEqual("replace_msg"))

	// Callback for paying a selected tariff - send Telegram invoice
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery
		telegramID := callback.From.ID
		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))

		tariffID := strings.TrimPrefix(callback.Data, "pay:")
		plan := tariff.Resolve(tariffID)

		if b.ProviderToken == "" {
			log.Printf("Payment provider token not configured")
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
				tu.ID(telegramID),
				"⚠️ Оплата временно недоступна. Попробуйте позже или свяжитесь с поддержкой.",
			))
			return nil
		}

		_, err := ctx.Bot().SendInvoice(ctx.Context(), &telego.SendInvoiceParams{
			ChatID:         tu.ID(telegramID),
			Title:          fmt.Sprintf("Оплата тарифа: %s", plan.Name),
			Description:    "Доступ к VPN",
			Payload:        fmt.Sprintf("tariff:%s:user:%d", plan.ID, telegramID),
			ProviderToken:  b.ProviderToken,
			Currency:       "RUB",
			Prices:         []telego.LabeledPrice{{Label: plan.Name, Amount: plan.Price}},
			StartParameter: "tariff_payment",
			NeedEmail:      true,
		})
		if err != nil {
			log.Printf("Error sending invoice: %v", err)
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
				tu.ID(telegramID),
				"⚠️ Произошла ошибка при создании платежа",
			).WithReplyMarkup(tariffKeyboard()))
		}
		return nil
	}, th.CallbackDataPrefix("pay:"))

	// Callback for "Личный кабинет" - back to profile
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		callback := update.CallbackQuery
		_ = ctx.Bot().AnswerCallbackQuery(ctx.Context(), tu.CallbackQuery(callback.ID))

		summary, err := b.API.GetStatus(fmt.Sprintf("%d", callback.From.ID))
		if err != nil {
			log.Printf("Error getting user status: %v", err)
		}

		msg := fmt.Sprintf("👤 Профиль: %s %s\n\n", callback.From.FirstName, callback.From.LastName)
		if summary != nil {
			msg += formatSummary(summary)
		}

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(tu.ID(callback.From.ID), msg).
			WithParseMode(telego.ModeHTML).
			WithReplyMarkup(tu.InlineKeyboard(tu.InlineKeyboardRow(
				tu.InlineKeyboardButton(" + Добавить подписку").WithCallbackData("replace_msg"),
			))))
		return nil
	}, th.CallbackDataEqual("lk"))

	// Pre-checkout confirmation
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		return ctx.Bot().AnswerPreCheckoutQuery(ctx.Context(), &telego.AnswerPreCheckoutQueryParams{
			PreCheckoutQueryID: update.PreCheckoutQuery.ID,
			Ok:                 true,
		})
	}, anyPreCheckoutQuery)

	// Successful payment - record, activate, hand out config
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		message := update.Message
		from := message.From
		payment := message.SuccessfulPayment
		userID := fmt.Sprintf("%d", from.ID)

		tariffID := tariffFromPayload(payment.InvoicePayload)

		record, err := b.Subscriptions.RecordPayment(
			userID, from.Username, from.FirstName, from.LastName,
			float64(payment.TotalAmount)/100, payment.Currency,
			tariffID, payment.InvoicePayload,
		)
		if err != nil {
			log.Printf("Error saving payment for user %s: %v", userID, err)
			b.paymentFailed(ctx, from.ID, userID, err)
			return nil
		}

		sub, err := b.Subscriptions.Activate(record.ID)
		if err != nil {
			log.Printf("Error activating subscription for user %s: %v", userID, err)
			b.paymentFailed(ctx, from.ID, userID, err)
			return nil
		}

		// Config blob is raw text with angle brackets, so no parse mode here.
		msg := fmt.Sprintf("🎉 Оплата прошла успешно! Подписка активирована.\n\n"+
			"📅 Действует до: %s\n\n"+
			"🔐 Конфигурация:\n%s\n\n"+
			"Спасибо за покупку!", sub.ExpiresAt.Format("02.01.2006"), sub.VPNConfig)
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(tu.ID(message.Chat.ID), msg))
		return nil
	}, anySuccessfulPayment)

	// /status command - poll the backend API
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		message := update.Message
		telegramID := message.From.ID

		summary, err := b.API.GetStatus(fmt.Sprintf("%d", telegramID))
		if err != nil {
			log.Printf("Status check error for user %d: %v", telegramID, err)
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
				tu.ID(message.Chat.ID), "🔴 Сервис временно недоступен. Попробуйте позже.",
			))
			b.Notifier.Notify(fmt.Sprintf("🚨 Status check failed for user %d: %v", telegramID, err))
			return nil
		}
		if summary == nil {
			_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
				tu.ID(message.Chat.ID), "У вас пока нет подписки. Оформите её командой /start.",
			))
			return nil
		}

		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(message.Chat.ID),
			fmt.Sprintf("📊 Статус VPN:\n\n%s", formatSummary(summary)),
		).WithParseMode(telego.ModeHTML))
		return nil
	}, th.CommandEqual("status"))

	// /support command
	handler.Handle(func(ctx *th.Context, update telego.Update) error {
		_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
			tu.ID(update.Message.Chat.ID),
			"🛠 Нужна помощь? Напишите в поддержку:\n\n"+
				"📧 Email: support@yourvpn.com\n"+
				"💬 Telegram: https://t.me/yourvpn_support",
		))
		return nil
	}, th.CommandEqual("support"))

	handler.Start()
}

func (b *Bot) paymentFailed(ctx *th.Context, chatID int64, userID string, err error) {
	_, _ = ctx.Bot().SendMessage(ctx.Context(), tu.Message(
		tu.ID(chatID),
		"⚠️ Произошла ошибка при активации подписки. Пожалуйста, свяжитесь с поддержкой.",
	))
	b.Notifier.Notify(fmt.Sprintf("🚨 Ошибка активации подписки для пользователя %s: %v", userID, err))
}

func tariffKeyboard() *telego.InlineKeyboardMarkup {
	var rows [][]telego.InlineKeyboardButton
	for _, plan := range tariff.All() {
		rows = append(rows, tu.InlineKeyboardRow(
			tu.InlineKeyboardButton(plan.Name).WithCallbackData("pay:"+plan.ID),
		))
	}
	rows = append(rows, tu.InlineKeyboardRow(
		tu.InlineKeyboardButton("Личный кабинет").WithCallbackData("lk"),
	))
	return tu.InlineKeyboard(rows...)
}

// formatSummary renders a status summary with a ten-block traffic bar.
func formatSummary(s *service.StatusSummary) string {
	percent := s.TrafficPercent
	if percent > 100 {
		percent = 100
	}
	blocks := int(percent / 10)
	bar := "[" + strings.Repeat("■", blocks) + strings.Repeat("□", 10-blocks) + "]"

	return fmt.Sprintf("👤 <b>Имя пользователя:</b> %s\n"+
		"🔄 <b>Статус:</b> %s\n"+
		"📅 <b>Осталось дней:</b> %d\n\n"+
		"📊 <b>Использовано трафика:</b>\n"+
		"%s %.1f%%\n"+
		"▸ %s из %s",
		s.Username, s.Status, s.DaysLeft, bar, s.TrafficPercent, s.TrafficUsed, s.TrafficLimit)
}

// tariffFromPayload recovers the tariff id from an invoice payload shaped
// as "tariff:<id>:user:<telegram id>". Anything else resolves to the
// default plan downstream.
func tariffFromPayload(payload string) string {
	parts := strings.Split(payload, ":")
	if len(parts) >= 2 && parts[0] == "tariff" {
		return parts[1]
	}
	return ""
}

func anyPreCheckoutQuery(_ context.Context, update telego.Update) bool {
	return update.PreCheckoutQuery != nil
}

func anySuccessfulPayment(_ context.Context, update telego.Update) bool {
	return update.Message != nil && update.Message.SuccessfulPayment != nil
}
