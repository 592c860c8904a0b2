package main

import (
	"log"

	"vpnsub/internal/bot"
	"vpnsub/internal/botapi"
	"vpnsub/internal/config"
	"vpnsub/internal/database"
	"vpnsub/internal/service"
	"vpnsub/internal/worker"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable not set")
	}

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	rdb, err := database.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Could not connect to redis: %v", err)
	}

	subscriptions := service.NewSubscriptionService(db)
	apiClient := botapi.NewClient(cfg.VPNAPIURL)

	tgBot, err := bot.NewBot(cfg.BotToken, subscriptions, apiClient,
		cfg.AdminChatID, cfg.MiniAppURL, cfg.ProviderToken)
	if err != nil {
		log.Fatalf("Could not create bot: %v", err)
	}

	checker := worker.NewChecker(db, rdb, tgBot.Instance)
	go checker.Start()

	log.Println("Bot started")
	tgBot.Start()
}
