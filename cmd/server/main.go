package main

import (
	"log"

	"vpnsub/internal/api"
	"vpnsub/internal/config"
	"vpnsub/internal/database"
	"vpnsub/internal/service"
)

func main() {
	cfg := config.LoadConfig()

	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	subscriptions := service.NewSubscriptionService(db)
	router := api.NewRouter(api.NewHandler(subscriptions))

	log.Printf("HTTP API listening on %s", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
