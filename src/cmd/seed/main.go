package main

import (
	"context"
	"log"
	"time"

	"github.com/api-sage/bank-portal/src/internal/app"
	"github.com/api-sage/bank-portal/src/internal/config"
	"github.com/api-sage/bank-portal/src/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer storage.Close()

	if err := seed.Run(ctx, storage.Users, storage.Accounts); err != nil {
		log.Fatalf("seed demo data: %v", err)
	}

	log.Println("demo data seeded successfully")
}
