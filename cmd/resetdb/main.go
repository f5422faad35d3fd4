// Command resetdb wipes every table and reseeds the demo data set: the
// bootstrap admin, one category, one product and one pending order. It is
// a development tool; running it against live data destroys all of it.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/confetti-shop/backend/internal/config"
	"github.com/confetti-shop/backend/internal/database"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.Reset(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("reset: %v", err)
	}

	log.Println("database reset complete")
	log.Printf("admin login: %s / %s", cfg.AdminEmail, cfg.AdminPassword)
}
