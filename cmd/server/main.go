package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/confetti-shop/backend/internal/config"
	"github.com/confetti-shop/backend/internal/database"
	"github.com/confetti-shop/backend/internal/handler"
	"github.com/confetti-shop/backend/internal/middleware"
	"github.com/confetti-shop/backend/internal/repository"
	"github.com/confetti-shop/backend/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.EnsureAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	users := repository.NewUserRepo(db)
	categories := repository.NewCategoryRepo(db)
	products := repository.NewProductRepo(db)
	orders := repository.NewOrderRepo(db)

	e := echo.New()
	e.HideBanner = true
	// Development posture: the storefront client may come from any origin.
	e.Use(echomw.CORS())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users),
		Categories: handler.NewCategoryHandler(categories),
		Products:   handler.NewProductHandler(products),
		Expiry:     handler.NewExpiryHandler(products),
		Orders:     handler.NewOrderHandler(cfg, orders),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
