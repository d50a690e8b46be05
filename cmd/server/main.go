package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kunstewi/account-service/internal/config"
	"github.com/kunstewi/account-service/internal/database"
	"github.com/kunstewi/account-service/internal/handler"
	"github.com/kunstewi/account-service/internal/middleware"
	"github.com/kunstewi/account-service/internal/queue"
	"github.com/kunstewi/account-service/internal/repository"
	"github.com/kunstewi/account-service/internal/router"
	"github.com/kunstewi/account-service/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load() // Load environment config

	// A database that cannot be reached at startup is fatal; the process
	// must not serve traffic without its store.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional: a nil client disables the session cache and every
	// session lookup goes to the database.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, session cache disabled")
	}

	// Account events consumer runs for the life of the process and
	// reconnects on its own; a broker outage never stops the server.
	go func() {
		if err := queue.StartAccountConsumer(); err != nil {
			log.Printf("account consumer stopped: %v", err)
		}
	}()

	users := repository.NewUserRepo(db)
	cache := repository.NewSessionCache(rdb, time.Duration(cfg.SessionCacheTTLMin)*time.Minute)
	hasher := utils.NewHasher(cfg.AuthSecret)
	session := middleware.SessionAuth(users, cache, cfg.SessionCookieName)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, hasher, cache), session)
	router.RegisterUsers(e, handler.NewUserHandler(users, cache), session)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
