// MeuEstoque API server.
//
// @title MeuEstoque API
// @version 1.0
// @description Inventory, sales and task management for small businesses.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrelima-dev/meuestoque/internal/auth"
	"github.com/andrelima-dev/meuestoque/internal/config"
	"github.com/andrelima-dev/meuestoque/internal/db"
	apphttp "github.com/andrelima-dev/meuestoque/internal/http"
	"github.com/andrelima-dev/meuestoque/internal/http/handlers"
	"github.com/andrelima-dev/meuestoque/internal/http/rate_limiter"
	"github.com/andrelima-dev/meuestoque/internal/prefs"
	"github.com/andrelima-dev/meuestoque/internal/redissvc"
	"github.com/andrelima-dev/meuestoque/internal/repo"
	"github.com/andrelima-dev/meuestoque/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	defer database.Close()

	redisService := redissvc.NewRedisService(
		redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}),
		context.Background(),
	)
	rdb := redisService.Rdb()
	if err := rdb.Ping(redisService.Ctx()).Err(); err != nil {
		log.Fatalf("redis connection error: %v", err)
	}
	defer rdb.Close()

	productRepo := repo.NewPostgresProductRepository(database)
	saleRepo := repo.NewPostgresSaleRepository(database)
	taskRepo := repo.NewPostgresTaskRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)
	userRepo := repo.NewPostgresUserRepository(database)
	snapshotRepo := repo.NewPostgresSnapshotRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetSaleRepo(saleRepo)
	handlers.SetTaskRepo(taskRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetUserRepo(userRepo)
	handlers.SetSnapshotRecorder(snapshot.NewRecorder(productRepo, snapshotRepo))
	handlers.SetPrefsStore(prefs.NewStore(rdb))
	handlers.SetRefreshStore(auth.NewRefreshStore(rdb))

	banStore := auth.NewBanStore(rdb)
	handlers.SetBanStore(banStore)
	go banStore.StartDailyBanSummary(redisService.Ctx(), 24*time.Hour)
	go rate_limiter.StartVisitorCleanupLoop()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, apphttp.NewRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
