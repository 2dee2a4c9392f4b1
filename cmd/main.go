package main

import (
	"context"
	"net/http"
	"time"

	"grievgo/backend/internal/api/handler"
	"grievgo/backend/internal/config"
	"grievgo/backend/internal/escalation"
	"grievgo/backend/internal/live"
	"grievgo/backend/internal/models"
	"grievgo/backend/internal/storage"
	"grievgo/backend/internal/telegram"
	"grievgo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect PostgreSQL")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect Redis")
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.StatusHistoryEntry{},
		&models.Vote{},
		&models.Notification{},
		&models.Notice{},
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	logger.Info().Msg("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	// A missing .env is fine; config falls back to the process environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger.Init(cfg.Environment)
	logger.Info().Msg("starting GrievGo backend")

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := live.NewHub(s)

	notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start telegram notifier")
	}

	sweeper := escalation.NewSweeper(s, notifier)

	go hub.Run()
	go sweeper.Run()

	r := gin.Default()
	h := handler.NewHandler(s, hub, notifier, []byte(cfg.JWTSecret))

	r.POST("/auth/session", h.CreateSession)

	r.POST("/complaints", h.CreateComplaint)
	r.GET("/complaints", h.ListComplaints)
	r.GET("/complaints/:id", h.GetComplaint)
	r.PATCH("/complaints/:id/status", h.UpdateStatus)
	r.POST("/complaints/:id/escalate", h.Escalate)
	r.POST("/complaints/:id/vote", h.CastVote)
	r.DELETE("/complaints/:id/vote", h.ClearVote)

	r.GET("/notifications/unread-count", h.GetUnreadCount)
	r.POST("/notifications/read-all", h.MarkAllRead)
	r.GET("/notices", h.ListNotices)
	r.POST("/notices", h.CreateNotice)
	r.GET("/config", h.GetClientConfig)

	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	logger.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
