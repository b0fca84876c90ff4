package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Tourism-Ease/booking-api/internal/api"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
	mongodb "github.com/Tourism-Ease/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/Tourism-Ease/booking-api/internal/infrastructure/db/redis"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/mail"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/queue"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/storage"
	"github.com/Tourism-Ease/booking-api/internal/pkg/config"
	"github.com/Tourism-Ease/booking-api/pkg/logger"
)

func main() {
	// A missing .env is fine: containers inject real environment variables.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect failed")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	users := mongodb.NewUserRepository(db)
	bookings := mongodb.NewBookingRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := bookings.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("booking index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	files, err := storage.NewLocalStore(cfg.UploadDir, "/uploads")
	if err != nil {
		log.Fatal().Err(err).Msg("upload storage init failed")
	}

	dispatcher := queue.NewMailDispatcher(cfg.MailWorkers, newMailer(cfg), log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg, dispatcher, files)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

// newMailer picks the SMTP relay when one is configured and falls back
// to logging outgoing mail, which keeps local development working
// without a relay.
func newMailer(cfg *config.Config) ports.Mailer {
	if cfg.SMTP.Host != "" {
		return mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	return mail.NewLogMailer(logger.Component("mailer"))
}
