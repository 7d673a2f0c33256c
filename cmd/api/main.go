package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/innstack/hotel-ops/internal/api"
	"github.com/innstack/hotel-ops/internal/core/ports"
	"github.com/innstack/hotel-ops/internal/core/service"
	"github.com/innstack/hotel-ops/internal/core/session"
	"github.com/innstack/hotel-ops/internal/infrastructure/credstore"
	mongodb "github.com/innstack/hotel-ops/internal/infrastructure/db/mongo"
	redisdb "github.com/innstack/hotel-ops/internal/infrastructure/db/redis"
	"github.com/innstack/hotel-ops/internal/infrastructure/mail"
	"github.com/innstack/hotel-ops/internal/infrastructure/queue"
	"github.com/innstack/hotel-ops/internal/pkg/config"
	"github.com/innstack/hotel-ops/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Databases ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Repositories ---
	profiles := mongodb.NewProfileRepository(db)
	credentials := mongodb.NewCredentialRepository(db)
	rooms := mongodb.NewRoomRepository(db)
	ticketRepo := mongodb.NewTicketRepository(db)
	storage := redisdb.NewSessionStorage(rdb, log)

	// --- Session core ---
	tokens := credstore.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	creds := credstore.New(credentials, tokens, log)
	state := session.NewState(storage, log)
	resolver := service.NewProfileResolver(profiles)

	authOpts := []service.AuthServiceOption{}
	if cfg.GuestRoomCheck {
		authOpts = append(authOpts, service.WithGuestRoomCheck(rooms))
	}
	authService := service.NewAuthService(profiles, creds, resolver, tokens, state, log, authOpts...)

	bootstrapper := session.NewBootstrapper(state, creds, resolver, storage, log)
	unsubscribe := bootstrapper.Run(ctx)
	defer unsubscribe()

	// --- Mail ---
	dispatcher := queue.NewMailDispatcher(cfg.Mail.Workers, newMailer(cfg, log), redisdb.NewMailDedup(rdb), log)
	dispatcher.Start(ctx)

	// --- Services ---
	roomService := service.NewRoomService(rooms, log)
	ticketService := service.NewTicketService(ticketRepo, rooms, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:            db,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		State:         state,
		AuthService:   authService,
		RoomService:   roomService,
		TicketService: ticketService,
		CredAdmin:     creds,
		Profiles:      profiles,
		Tokens:        tokens,
		Mail:          dispatcher,
		Log:           log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting hotel-ops api")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// newMailer picks the hosted email function when configured, the log-only
// mailer otherwise.
func newMailer(cfg *config.Config, log zerolog.Logger) ports.Mailer {
	if cfg.Mail.FuncURL != "" {
		return mail.NewFuncMailer(cfg.Mail.FuncURL, cfg.Mail.FuncKey)
	}
	log.Warn().Msg("MAIL_FUNC_URL not set, using log-only mailer")
	return mail.NewLogMailer(log)
}
