// @title                       Prize Bond API
// @version                     1.0
// @description                 Track prize bonds grouped into cards.
// @BasePath                    /
// @securityDefinitions.apikey  CookieAuth
// @in                          cookie
// @name                        auth_token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bondledger/prizebond-api/internal/api"
	"github.com/bondledger/prizebond-api/internal/core/ports"
	"github.com/bondledger/prizebond-api/internal/core/service"
	"github.com/bondledger/prizebond-api/internal/infrastructure/db/mongo"
	"github.com/bondledger/prizebond-api/internal/infrastructure/db/redis"
	"github.com/bondledger/prizebond-api/internal/infrastructure/http/handlers"
	"github.com/bondledger/prizebond-api/internal/pkg/config"
	"github.com/bondledger/prizebond-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "prizebond-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessions, err := service.NewSessionManager(cfg.Session.Secret)
	if err != nil {
		log.Error().Err(err).Msg("session manager")
		return 1
	}

	// Connects lazily on the first request that needs it.
	db := mongo.NewHandle(mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	db.OnConnect(mongo.EnsureUserIndexes)
	db.OnConnect(mongo.EnsureCardIndexes)

	var (
		rdb  *goredis.Client
		idem ports.IdempotencyStore
	)
	redisCfg := redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err = redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency keys disabled")
		} else {
			idem = redis.NewIdempotencyStore(rdb)
		}
	}

	authService := service.NewAuthService(mongo.NewUserRepository(db), sessions, logger.With("auth"))
	cardService := service.NewCardService(mongo.NewCardRepository(db), idem, logger.With("cards"))

	e := api.NewRouter(api.Deps{
		Logger:       log,
		Auth:         authService,
		Cards:        cardService,
		Sessions:     sessions,
		SessionTTL:   sessions.TTL(),
		SecureCookie: cfg.IsProduction(),
		WebRoot:      cfg.WebRoot,
		Mongo:        db,
		Redis:        handlers.RedisPinger(rdb),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	exitCode := 0
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		exitCode = 1
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect")
		exitCode = 1
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	return exitCode
}
