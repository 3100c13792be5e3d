// @title           User Admin API
// @version         1.0
// @description     Multi-role user management: registration, login and role-scoped user administration.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/api"
	"github.com/teamroster/user-admin/internal/core/ports"
	"github.com/teamroster/user-admin/internal/core/service"
	"github.com/teamroster/user-admin/internal/infrastructure/config"
	redisstore "github.com/teamroster/user-admin/internal/infrastructure/db/redis"
	"github.com/teamroster/user-admin/internal/infrastructure/queue"
	"github.com/teamroster/user-admin/internal/infrastructure/security"
	"github.com/teamroster/user-admin/internal/infrastructure/store"
	"github.com/teamroster/user-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup(ctx, config.Load)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("store unavailable")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("store close failed")
		}
	}()

	var limiter ports.LoginLimiter
	redisCfg := redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		rdb, err := redisstore.Connect(ctx, redisCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		limiter = redisstore.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		st.Pingers["redis"] = redisstore.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login throttling enabled")
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, st.Audit, log)
	dispatcher.Start(workerCtx)

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	e := api.NewRouter(api.Deps{
		Auth:         service.NewAuthService(st.Users, hasher, tokens, limiter, dispatcher, log),
		Users:        service.NewUserService(st.Users, hasher, dispatcher, log),
		Audit:        service.NewAuditService(st.Audit),
		Tokens:       tokens,
		Health:       st.Pingers,
		AllowOrigins: cfg.AllowedOrigins(),
		Logger:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("driver", st.Driver).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}

	cancelWorkers()
	dispatcher.Wait()
	log.Info().Msg("stopped")
}

// setup loads the configuration and initialises the shared logger from it.
func setup(ctx context.Context, load func(context.Context) (*config.Config, error)) (*config.Config, zerolog.Logger, error) {
	cfg, err := load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "user-admin",
	})
	return cfg, log, nil
}
