// Package store opens the credential store selected by configuration.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/core/ports"
	"github.com/teamroster/user-admin/internal/infrastructure/config"
	"github.com/teamroster/user-admin/internal/infrastructure/db/memory"
	mongostore "github.com/teamroster/user-admin/internal/infrastructure/db/mongo"
	"github.com/teamroster/user-admin/internal/infrastructure/db/postgres"
	"github.com/teamroster/user-admin/internal/infrastructure/http/handlers"
)

// UserStore is a user repository that can also be wiped by the seeder.
type UserStore interface {
	ports.UserRepository
	ports.UserPurger
}

type Store struct {
	Driver string
	Users  UserStore
	Audit  ports.AuditRepository
	// Pingers feeds the readiness check; empty for the memory driver.
	Pingers map[string]handlers.Pinger

	close func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured driver and makes sure its schema or
// indexes exist.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("postgres connected")
		return &Store{
			Driver:  cfg.Store.Driver,
			Users:   postgres.NewUserRepository(pool),
			Audit:   postgres.NewAuditRepository(pool),
			Pingers: map[string]handlers.Pinger{"postgres": pool},
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(db)
		audit := mongostore.NewAuditRepository(db)
		if err := mongostore.EnsureIndexes(ctx, users, audit); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		return &Store{
			Driver:  cfg.Store.Driver,
			Users:   users,
			Audit:   audit,
			Pingers: map[string]handlers.Pinger{"mongodb": mongostore.Pinger{Client: client}},
			close:   client.Disconnect,
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return &Store{
			Driver:  cfg.Store.Driver,
			Users:   memory.NewUserRepository(),
			Audit:   memory.NewAuditRepository(),
			Pingers: map[string]handlers.Pinger{},
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
