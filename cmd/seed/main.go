// Command seed loads the accounts listed in a YAML file into the configured
// store. Existing emails are skipped unless -force wipes the users first.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/infrastructure/config"
	"github.com/teamroster/user-admin/internal/infrastructure/security"
	"github.com/teamroster/user-admin/internal/infrastructure/seed"
	"github.com/teamroster/user-admin/internal/infrastructure/store"
	"github.com/teamroster/user-admin/pkg/logger"
)

func main() {
	file := flag.String("file", "", "seed file (defaults to SEED_FILE)")
	force := flag.Bool("force", false, "delete all users before seeding")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, log, err := setup(ctx, config.Load)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}

	if cfg.Store.Driver == config.DriverMemory {
		log.Fatal().Msg("seeding the memory store has no lasting effect")
	}

	path := *file
	if path == "" {
		path = cfg.SeedFile
	}
	f, err := seed.LoadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("cannot load seed file")
	}

	st, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("store unavailable")
	}
	defer st.Close(context.Background())

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	res, err := seed.NewSeeder(st.Users, st.Users, hasher, log).Run(ctx, f, *force)
	if err != nil {
		log.Error().Err(err).Msg("seeding failed")
		return
	}

	log.Info().
		Int64("purged", res.Purged).
		Int("created", res.Created).
		Int("skipped", res.Skipped).
		Msg("seeding complete")
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
		Service: "user-admin-seed",
	})
	return cfg, log, nil
}
