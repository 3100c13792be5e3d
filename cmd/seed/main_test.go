package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/teamroster/user-admin/internal/infrastructure/config"
	"github.com/teamroster/user-admin/pkg/logger"
)

func loaderFor(env map[string]string) func(context.Context) (*config.Config, error) {
	return func(ctx context.Context) (*config.Config, error) {
		return config.LoadFrom(ctx, envconfig.MapLookuper(env))
	}
}

func TestSetup_ConfigError(t *testing.T) {
	logger.Reset()
	defer logger.Reset()

	cfg, log, err := setup(context.Background(), loaderFor(map[string]string{}))
	if err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
	if !strings.HasPrefix(err.Error(), "config:") {
		t.Fatalf("unexpected error %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected no config, got %+v", cfg)
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected a disabled logger on failure")
	}
	if l := logger.Get(); l.GetLevel() != zerolog.Disabled {
		t.Fatalf("shared logger must stay uninitialised after a config error")
	}
}

func TestSetup_LoaderErrorPassedThrough(t *testing.T) {
	logger.Reset()
	defer logger.Reset()

	boom := errors.New("boom")
	_, _, err := setup(context.Background(), func(context.Context) (*config.Config, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestSetup_InitialisesLogger(t *testing.T) {
	logger.Reset()
	defer logger.Reset()

	cfg, log, err := setup(context.Background(), loaderFor(map[string]string{
		"JWT_SECRET": "secret",
		"ENV":        "production",
		"LOG_LEVEL":  "warn",
	}))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production env")
	}
	if log.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %s", log.GetLevel())
	}
	if l := logger.Get(); l.GetLevel() != zerolog.WarnLevel {
		t.Fatalf("expected shared logger to be initialised")
	}
}
