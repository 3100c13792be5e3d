package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/teamroster/user-admin/internal/infrastructure/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}
	s, err := Open(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close(context.Background())

	if s.Users == nil || s.Audit == nil {
		t.Fatalf("expected repositories, got %+v", s)
	}
	if len(s.Pingers) != 0 {
		t.Fatalf("memory store has nothing to ping")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	if _, err := Open(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected error")
	}
}
