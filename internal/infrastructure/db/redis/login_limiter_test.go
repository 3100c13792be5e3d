package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachable points at a port nothing listens on so every command fails fast.
func unreachable() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 0, 0)
	if l.maxAttempts != defaultMaxAttempts || l.window != defaultWindow {
		t.Fatalf("expected defaults, got %d/%s", l.maxAttempts, l.window)
	}
	if got := l.key("a@x.com"); got != "login:fail:a@x.com" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestLoginLimiter_FailsOpen(t *testing.T) {
	client := unreachable()
	defer client.Close()
	l := NewLoginLimiter(client, 3, time.Minute)

	allowed, err := l.Allowed(context.Background(), "a@x.com")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if !allowed {
		t.Fatalf("limiter must allow attempts when redis is down")
	}
	if err := l.Fail(context.Background(), "a@x.com"); err == nil {
		t.Fatalf("expected error from Fail")
	}
}

func TestConfig_Enabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatalf("empty address must disable throttling")
	}
	if !(Config{Addr: "localhost:6379"}).Enabled() {
		t.Fatalf("address set must enable throttling")
	}
}
