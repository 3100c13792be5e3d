package ports

import "context"

// LoginLimiter throttles repeated failed sign-ins for a key (the email).
type LoginLimiter interface {
	Allowed(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
