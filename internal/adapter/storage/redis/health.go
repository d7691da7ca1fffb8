package redis

import (
	"context"

	"paylater-ledger/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck probes Redis for the health endpoint. A failing probe marks
// the service degraded rather than down: rate limiting fails open.
type HealthCheck struct {
	client *goredis.Client
}

var _ ports.HealthChecker = (*HealthCheck)(nil)

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

func (h *HealthCheck) Name() string {
	return "redis"
}
