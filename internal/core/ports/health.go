package ports

import "context"

// HealthChecker probes one external dependency. The health endpoint
// aggregates these: any failing probe marks the service degraded.
type HealthChecker interface {
	// Ping returns nil when the dependency is reachable.
	Ping(ctx context.Context) error
	// Name identifies the dependency in the health report ("postgresql", "redis").
	Name() string
}
