package health

import "context"

// ArtifactChecker verifies the served artifact is present and readable.
type ArtifactChecker interface {
	HealthCheck(ctx context.Context) error
}

// Pinger checks availability of a publish target.
type Pinger interface {
	Ping(ctx context.Context) error
}
