package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the artifact cannot be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// CheckArtifact is the name of the artifact check.
const CheckArtifact = "artifact"

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	artifact ArtifactChecker
	pingers  map[string]Pinger
}

// New creates a Service for the served artifact.
func New(artifact ArtifactChecker) *Service {
	return &Service{artifact: artifact, pingers: make(map[string]Pinger)}
}

// WithPinger adds an optional dependency; its failure degrades but does not fail health.
func (s *Service) WithPinger(name string, p Pinger) *Service {
	if p != nil {
		s.pingers[name] = p
	}
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.pingers)+1)

	if err := s.artifact.HealthCheck(ctx); err != nil {
		checks[CheckArtifact] = CheckError
	} else {
		checks[CheckArtifact] = CheckOK
	}

	names := make([]string, 0, len(s.pingers))
	for name := range s.pingers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.pingers[name].Ping(ctx); err != nil {
			checks[name] = CheckError
		} else {
			checks[name] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[CheckArtifact] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
