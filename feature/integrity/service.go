package integrity

import (
	"context"

	"objectsync/core/refresh"
	"objectsync/core/source"
	"objectsync/feature/mapping"

	"go.uber.org/zap"
)

// QueueStatus describes one live model queue.
type QueueStatus struct {
	Type  string `json:"type"`
	State string `json:"state"`
	IDs   int    `json:"ids"`
}

// MappingStatus describes one mapping loader.
type MappingStatus struct {
	Name     string `json:"name"`
	Bindings int    `json:"bindings"`
}

// RuntimeReport summarizes the refresh layer.
type RuntimeReport struct {
	Models   []string        `json:"models"`
	Queues   int             `json:"queues"`
	InFlight int             `json:"in_flight"`
	Cached   int             `json:"cached"`
	Mappings []MappingStatus `json:"mappings"`
}

// Service handles integrity checks.
type Service struct {
	manager *refresh.Manager
	loaders []*mapping.Loader
	checks  map[string]source.Check
	logger  *zap.Logger
}

// NewService creates a new integrity service.
func NewService(manager *refresh.Manager, loaders []*mapping.Loader, checks map[string]source.Check, logger *zap.Logger) *Service {
	return &Service{
		manager: manager,
		loaders: loaders,
		checks:  checks,
		logger:  logger,
	}
}

// CheckSources runs every source check and returns the failures keyed by check name.
func (s *Service) CheckSources(ctx context.Context) map[string]string {
	failures := make(map[string]string)
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("Source check failed", zap.String("check", name), zap.Error(err))
			failures[name] = err.Error()
		}
	}
	return failures
}

// Queues lists the live queues of every registered model, ordered by type.
func (s *Service) Queues() []QueueStatus {
	out := []QueueStatus{}
	for _, typ := range s.manager.Registry().Names() {
		for _, q := range s.manager.Queues(typ) {
			out = append(out, QueueStatus{Type: typ, State: q.State().String(), IDs: q.Len()})
		}
	}
	return out
}

// Runtime summarizes the refresh layer.
func (s *Service) Runtime() RuntimeReport {
	report := RuntimeReport{
		Models:   s.manager.Registry().Names(),
		Queues:   len(s.Queues()),
		InFlight: s.manager.InFlight(),
		Cached:   s.manager.Cache().Len(),
		Mappings: []MappingStatus{},
	}
	for _, l := range s.loaders {
		report.Mappings = append(report.Mappings, MappingStatus{Name: l.Config().Name, Bindings: l.Len()})
	}
	return report
}
