package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// RefreshTrigger starts a detached refresh for one sport.
type RefreshTrigger interface {
	Schedule(sport player.Sport) bool
}

type FreshnessMonitor struct {
	repo    player.Repository
	trigger RefreshTrigger
	logger  *logging.Logger
}

func NewFreshnessMonitor(repo player.Repository, trigger RefreshTrigger, logger *logging.Logger) *FreshnessMonitor {
	if logger == nil {
		logger = logging.Default()
	}
	return &FreshnessMonitor{
		repo:    repo,
		trigger: trigger,
		logger:  logger.Named("freshness"),
	}
}

// IsStale reports whether any sport has no live records and, if so, asks
// for a refresh of exactly those sports without waiting for it.
func (m *FreshnessMonitor) IsStale(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FreshnessMonitor.IsStale")
	defer span.End()

	averages, err := m.repo.AverageAgeBySport(ctx)
	if err != nil {
		recordSpanError(span, err)
		return false, fmt.Errorf("compute average age by sport: %w", err)
	}

	stale := averages.StaleSports()
	if len(stale) == 0 {
		return false, nil
	}

	for _, sport := range stale {
		span.SetAttributes(attribute.String("stale_sport", sport.String()))
		if !m.trigger.Schedule(sport) {
			m.logger.WarnContext(ctx, "stale sport left unscheduled", "sport", sport)
		}
	}
	m.logger.InfoContext(ctx, "stale data detected", "sports", stale)
	return true, nil
}
