package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"github.com/riskibarqy/sportdata/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// PlayerFeed supplies the full roster of one sport from the upstream feed.
type PlayerFeed interface {
	FetchPlayers(ctx context.Context, sport player.Sport) ([]player.Player, error)
}

// RepopulationService reloads one sport from the feed into the store.
type RepopulationService struct {
	feed   PlayerFeed
	repo   player.Repository
	logger *logging.Logger
	now    func() time.Time
	flight resilience.SingleFlight[[]player.Player]
}

func NewRepopulationService(feed PlayerFeed, repo player.Repository, logger *logging.Logger) *RepopulationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RepopulationService{
		feed:   feed,
		repo:   repo,
		logger: logger.Named("repopulation"),
		now:    time.Now,
	}
}

// Refresh fetches the sport's roster and writes every record with a fresh
// import timestamp. A record that already exists is deleted and inserted
// again. Feed failures are logged and yield an empty result without error;
// store failures abort the run. Concurrent calls for one sport share a run.
func (s *RepopulationService) Refresh(ctx context.Context, sport player.Sport) ([]player.Player, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.RepopulationService.Refresh", attribute.String("sport", sport.String()))
	defer span.End()

	players, err, shared := s.flight.Do(sport.String(), func() ([]player.Player, error) {
		return s.refresh(ctx, sport)
	})
	if shared {
		s.logger.DebugContext(ctx, "joined in-flight refresh", "sport", sport)
	}
	recordSpanError(span, err)
	return players, err
}

// InFlight reports whether a refresh for sport is currently running in this process.
func (s *RepopulationService) InFlight(sport player.Sport) bool {
	return s.flight.InFlight(sport.String())
}

func (s *RepopulationService) refresh(ctx context.Context, sport player.Sport) ([]player.Player, error) {
	started := s.now()
	fetched, err := s.feed.FetchPlayers(ctx, sport)
	if err != nil {
		s.logger.WarnContext(ctx, "feed fetch failed, nothing imported", "sport", sport, "error", err)
		return []player.Player{}, nil
	}

	importedAt := s.now().UTC()
	stored := make([]player.Player, 0, len(fetched))
	replaced := 0
	for _, item := range fetched {
		if strings.TrimSpace(item.ID) == "" {
			continue
		}
		record := item.Tag(sport, importedAt)

		wasReplaced, err := s.upsert(ctx, record)
		if err != nil {
			s.logger.ErrorContext(ctx, "store write failed, refresh aborted",
				"sport", sport,
				"player_id", record.ID,
				"stored", len(stored),
				"error", err,
			)
			return stored, fmt.Errorf("store %s player %s: %w", sport, record.ID, err)
		}
		if wasReplaced {
			replaced++
		}
		stored = append(stored, record)
	}

	s.logger.InfoContext(ctx, "refresh finished",
		"sport", sport,
		"fetched", len(fetched),
		"stored", len(stored),
		"replaced", replaced,
		"duration_ms", s.now().Sub(started).Milliseconds(),
	)
	return stored, nil
}

// upsert inserts p, resolving an id conflict by delete-then-insert. The
// pair is not atomic; a concurrent reader may briefly miss the record.
func (s *RepopulationService) upsert(ctx context.Context, p player.Player) (bool, error) {
	err := s.repo.Insert(ctx, p)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, player.ErrDuplicate) {
		return false, err
	}

	if err := s.repo.Delete(ctx, p.PartitionKey, p.ID); err != nil {
		return false, fmt.Errorf("delete conflicting record: %w", err)
	}
	if err := s.repo.Insert(ctx, p); err != nil {
		return false, fmt.Errorf("reinsert after conflict: %w", err)
	}
	return true, nil
}
