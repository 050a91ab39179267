package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// StalenessChecker decides whether the cache must be refilled before it can
// answer searches.
type StalenessChecker interface {
	IsStale(ctx context.Context) (bool, error)
}

// SearchResult is either a refreshing notice or the enriched matches.
type SearchResult struct {
	Refreshing bool
	Players    []player.Player
}

type SearchService struct {
	freshness StalenessChecker
	repo      player.Repository
	enricher  *Enricher
	logger    *logging.Logger
}

func NewSearchService(freshness StalenessChecker, repo player.Repository, enricher *Enricher, logger *logging.Logger) *SearchService {
	if logger == nil {
		logger = logging.Default()
	}
	if enricher == nil {
		enricher = NewEnricher(repo)
	}
	return &SearchService{
		freshness: freshness,
		repo:      repo,
		enricher:  enricher,
		logger:    logger.Named("search"),
	}
}

func (s *SearchService) Search(ctx context.Context, criteria player.SearchCriteria) (SearchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.Search")
	defer span.End()

	filter, err := BuildSearchFilter(criteria)
	if err != nil {
		return SearchResult{}, err
	}

	stale, err := s.freshness.IsStale(ctx)
	if err != nil {
		recordSpanError(span, err)
		return SearchResult{}, fmt.Errorf("check freshness: %w", err)
	}
	if stale {
		span.SetAttributes(attribute.Bool("refreshing", true))
		return SearchResult{Refreshing: true}, nil
	}

	players, err := s.repo.Search(ctx, filter)
	if err != nil {
		recordSpanError(span, err)
		return SearchResult{}, fmt.Errorf("search players: %w", err)
	}

	enriched, err := s.enricher.Enrich(ctx, players)
	if err != nil {
		return SearchResult{}, fmt.Errorf("enrich players: %w", err)
	}

	span.SetAttributes(attribute.Int("matches", len(enriched)))
	s.logger.DebugContext(ctx, "search served",
		"sport", filter.Sport,
		"last_initial", filter.LastInitial,
		"position", filter.Position,
		"age_min", filter.Age.Min,
		"age_max", filter.Age.Max,
		"matches", len(enriched),
	)
	return SearchResult{Players: enriched}, nil
}

// GetPlayer returns one live, enriched record.
func (s *SearchService) GetPlayer(ctx context.Context, sportRaw, id string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.GetPlayer")
	defer span.End()

	sport, err := player.ParseSport(sportRaw)
	if err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, ok, err := s.repo.GetByID(ctx, sport, id)
	if err != nil {
		recordSpanError(span, err)
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %s/%s", ErrNotFound, sport, id)
	}

	enriched, err := s.enricher.Enrich(ctx, []player.Player{item})
	if err != nil {
		return player.Player{}, fmt.Errorf("enrich player: %w", err)
	}
	return enriched[0], nil
}
