package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sportdata/internal/domain/player"
	"github.com/riskibarqy/sportdata/internal/platform/cache"
	"go.opentelemetry.io/otel/attribute"
)

// Enricher fills the derived fields of search results.
type Enricher struct {
	repo player.Repository
}

func NewEnricher(repo player.Repository) *Enricher {
	return &Enricher{repo: repo}
}

// Enrich returns a copy of players with NameBrief and AveragePositionAgeDiff
// set. Positional averages are looked up once per sport and position for
// the duration of the call. Running it twice yields the same values as long
// as the stored averages do not change.
func (e *Enricher) Enrich(ctx context.Context, players []player.Player) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Enricher.Enrich", attribute.Int("players", len(players)))
	defer span.End()

	averages := cache.NewStore[int](0)
	out := make([]player.Player, len(players))
	for i, p := range players {
		sport := p.Sport
		if sport == "" {
			sport = player.Sport(p.PartitionKey)
		}

		p.NameBrief = player.NameBrief(sport, p.FirstName, p.LastName)
		p.AveragePositionAgeDiff = 0
		if p.HasKnownAge() {
			position := p.Position
			avg, err := averages.GetOrLoad(ctx, sport.String()+"|"+position, func(ctx context.Context) (int, error) {
				return e.repo.AverageAgeByPositionAndSport(ctx, position, sport)
			})
			if err != nil {
				recordSpanError(span, err)
				return nil, fmt.Errorf("average age for %s %s: %w", sport, position, err)
			}
			p.AveragePositionAgeDiff = p.Age - avg
		}
		out[i] = p
	}

	span.SetAttributes(attribute.Int("position_lookups", averages.Len()))
	return out, nil
}
