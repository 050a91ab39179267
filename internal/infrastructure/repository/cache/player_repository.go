package cache

import (
	"context"
	"maps"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/sportdata/internal/domain/player"
	basecache "github.com/riskibarqy/sportdata/internal/platform/cache"
)

// PlayerRepository caches the aggregate reads behind every search. Any write
// through it invalidates what was cached, so readers never see averages
// older than the last refresh by more than the configured ttl.
type PlayerRepository struct {
	next       player.Repository
	sportAvg   *basecache.Store[player.AverageAges]
	positional *basecache.Store[int]
	generation atomic.Uint64
}

func NewPlayerRepository(next player.Repository, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		next:       next,
		sportAvg:   basecache.NewStore[player.AverageAges](ttl),
		positional: basecache.NewStore[int](ttl),
	}
}

// keys carry the write generation so a load racing an invalidation lands
// under a key nobody reads again.
func (r *PlayerRepository) key(parts ...string) string {
	out := strconv.FormatUint(r.generation.Load(), 10)
	for _, part := range parts {
		out += "|" + part
	}
	return out
}

func (r *PlayerRepository) invalidate() {
	r.generation.Add(1)
	r.sportAvg.Clear()
	r.positional.Clear()
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) error {
	defer r.invalidate()
	return r.next.Insert(ctx, p)
}

func (r *PlayerRepository) Delete(ctx context.Context, partitionKey, id string) error {
	defer r.invalidate()
	return r.next.Delete(ctx, partitionKey, id)
}

func (r *PlayerRepository) GetByID(ctx context.Context, sport player.Sport, id string) (player.Player, bool, error) {
	return r.next.GetByID(ctx, sport, id)
}

func (r *PlayerRepository) Search(ctx context.Context, filter player.SearchFilter) ([]player.Player, error) {
	return r.next.Search(ctx, filter)
}

func (r *PlayerRepository) AverageAgeBySport(ctx context.Context) (player.AverageAges, error) {
	ages, err := r.sportAvg.GetOrLoad(ctx, r.key("sport"), r.next.AverageAgeBySport)
	if err != nil {
		return nil, err
	}
	return maps.Clone(ages), nil
}

func (r *PlayerRepository) AverageAgeByPositionAndSport(ctx context.Context, position string, sport player.Sport) (int, error) {
	return r.positional.GetOrLoad(ctx, r.key(sport.String(), position), func(ctx context.Context) (int, error) {
		return r.next.AverageAgeByPositionAndSport(ctx, position, sport)
	})
}
