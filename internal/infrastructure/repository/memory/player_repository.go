package memory

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/sportdata/internal/domain/player"
)

// PlayerRepository keeps players in process memory with the same expiry and
// conflict rules as the Postgres store. Expired records are invisible and
// are purged lazily.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
	ttl     time.Duration
	now     func() time.Time
}

func NewPlayerRepository(ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{
		players: make(map[string]player.Player),
		ttl:     ttl,
		now:     time.Now,
	}
}

func playerKey(partitionKey, id string) string {
	return partitionKey + "|" + id
}

func (r *PlayerRepository) live(p player.Player, now time.Time) bool {
	if r.ttl <= 0 {
		return true
	}
	return p.LastImported.After(now.Add(-r.ttl))
}

func (r *PlayerRepository) Insert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}

	key := playerKey(p.PartitionKey, p.ID)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.players[key]; ok && r.live(existing, now) {
		return player.ErrDuplicate
	}
	r.players[key] = p
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, partitionKey, id string) error {
	r.mu.Lock()
	delete(r.players, playerKey(partitionKey, id))
	r.mu.Unlock()
	return nil
}

func (r *PlayerRepository) GetByID(_ context.Context, sport player.Sport, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerKey(sport.String(), id)]
	if !ok || !r.live(item, r.now()) {
		return player.Player{}, false, nil
	}
	return item, true, nil
}

func (r *PlayerRepository) Search(_ context.Context, filter player.SearchFilter) ([]player.Player, error) {
	now := r.now()

	r.mu.RLock()
	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		if r.live(item, now) && filter.Matches(item) {
			out = append(out, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.PartitionKey != b.PartitionKey {
			return a.PartitionKey < b.PartitionKey
		}
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return out, nil
}

func (r *PlayerRepository) AverageAgeBySport(_ context.Context) (player.AverageAges, error) {
	type acc struct {
		sum, count int
	}
	now := r.now()
	totals := make(map[player.Sport]*acc, len(player.AllSports))

	r.mu.RLock()
	for _, item := range r.players {
		if !item.HasKnownAge() || !r.live(item, now) {
			continue
		}
		a, ok := totals[item.Sport]
		if !ok {
			a = &acc{}
			totals[item.Sport] = a
		}
		a.sum += item.Age
		a.count++
	}
	r.mu.RUnlock()

	out := make(player.AverageAges, len(totals))
	for sport, a := range totals {
		out[sport] = a.sum / a.count
	}
	return out, nil
}

func (r *PlayerRepository) AverageAgeByPositionAndSport(_ context.Context, position string, sport player.Sport) (int, error) {
	now := r.now()
	sum, count := 0, 0

	r.mu.RLock()
	for _, item := range r.players {
		if item.PartitionKey != sport.String() || item.Position != position || !r.live(item, now) {
			continue
		}
		if item.Age <= 0 || item.Age >= player.MaxSearchAge {
			continue
		}
		sum += item.Age
		count++
	}
	r.mu.RUnlock()

	if count == 0 {
		return 0, nil
	}
	return int(math.RoundToEven(float64(sum) / float64(count))), nil
}

// Len counts stored records including expired ones not yet purged.
func (r *PlayerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
