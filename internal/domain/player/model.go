package player

import (
	"fmt"
	"strings"
	"time"
)

// Sport identifies one roster feed. Its string form doubles as the partition key.
type Sport string

const (
	SportBaseball   Sport = "baseball"
	SportBasketball Sport = "basketball"
	SportFootball   Sport = "football"
)

// AllSports lists every sport the cache keeps fresh, in refresh order.
var AllSports = []Sport{SportBaseball, SportBasketball, SportFootball}

func (s Sport) String() string {
	return string(s)
}

func (s Sport) Valid() bool {
	switch s {
	case SportBaseball, SportBasketball, SportFootball:
		return true
	default:
		return false
	}
}

// ParseSport normalizes user or feed input into a Sport.
func ParseSport(v string) (Sport, error) {
	sport := Sport(strings.ToLower(strings.TrimSpace(v)))
	if !sport.Valid() {
		return "", fmt.Errorf("unknown sport %q", v)
	}
	return sport, nil
}

// Player is one cached roster record.
type Player struct {
	ID                     string
	PartitionKey           string
	Sport                  Sport
	FirstName              string
	LastName               string
	Position               string
	Age                    int
	NameBrief              string
	AveragePositionAgeDiff int
	LastImported           time.Time
}

// HasKnownAge reports whether the age takes part in averages and diffs.
func (p Player) HasKnownAge() bool {
	return p.Age > 0
}

// Tag binds the record to its sport partition.
func (p Player) Tag(sport Sport, importedAt time.Time) Player {
	p.Sport = sport
	p.PartitionKey = sport.String()
	p.LastImported = importedAt
	return p
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if !p.Sport.Valid() {
		return fmt.Errorf("invalid player sport: %s", p.Sport)
	}
	if p.PartitionKey != p.Sport.String() {
		return fmt.Errorf("player partition key %q does not match sport %q", p.PartitionKey, p.Sport)
	}
	return nil
}

// AverageAges holds the average known age per sport. Sports without stored
// records read as zero.
type AverageAges map[Sport]int

// EmptyAverageThreshold is the sentinel below which a sport counts as having no data.
const EmptyAverageThreshold = 1

func (a AverageAges) Of(sport Sport) int {
	if a == nil {
		return 0
	}
	return a[sport]
}

// StaleSports returns the sports whose cached data is empty or fully expired.
func (a AverageAges) StaleSports() []Sport {
	out := make([]Sport, 0, len(AllSports))
	for _, sport := range AllSports {
		if a.Of(sport) < EmptyAverageThreshold {
			out = append(out, sport)
		}
	}
	return out
}

// SearchCriteria is the raw, fully optional search input.
type SearchCriteria struct {
	Sport    string
	LastName string
	Position string
	Age      string
}

// SearchFilter is the resolved criteria every store adapter understands.
// Zero values mean "no constraint".
type SearchFilter struct {
	Sport       Sport
	LastInitial string
	Position    string
	Age         AgeRange
}

// Matches evaluates the filter in memory with the same semantics as the SQL
// translation.
func (f SearchFilter) Matches(p Player) bool {
	if f.Sport != "" && p.PartitionKey != f.Sport.String() {
		return false
	}
	if f.LastInitial != "" && strings.ToUpper(firstRune(p.LastName)) != f.LastInitial {
		return false
	}
	if f.Position != "" && p.Position != f.Position {
		return false
	}
	if f.Age.Active() && (p.Age < f.Age.Min || p.Age > f.Age.Max) {
		return false
	}
	return true
}
