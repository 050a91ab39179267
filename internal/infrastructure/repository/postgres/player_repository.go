package postgres

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/sportdata/internal/domain/player"
	qb "github.com/riskibarqy/sportdata/internal/platform/querybuilder"
)

const playersTable = "players"

const createPlayersTableSQL = `
CREATE TABLE IF NOT EXISTS players (
	partition_key TEXT NOT NULL,
	id TEXT NOT NULL,
	sport TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	name_brief TEXT NOT NULL DEFAULT '',
	average_position_age_diff INTEGER NOT NULL DEFAULT 0,
	last_imported TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (partition_key, id)
);
CREATE INDEX IF NOT EXISTS players_last_imported_idx ON players (last_imported);
CREATE INDEX IF NOT EXISTS players_sport_position_idx ON players (partition_key, position);
`

var playerSelectColumns = []string{
	"partition_key",
	"id",
	"sport",
	"first_name",
	"last_name",
	"position",
	"age",
	"name_brief",
	"average_position_age_diff",
	"last_imported",
}

// PlayerRepository stores players in one table whose rows expire ttl after
// last_imported. Expired rows stay on disk until replaced but never match a
// read. The table is created on first use.
type PlayerRepository struct {
	db  *sqlx.DB
	ttl time.Duration
	now func() time.Time

	provisionMu sync.Mutex
	provisioned atomic.Bool
}

func NewPlayerRepository(db *sqlx.DB, ttl time.Duration) *PlayerRepository {
	return &PlayerRepository{db: db, ttl: ttl, now: time.Now}
}

// ensureTable provisions the table once per process. A failed attempt is
// retried by the next caller.
func (r *PlayerRepository) ensureTable(ctx context.Context) error {
	if r.provisioned.Load() {
		return nil
	}

	r.provisionMu.Lock()
	defer r.provisionMu.Unlock()
	if r.provisioned.Load() {
		return nil
	}

	if _, err := r.db.ExecContext(ctx, createPlayersTableSQL); err != nil {
		return fmt.Errorf("provision players table: %w", err)
	}
	r.provisioned.Store(true)
	return nil
}

// observe forgets the provisioned state when the table disappeared underneath us.
func (r *PlayerRepository) observe(err error) error {
	if isUndefinedTable(err) {
		r.provisioned.Store(false)
	}
	return err
}

func (r *PlayerRepository) cutoff() (time.Time, bool) {
	if r.ttl <= 0 {
		return time.Time{}, false
	}
	return r.now().UTC().Add(-r.ttl), true
}

func (r *PlayerRepository) Insert(ctx context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	query, args, err := qb.InsertModel(playersTable, playerRowFromDomain(p), "")
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return player.ErrDuplicate
		}
		return fmt.Errorf("insert player: %w", r.observe(err))
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, partitionKey, id string) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}

	query, args, err := qb.DeleteFrom(playersTable).
		Where(
			qb.Eq("partition_key", partitionKey),
			qb.Eq("id", id),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete player: %w", r.observe(err))
	}
	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, sport player.Sport, id string) (player.Player, bool, error) {
	if err := r.ensureTable(ctx); err != nil {
		return player.Player{}, false, err
	}

	cutoff, expires := r.cutoff()
	query, args, err := qb.Select(playerSelectColumns...).From(playersTable).
		Where(
			qb.Eq("partition_key", sport.String()),
			qb.Eq("id", id),
		).
		WhereIf(expires, qb.Gt("last_imported", cutoff)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", r.observe(err))
	}
	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) Search(ctx context.Context, filter player.SearchFilter) ([]player.Player, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	cutoff, expires := r.cutoff()
	query, args, err := buildSearchQuery(filter, cutoff, expires)
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search players: %w", r.observe(err))
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

// buildSearchQuery always carries the partition self-match so the statement
// shape is the same with or without a sport.
func buildSearchQuery(filter player.SearchFilter, cutoff time.Time, expires bool) (string, []any, error) {
	return qb.Select(playerSelectColumns...).From(playersTable).
		Where(qb.Expr("partition_key = partition_key")).
		WhereIf(expires, qb.Gt("last_imported", cutoff)).
		WhereIf(filter.Sport != "", qb.Eq("partition_key", filter.Sport.String())).
		WhereIf(filter.LastInitial != "", qb.Expr("UPPER(LEFT(last_name, 1)) = ?", filter.LastInitial)).
		WhereIf(filter.Position != "", qb.Eq("position", filter.Position)).
		WhereIf(filter.Age.Active(), qb.Between("age", filter.Age.Min, filter.Age.Max)).
		OrderBy("partition_key", "last_name", "first_name", "id").
		ToSQL()
}

func (r *PlayerRepository) AverageAgeBySport(ctx context.Context) (player.AverageAges, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}

	cutoff, expires := r.cutoff()
	query, args, err := qb.Select("partition_key", "AVG(age)::float8 AS avg_age").From(playersTable).
		Where(qb.Gt("age", 0)).
		WhereIf(expires, qb.Gt("last_imported", cutoff)).
		GroupBy("partition_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build average age by sport query: %w", err)
	}

	var rows []sportAverageRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("average age by sport: %w", r.observe(err))
	}

	out := make(player.AverageAges, len(rows))
	for _, row := range rows {
		out[player.Sport(row.PartitionKey)] = int(row.AvgAge)
	}
	return out, nil
}

func (r *PlayerRepository) AverageAgeByPositionAndSport(ctx context.Context, position string, sport player.Sport) (int, error) {
	if err := r.ensureTable(ctx); err != nil {
		return 0, err
	}

	cutoff, expires := r.cutoff()
	query, args, err := qb.Select("COALESCE(AVG(age), 0)::float8 AS avg_age").From(playersTable).
		Where(
			qb.Eq("partition_key", sport.String()),
			qb.Eq("position", position),
			qb.Expr("age > ? AND age < ?", 0, player.MaxSearchAge),
		).
		WhereIf(expires, qb.Gt("last_imported", cutoff)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build average age by position query: %w", err)
	}

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, args...); err != nil {
		return 0, fmt.Errorf("average age by position: %w", r.observe(err))
	}
	return int(math.RoundToEven(avg)), nil
}
