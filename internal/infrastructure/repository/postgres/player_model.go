package postgres

import (
	"time"

	"github.com/riskibarqy/sportdata/internal/domain/player"
)

type playerTableModel struct {
	PartitionKey           string    `db:"partition_key"`
	ID                     string    `db:"id"`
	Sport                  string    `db:"sport"`
	FirstName              string    `db:"first_name"`
	LastName               string    `db:"last_name"`
	Position               string    `db:"position"`
	Age                    int       `db:"age"`
	NameBrief              string    `db:"name_brief"`
	AveragePositionAgeDiff int       `db:"average_position_age_diff"`
	LastImported           time.Time `db:"last_imported"`
}

type sportAverageRow struct {
	PartitionKey string  `db:"partition_key"`
	AvgAge       float64 `db:"avg_age"`
}

func playerRowFromDomain(p player.Player) playerTableModel {
	return playerTableModel{
		PartitionKey:           p.PartitionKey,
		ID:                     p.ID,
		Sport:                  p.Sport.String(),
		FirstName:              p.FirstName,
		LastName:               p.LastName,
		Position:               p.Position,
		Age:                    p.Age,
		NameBrief:              p.NameBrief,
		AveragePositionAgeDiff: p.AveragePositionAgeDiff,
		LastImported:           p.LastImported.UTC(),
	}
}

func playerFromRow(row playerTableModel) player.Player {
	sport := player.Sport(row.Sport)
	if sport == "" {
		sport = player.Sport(row.PartitionKey)
	}
	return player.Player{
		ID:                     row.ID,
		PartitionKey:           row.PartitionKey,
		Sport:                  sport,
		FirstName:              row.FirstName,
		LastName:               row.LastName,
		Position:               row.Position,
		Age:                    row.Age,
		NameBrief:              row.NameBrief,
		AveragePositionAgeDiff: row.AveragePositionAgeDiff,
		LastImported:           row.LastImported.UTC(),
	}
}
