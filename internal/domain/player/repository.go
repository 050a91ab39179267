package player

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by Insert when a record with the same id already
// exists in the partition.
var ErrDuplicate = errors.New("player already exists")

// Repository describes the cache store needs of the search and refresh use cases.
type Repository interface {
	Insert(ctx context.Context, p Player) error
	Delete(ctx context.Context, partitionKey, id string) error
	GetByID(ctx context.Context, sport Sport, id string) (Player, bool, error)
	Search(ctx context.Context, filter SearchFilter) ([]Player, error)
	AverageAgeBySport(ctx context.Context) (AverageAges, error)
	AverageAgeByPositionAndSport(ctx context.Context, position string, sport Sport) (int, error)
}
