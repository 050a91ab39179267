package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/sportdata/internal/domain/player"
)

// BuildSearchFilter resolves optional criteria into a store filter. Blank
// fields impose no constraint; an unparseable age range is dropped rather
// than rejected. Only an unknown sport is an error.
func BuildSearchFilter(criteria player.SearchCriteria) (player.SearchFilter, error) {
	var filter player.SearchFilter

	if raw := strings.TrimSpace(criteria.Sport); raw != "" {
		sport, err := player.ParseSport(raw)
		if err != nil {
			return player.SearchFilter{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Sport = sport
	}

	filter.LastInitial = player.LastNameInitial(criteria.LastName)
	filter.Position = strings.TrimSpace(criteria.Position)
	filter.Age = player.ParseAgeRange(criteria.Age)
	return filter, nil
}
