package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/sportdata/internal/domain/player"
)

func TestBuildSearchFilter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		criteria player.SearchCriteria
		want     player.SearchFilter
	}{
		{name: "empty", criteria: player.SearchCriteria{}, want: player.SearchFilter{}},
		{
			name:     "all fields",
			criteria: player.SearchCriteria{Sport: "Football", LastName: "  mahomes", Position: " QB ", Age: "30-25"},
			want: player.SearchFilter{
				Sport:       player.SportFootball,
				LastInitial: "M",
				Position:    "QB",
				Age:         player.AgeRange{Min: 25, Max: 30},
			},
		},
		{
			name:     "garbage age is no filter",
			criteria: player.SearchCriteria{Age: "twenty"},
			want:     player.SearchFilter{},
		},
	}

	for _, tc := range cases {
		got, err := BuildSearchFilter(tc.criteria)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestBuildSearchFilter_UnknownSport(t *testing.T) {
	t.Parallel()

	_, err := BuildSearchFilter(player.SearchCriteria{Sport: "curling"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
