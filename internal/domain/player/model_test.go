package player

import (
	"testing"
	"time"
)

func TestNameBrief(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sport Sport
		first string
		last  string
		want  string
	}{
		{sport: SportFootball, first: "Patrick", last: "Mahomes", want: "P. Mahomes"},
		{sport: SportBasketball, first: "Stephen", last: "Curry", want: "Stephen C."},
		{sport: SportBaseball, first: "Aaron", last: "Judge", want: "A. J."},
		{sport: SportFootball, first: "", last: "Mahomes", want: ". Mahomes"},
		{sport: SportBaseball, first: "Aaron", last: "", want: "A. ."},
		{sport: SportBasketball, first: "Nikola", last: "Šarić", want: "Nikola Š."},
	}

	for _, tc := range cases {
		if got := NameBrief(tc.sport, tc.first, tc.last); got != tc.want {
			t.Fatalf("NameBrief(%s, %q, %q) = %q, want %q", tc.sport, tc.first, tc.last, got, tc.want)
		}
	}
}

func TestParseSport(t *testing.T) {
	t.Parallel()

	got, err := ParseSport(" Football ")
	if err != nil {
		t.Fatalf("parse sport: %v", err)
	}
	if got != SportFootball {
		t.Fatalf("unexpected sport: %s", got)
	}
	if _, err := ParseSport("hockey"); err == nil {
		t.Fatalf("expected error for unknown sport")
	}
}

func TestAverageAges_StaleSports(t *testing.T) {
	t.Parallel()

	ages := AverageAges{SportBaseball: 28, SportFootball: 0}
	stale := ages.StaleSports()
	if len(stale) != 2 || stale[0] != SportBasketball || stale[1] != SportFootball {
		t.Fatalf("unexpected stale sports: %v", stale)
	}

	var empty AverageAges
	if got := len(empty.StaleSports()); got != len(AllSports) {
		t.Fatalf("nil averages should mark every sport stale, got %d", got)
	}
}

func TestPlayer_TagAndValidate(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	p := Player{ID: "1001", FirstName: "Josh", LastName: "Allen"}.Tag(SportFootball, at)
	if p.PartitionKey != "football" || p.Sport != SportFootball || !p.LastImported.Equal(at) {
		t.Fatalf("unexpected tagged player: %+v", p)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate tagged player: %v", err)
	}

	p.PartitionKey = "baseball"
	if err := p.Validate(); err == nil {
		t.Fatalf("expected partition mismatch error")
	}
}

func TestSearchFilter_Matches(t *testing.T) {
	t.Parallel()

	p := Player{ID: "7", FirstName: "Lamar", LastName: "jackson", Position: "QB", Age: 27}.Tag(SportFootball, time.Now())

	cases := []struct {
		name   string
		filter SearchFilter
		want   bool
	}{
		{name: "no constraints", filter: SearchFilter{}, want: true},
		{name: "sport match", filter: SearchFilter{Sport: SportFootball}, want: true},
		{name: "sport mismatch", filter: SearchFilter{Sport: SportBaseball}, want: false},
		{name: "initial is case insensitive", filter: SearchFilter{LastInitial: "J"}, want: true},
		{name: "position mismatch", filter: SearchFilter{Position: "RB"}, want: false},
		{name: "age inside", filter: SearchFilter{Age: AgeRange{Min: 25, Max: 30}}, want: true},
		{name: "age outside", filter: SearchFilter{Age: AgeRange{Min: 30, Max: 35}}, want: false},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(p); got != tc.want {
			t.Fatalf("%s: Matches = %v, want %v", tc.name, got, tc.want)
		}
	}
}
