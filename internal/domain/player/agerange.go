package player

import (
	"strconv"
	"strings"
)

const (
	MinSearchAge = 1
	MaxSearchAge = 100
)

// AgeRange is an inclusive age window. The zero value disables age filtering.
type AgeRange struct {
	Min int
	Max int
}

func (r AgeRange) Active() bool {
	return r.Min > 0 || r.Max > 0
}

// ParseAgeRange reads "25-30", "25 30" or "40". Token order does not matter.
// Whitespace around a hyphen is ignored. Malformed input, including a
// dangling hyphen or a signed number, returns the zero range.
func ParseAgeRange(raw string) AgeRange {
	normalized := joinAgeFields(strings.Fields(raw))
	if normalized == "" {
		return AgeRange{}
	}

	lo, hi := 0, 0
	for i, token := range strings.Split(normalized, "-") {
		if token == "" || strings.TrimLeft(token, "0123456789") != "" {
			return AgeRange{}
		}
		value, err := strconv.Atoi(token)
		if err != nil {
			return AgeRange{}
		}
		if i == 0 || value < lo {
			lo = value
		}
		if i == 0 || value > hi {
			hi = value
		}
	}

	if lo <= 0 {
		lo = MinSearchAge
	}
	if hi >= MaxSearchAge {
		hi = MaxSearchAge
	}

	return AgeRange{Min: lo, Max: hi}
}

// joinAgeFields glues whitespace-separated fields with a single hyphen,
// unless a hyphen already sits on either side of the gap.
func joinAgeFields(fields []string) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 && !strings.HasSuffix(fields[i-1], "-") && !strings.HasPrefix(field, "-") {
			b.WriteByte('-')
		}
		b.WriteString(field)
	}
	return b.String()
}
