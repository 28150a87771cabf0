package aggregation

import (
	"errors"
	"fmt"
)

// Season is one of the four thematic buckets the game catalogue is re-skinned under.
// It doubles as a storage partition key, so values are compared and stored verbatim.
type Season string

const (
	SeasonWiosna Season = "wiosna"
	SeasonLato   Season = "lato"
	SeasonJesien Season = "jesien"
	SeasonZima   Season = "zima"
)

// ErrUnknownSeason is returned when a season value is not one of the known seasons.
var ErrUnknownSeason = errors.New("unknown season")

// DefaultSeasonOrder is the unlock order used when the catalogue does not override it.
var DefaultSeasonOrder = []Season{SeasonWiosna, SeasonLato, SeasonJesien, SeasonZima}

// Valid reports whether s is a known season. No case folding or trimming is applied.
func (s Season) Valid() bool {
	switch s {
	case SeasonWiosna, SeasonLato, SeasonJesien, SeasonZima:
		return true
	default:
		return false
	}
}

func (s Season) String() string { return string(s) }

// ParseSeason converts a raw value into a Season.
func ParseSeason(raw string) (Season, error) {
	s := Season(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSeason, raw)
	}
	return s, nil
}
