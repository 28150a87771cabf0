package catalogue

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"gopkg.in/yaml.v3"
)

// DefaultGamesPerSeason is the catalogue size used when no catalogue file is configured.
const DefaultGamesPerSeason = 12

// Catalogue describes the seasonal game set: which seasons exist, in which order they
// unlock, and which game ids are playable. It is loaded once at startup and fingerprinted
// so a changed file is visible in logs.
type Catalogue struct {
	GamesPerSeason int
	Seasons        []aggregation.Season
	Fingerprint    string // SHA-256 of the raw YAML file; empty for defaults

	games    map[string]struct{}
	required map[aggregation.Season]int
}

// rawCatalogue is the on-disk YAML shape.
type rawCatalogue struct {
	GamesPerSeason *int           `yaml:"games_per_season"`
	Seasons        []string       `yaml:"seasons"`
	Games          []string       `yaml:"games"`
	Unlock         map[string]int `yaml:"unlock"` // optional per-season threshold overrides
}

// Default returns the built-in catalogue: four seasons, twelve games each, any game id accepted.
func Default() *Catalogue {
	return &Catalogue{
		GamesPerSeason: DefaultGamesPerSeason,
		Seasons:        append([]aggregation.Season(nil), aggregation.DefaultSeasonOrder...),
	}
}

// Load reads the catalogue at path. A missing file is valid and yields Default().
func Load(path string) (*Catalogue, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalogue %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds a catalogue from raw YAML.
func Parse(data []byte) (*Catalogue, error) {
	var raw rawCatalogue
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalogue: %w", err)
	}

	c := Default()
	c.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))

	if raw.GamesPerSeason != nil {
		if *raw.GamesPerSeason < 0 {
			return nil, fmt.Errorf("catalogue: games_per_season must not be negative, got %d", *raw.GamesPerSeason)
		}
		c.GamesPerSeason = *raw.GamesPerSeason
	}

	if len(raw.Seasons) > 0 {
		seen := make(map[aggregation.Season]bool, len(raw.Seasons))
		c.Seasons = c.Seasons[:0]
		for _, s := range raw.Seasons {
			season, err := aggregation.ParseSeason(s)
			if err != nil {
				return nil, fmt.Errorf("catalogue: %w", err)
			}
			if seen[season] {
				return nil, fmt.Errorf("catalogue: season %q listed twice", s)
			}
			seen[season] = true
			c.Seasons = append(c.Seasons, season)
		}
	}

	if len(raw.Games) > 0 {
		c.games = make(map[string]struct{}, len(raw.Games))
		for _, g := range raw.Games {
			if g == "" {
				return nil, fmt.Errorf("catalogue: game id must not be empty")
			}
			c.games[g] = struct{}{}
		}
	}

	if len(raw.Unlock) > 0 {
		c.required = make(map[aggregation.Season]int, len(raw.Unlock))
		for s, n := range raw.Unlock {
			season, err := aggregation.ParseSeason(s)
			if err != nil {
				return nil, fmt.Errorf("catalogue unlock: %w", err)
			}
			if n < 0 {
				return nil, fmt.Errorf("catalogue unlock %q: threshold must not be negative", s)
			}
			c.required[season] = n
		}
	}
	return c, nil
}

// KnownGame reports whether gameID is playable. An empty game list accepts every id.
func (c *Catalogue) KnownGame(gameID string) bool {
	if gameID == "" {
		return false
	}
	if len(c.games) == 0 {
		return true
	}
	_, ok := c.games[gameID]
	return ok
}

// KnownSeason reports whether season is part of this catalogue.
func (c *Catalogue) KnownSeason(season aggregation.Season) bool {
	for _, s := range c.Seasons {
		if s == season {
			return true
		}
	}
	return false
}

// GameCount returns the number of explicitly listed games (0 when unrestricted).
func (c *Catalogue) GameCount() int { return len(c.games) }

// Thresholds returns the unlock thresholds, applying any per-season overrides on top of
// the default spacing.
func (c *Catalogue) Thresholds() aggregation.Thresholds {
	t := aggregation.DefaultThresholds(c.Seasons, c.GamesPerSeason)
	for s, n := range c.required {
		if _, ok := t.Required[s]; ok {
			t.Required[s] = n
		}
	}
	return t
}
