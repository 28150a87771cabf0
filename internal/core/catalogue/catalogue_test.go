package catalogue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/projecteax/mozgnamaxa/internal/core/aggregation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalogue.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultGamesPerSeason, c.GamesPerSeason)
	assert.Equal(t, aggregation.DefaultSeasonOrder, c.Seasons)
	assert.Empty(t, c.Fingerprint)
	assert.True(t, c.KnownGame("anything"))
	assert.False(t, c.KnownGame(""))
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeCatalogue(t, `
games_per_season: 2
seasons: [wiosna, lato]
games: [maze-game, sorting-game]
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, c.GamesPerSeason)
	assert.Equal(t, []aggregation.Season{aggregation.SeasonWiosna, aggregation.SeasonLato}, c.Seasons)
	assert.Len(t, c.Fingerprint, 64)
	assert.True(t, c.KnownGame("maze-game"))
	assert.False(t, c.KnownGame("unknown-game"))
	assert.Equal(t, 2, c.GameCount())
	assert.True(t, c.KnownSeason(aggregation.SeasonLato))
	assert.False(t, c.KnownSeason(aggregation.SeasonZima))

	th := c.Thresholds()
	assert.Equal(t, 0, th.Required[aggregation.SeasonWiosna])
	assert.Equal(t, 2, th.Required[aggregation.SeasonLato])
}

func TestLoad_FingerprintChangesWithContent(t *testing.T) {
	a, err := Load(writeCatalogue(t, "games_per_season: 3\n"))
	require.NoError(t, err)
	b, err := Load(writeCatalogue(t, "games_per_season: 4\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, b.Fingerprint)
}

func TestThresholds_Defaults(t *testing.T) {
	th := Default().Thresholds()
	require.Equal(t, aggregation.DefaultSeasonOrder, th.Order)
	assert.Equal(t, 0, th.Required[aggregation.SeasonWiosna])
	assert.Equal(t, 12, th.Required[aggregation.SeasonLato])
	assert.Equal(t, 24, th.Required[aggregation.SeasonJesien])
	assert.Equal(t, 36, th.Required[aggregation.SeasonZima])
}

func TestThresholds_UnlockOverrides(t *testing.T) {
	c, err := Parse([]byte(`
unlock:
  zima: 5
`))
	require.NoError(t, err)
	th := c.Thresholds()
	assert.Equal(t, 5, th.Required[aggregation.SeasonZima])
	assert.Equal(t, 12, th.Required[aggregation.SeasonLato])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "seasons: [wiosna"},
		{name: "unknown season", content: "seasons: [monsun]"},
		{name: "duplicate season", content: "seasons: [lato, lato]"},
		{name: "negative games per season", content: "games_per_season: -1"},
		{name: "empty game id", content: `games: [""]`},
		{name: "unknown unlock season", content: "unlock:\n  monsun: 3"},
		{name: "negative unlock", content: "unlock:\n  lato: -3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.content))
			require.Error(t, err)
		})
	}
}
