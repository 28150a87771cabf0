package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_DialectsHaveMatchingVersions(t *testing.T) {
	pg, err := fs.Glob(MigrationFiles, "postgres/*.sql")
	require.NoError(t, err)
	lite, err := fs.Glob(MigrationFiles, "sqlite/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, pg)
	require.Len(t, lite, len(pg))

	for i := range pg {
		require.Equal(t, pg[i][len("postgres/"):], lite[i][len("sqlite/"):])
	}
}

func TestRunMigrations_UnknownDialect(t *testing.T) {
	err := RunMigrations(nil, Dialect("oracle"), true)
	require.Error(t, err)
}
