package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_Ordered(t *testing.T) {
	files, err := MigrationFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_players.sql", "002_generations.sql"}, files)
}

func TestMigrations_CreateStoreTables(t *testing.T) {
	var all strings.Builder
	files, err := MigrationFiles()
	require.NoError(t, err)

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		require.NoError(t, err)
		all.Write(content)
	}

	for _, table := range []string{"player", "generation", "roster_pick"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}
