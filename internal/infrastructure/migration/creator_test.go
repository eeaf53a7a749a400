package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates an up and down pair", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add sales table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.Contains(t, filepath.Base(mf.UpPath), "add_sales_table.up.sql")
		assert.Contains(t, filepath.Base(mf.DownPath), "add_sales_table.down.sql")
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "migrations")

		_, err := CreateMigration(dir, "init")
		require.NoError(t, err)

		_, err = os.Stat(dir)
		assert.NoError(t, err)
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add sales table", "add_sales_table"},
		{"Add-Sales-Table", "add_sales_table"},
		{"weird!!chars##", "weirdchars"},
		{"trailing space ", "trailing_space"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("lists up migrations by base name", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000001_init.up.sql",
			"000001_init.down.sql",
			"000002_add_stores.up.sql",
			"000002_add_stores.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_init", "000002_add_stores"}, migrations)
	})

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
