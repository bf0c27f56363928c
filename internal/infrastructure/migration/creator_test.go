package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- test"), 0o644))
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"add combination sku", "add_combination_sku"},
		{"Add-Combination-SKU", "add_combination_sku"},
		{"index__products__name", "index_products_name"},
		{"   spaces   ", "spaces"},
		{"preço!@#", "preo"},
		{"_leading and trailing_", "leading_and_trailing"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestNextVersion(t *testing.T) {
	t.Run("empty directory starts at one", func(t *testing.T) {
		v, err := NextVersion(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "000001", v)
	})

	t.Run("follows highest existing version", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir,
			"000001_create_catalog.up.sql", "000001_create_catalog.down.sql",
			"000007_add_sku.up.sql", "000007_add_sku.down.sql",
			"notes_without_version.up.sql",
		)

		v, err := NextVersion(dir)
		require.NoError(t, err)
		assert.Equal(t, "000008", v)
	})
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "000001_create_catalog.up.sql", "000001_create_catalog.down.sql")

	mf, err := CreateMigration(dir, "Add combination SKU", "sku column on combinations")
	require.NoError(t, err)

	assert.Equal(t, "000002", mf.Version)
	assert.Equal(t, "add_combination_sku", mf.Name)
	assert.Equal(t, filepath.Join(dir, "000002_add_combination_sku.up.sql"), mf.UpPath)
	assert.Equal(t, filepath.Join(dir, "000002_add_combination_sku.down.sql"), mf.DownPath)

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- 000002 add_combination_sku")
	assert.Contains(t, string(up), "-- sku column on combinations")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")

	names, err := ListMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_catalog", "000002_add_combination_sku"}, names)
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(nested, "init", "")
	require.NoError(t, err)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateMigration_RejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		names, err := ListMigrations(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("ignores other files and directories", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "000002_b.up.sql", "000002_b.down.sql", "000001_a.up.sql", "README.md", ".gitkeep")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o755))

		names, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_a", "000002_b"}, names)
	})
}
