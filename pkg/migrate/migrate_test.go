package migrate

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const validSQL = `-- +goose Up
CREATE TABLE demo (id TEXT PRIMARY KEY);

-- +goose Down
DROP TABLE demo;
`

func TestValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_create_demo.sql", validSQL)
	writeMigration(t, dir, "20260102000000_add_index.sql", validSQL)
	writeMigration(t, dir, "README.md", "not a migration")

	require.NoError(t, ValidateDir(dir))
}

func TestValidateDir_badFilename(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "001_create_demo.sql", validSQL)

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid migration filename")
}

func TestValidateDir_duplicateVersion(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_create_demo.sql", validSQL)
	writeMigration(t, dir, "20260101000000_create_other.sql", validSQL)

	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate migration version")
}

func TestValidateDir_missingGooseMarkers(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "20260101000000_create_demo.sql", "CREATE TABLE demo (id TEXT);")

	require.Error(t, ValidateDir(dir))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Supplier Terms!")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "_add_supplier_terms.sql"), "unexpected path %s", path)

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "-- +goose Down")

	// The generated file passes its own validation.
	require.NoError(t, ValidateDir(dir))
}

func TestShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))

	// Every table is created by exactly one migration; a re-created table
	// would abort a fresh `up` run at that file.
	createRe := regexp.MustCompile(`CREATE TABLE (\w+)`)
	created := map[string]int{}

	entries, err := os.ReadDir("migrations")
	require.NoError(t, err)
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		body, err := os.ReadFile(filepath.Join("migrations", entry.Name()))
		require.NoError(t, err)
		for _, m := range createRe.FindAllStringSubmatch(string(body), -1) {
			created[m[1]]++
		}
	}

	expected := []string{
		"companies", "warehouses", "products", "inventories",
		"inventory_history", "suppliers", "supplier_products", "product_bundles",
	}
	require.Len(t, created, len(expected))
	for _, table := range expected {
		assert.Equal(t, 1, created[table], "table %s", table)
	}
}

func TestCreateSQLMigration_validation(t *testing.T) {
	_, err := CreateSQLMigration("", "name")
	require.Error(t, err)

	_, err = CreateSQLMigration(t.TempDir(), "")
	require.Error(t, err)

	_, err = CreateSQLMigration(t.TempDir(), "!!!")
	require.Error(t, err)
}
