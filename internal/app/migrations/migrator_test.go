package migrations

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestMigrateFromDirectoryAppliesPendingInOrder(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "002_relationships.sql", "CREATE TABLE connections (id TEXT);")
	writeMigration(t, dir, "001_init.sql", "CREATE TABLE accounts (id TEXT);")
	writeMigration(t, dir, "README.md", "ignored")

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	exists := func(applied bool) *pgxmock.Rows {
		return pgxmock.NewRows([]string{"exists"}).AddRow(applied)
	}

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("001").WillReturnRows(exists(true))

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("002").WillReturnRows(exists(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE connections").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec("INSERT INTO schema_migrations").WithArgs("002").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, NewMigrator(mock).MigrateFromDirectory(context.Background(), dir))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFromFileRollsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeMigration(t, dir, "003_content.sql", "CREATE TABLE broken (")

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("003").WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE broken").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = NewMigrator(mock).MigrateFromFile(context.Background(), filepath.Join(dir, "003_content.sql"))
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVersionOf(t *testing.T) {
	assert.Equal(t, "001", versionOf("migrations/001_init.sql"))
	assert.Equal(t, "010", versionOf("010_blog_interactions_more.sql"))
}
