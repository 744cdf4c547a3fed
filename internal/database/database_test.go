package database

import (
	"path/filepath"
	"testing"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteConfig(t *testing.T) *config.Config {
	return &config.Config{DB: config.DBConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "quiz.db"),
	}}
}

func TestSQLiteMigrations_UpIsIdempotentAndDownDrops(t *testing.T) {
	cfg := newSQLiteConfig(t)
	db, err := NewDB(cfg)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(db, cfg.DB.Driver, Up))
	require.NoError(t, RunMigrations(db, cfg.DB.Driver, Up))

	_, err = db.Exec(`INSERT INTO quizzes (id, url, title, full_quiz_data) VALUES ('1', 'https://en.wikipedia.org/wiki/A', 'A', '{}')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO quizzes (id, url, full_quiz_data) VALUES ('2', 'https://en.wikipedia.org/wiki/A', '{}')`)
	assert.Error(t, err, "url must be unique")

	require.NoError(t, RunMigrations(db, cfg.DB.Driver, Down))
	var count int
	err = db.Get(&count, `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'quizzes'`)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	cfg := newSQLiteConfig(t)
	db, err := NewDB(cfg)
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, RunMigrations(db, "mongo", Up))
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x INT);\n\nCREATE INDEX i ON a (x)\n;  ")
	assert.Equal(t, []string{"CREATE TABLE a (x INT)", "CREATE INDEX i ON a (x)"}, got)
}

func TestOracleMigrationsAreEmbedded(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations/oracle")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
