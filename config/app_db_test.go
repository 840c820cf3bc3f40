package config

import (
	"testing"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeEnv(t *testing.T) {
	assert.Equal(t, "value", sanitizeEnv(`  "value" `))
	assert.Equal(t, "value", sanitizeEnv(`'value'`))
	assert.Equal(t, `"half`, sanitizeEnv(`"half`))
}

func TestBuildDSNFromEnv_PrefersDatabaseURL(t *testing.T) {
	dsn, err := buildDSNFromEnv("postgres://u:p@db/seam", log.NewNopLogger(), NewDBConfig())
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/seam", dsn)
}

func TestBuildDSNFromEnv_ReportsMissingVars(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "")
	t.Setenv("POSTGRES_PORT", "")
	t.Setenv("POSTGRES_USER", "")
	t.Setenv("POSTGRES_DB_NAME", "")

	_, err := buildDSNFromEnv("", log.NewNopLogger(), NewDBConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_HOST")
	assert.Contains(t, err.Error(), "POSTGRES_DB_NAME")
}

func TestBuildDSNFromEnv_FromParts(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "5432")
	t.Setenv("POSTGRES_USER", "seam")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB_NAME", "seam")
	t.Setenv("POSTGRES_SSLMODE", "disable")

	dsn, err := buildDSNFromEnv("", log.NewNopLogger(), NewDBConfig())
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=seam password=secret dbname=seam sslmode=disable", dsn)
}

func TestNewDatabase_SQLiteInMemory(t *testing.T) {
	cfg := NewDBConfig()
	cfg.Driver = DBDriverSQLite
	cfg.SQLitePath = "file::memory:"

	db, err := NewDatabase(log.NewNopLogger(), cfg)
	require.NoError(t, err)
	defer CloseDatabase(db, log.NewNopLogger())

	require.NoError(t, AutoMigrate(log.NewNopLogger(), db, models.ModelRegistry...))
	assert.True(t, db.Migrator().HasTable(&models.WaitlistEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.DailyVisit{}))
}

func TestNewDatabase_RejectsUnknownDriver(t *testing.T) {
	cfg := NewDBConfig()
	cfg.Driver = "mysql"

	_, err := NewDatabase(log.NewNopLogger(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}

func TestDBConfig_MigrationDriver(t *testing.T) {
	assert.Equal(t, "sqlite3", (&DBConfig{Driver: DBDriverSQLite}).MigrationDriver())
	assert.Equal(t, "postgres", (&DBConfig{Driver: DBDriverPostgres}).MigrationDriver())
}
