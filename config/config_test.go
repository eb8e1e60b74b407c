package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"bunshack-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "DB_DRIVER", "DATABASE_DSN", "JWT_SECRET", "SESSION_TTL", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "bunshack.db", cfg.DatabaseDSN)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.AllowedOrigins())
}

func TestLoadFromEnvFile(t *testing.T) {
	for _, k := range []string{"PORT", "SESSION_TTL", "CORS_ORIGINS", "JWT_SECRET"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9090\nSESSION_TTL=2h\nCORS_ORIGINS=http://a.test, http://b.test\nJWT_SECRET=s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"PORT", "SESSION_TTL", "CORS_ORIGINS", "JWT_SECRET"} {
			os.Unsetenv(k)
		}
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestLoadRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestBuildDialector(t *testing.T) {
	for _, driver := range []string{"sqlite", "postgres", "mysql", "sqlserver"} {
		d, err := buildDialector(driver, "dsn")
		require.NoError(t, err, driver)
		assert.Equal(t, driver, d.Name())
	}

	_, err := buildDialector("oracle", "dsn")
	assert.Error(t, err)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", sqliteDSN("app.db"))
	assert.Equal(t, "file:x?mode=memory&_pragma=foreign_keys(1)", sqliteDSN("file:x?mode=memory"))
	assert.Equal(t, ":memory:?_pragma=busy_timeout(5000)", sqliteDSN(":memory:?_pragma=busy_timeout(5000)"))
}

func TestOpenDBAndMigrate(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DatabaseDSN: ":memory:"}
	db, err := OpenDB(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}
