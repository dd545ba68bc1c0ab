package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "olympia-api", cfg.JWT.Issuer)
	assert.Equal(t, 60, cfg.JWT.AccessTokenMins)
	assert.False(t, cfg.SMTP.Enabled())
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "0 8 * * *", cfg.Report.Schedule)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoad_ProdPrefixes(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("DEV_JWT_SECRET", "dev-secret")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_FROM", "noreply@example.com")
	t.Setenv("REDIS_READ_TIMEOUT", "750ms")
	t.Setenv("REPORT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 750*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.False(t, cfg.Report.Enabled)
}

func TestLoad_RejectsUnknownModes(t *testing.T) {
	t.Setenv("APP_MODE", "staging")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("APP_MODE", "dev")
	t.Setenv("STORE_DRIVER", "firestore")
	_, err = Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestReportConfig_Location(t *testing.T) {
	loc := ReportConfig{Timezone: "Nowhere/Unknown"}.Location()
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 9*60*60, offset)
}

func TestGetDuration_InvalidFallsBack(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Second, getDuration("SOME_TIMEOUT", time.Second))
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{User: "app", Password: "pw", Host: "db", Port: "3306", DBName: "olympia"})
	assert.Equal(t, "app:pw@tcp(db:3306)/olympia?charset=utf8mb4&parseTime=True&loc=Asia%2FSeoul", dsn)

	dsn = buildDSN(DatabaseConfig{User: "app", Host: "db", Port: "3306", DBName: "olympia", Timezone: "UTC"})
	assert.Contains(t, dsn, "loc=UTC")
}

func TestDatabaseConfig_PoolSettings(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_MAX_OPEN_CONNS", "40")
	t.Setenv("DB_MAX_IDLE_CONNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
}
