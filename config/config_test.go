package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORAGE", "STATE_KEY", "PROJECTION_SCHOOL_DAYS", "PROJECTION_MONTH_DAYS", "PROJECTION_TARGETS", "BACKUP_CRON", "TELEGRAM_TOKEN"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, "student-app-storage", cfg.StateKey)
	assert.Equal(t, 6, cfg.ProjectionSchoolDays)
	assert.Equal(t, 20, cfg.ProjectionMonthDays)
	assert.Equal(t, []float64{75, 76}, cfg.ProjectionTargets)
	assert.Empty(t, cfg.BackupCron)
	assert.Empty(t, cfg.TelegramToken)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("PROJECTION_SCHOOL_DAYS", "5")
	t.Setenv("PROJECTION_MONTH_DAYS", "nope")
	t.Setenv("PROJECTION_TARGETS", "80, 90.5")

	cfg := Load()
	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, 5, cfg.ProjectionSchoolDays)
	assert.Equal(t, 20, cfg.ProjectionMonthDays)
	assert.Equal(t, []float64{80, 90.5}, cfg.ProjectionTargets)
}

func TestParseTargets(t *testing.T) {
	got, err := ParseTargets("75,,76")
	require.NoError(t, err)
	assert.Equal(t, []float64{75, 76}, got)

	for _, bad := range []string{"", "abc", "101", "-1"} {
		_, err := ParseTargets(bad)
		assert.Error(t, err, bad)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable TimeZone=UTC", cfg.DSN())
}
