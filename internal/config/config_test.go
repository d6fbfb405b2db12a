package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "vfx-dashboard", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 720*time.Hour, cfg.ActiveWindow)
	assert.False(t, cfg.SkipAuth)
	assert.False(t, cfg.IsProduction())
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("SKIP_AUTH", "true")
	t.Setenv("SNAPSHOT_SCHEDULE", "")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.SkipAuth)
	assert.Empty(t, cfg.SnapshotSchedule)
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	_, err := Parse()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestParseRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")

	_, err := Parse()
	assert.Error(t, err)
}
