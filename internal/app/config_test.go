package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, DriverMongo, cfg.StoreDriver)
	require.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	require.EqualValues(t, 10, cfg.PGMaxConns)
	require.False(t, cfg.RBACIncludeDeletedGrants)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " Postgres ")
	t.Setenv("RBAC_INCLUDE_DELETED_GRANTS", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.StoreDriver)
	require.True(t, cfg.RBACIncludeDeletedGrants)
	require.Zero(t, cfg.RateLimitPerMinute)
	require.True(t, cfg.IsProduction())
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "unsupported STORE_DRIVER")
}

func TestValidateBcryptCost(t *testing.T) {
	cfg := Config{StoreDriver: DriverMemory, BcryptCost: 2}
	require.Error(t, cfg.Validate())
	cfg.BcryptCost = 4
	require.NoError(t, cfg.Validate())
}
