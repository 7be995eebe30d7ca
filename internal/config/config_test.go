package config

import (
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vars = []string{"INVENTORY_FILE", "SALES_FILE", "LOG_FILE", "LOG_LEVEL",
	"STORAGE_DRIVER", "DATABASE_URL", "APP_PORT", "JWT_SECRET", "TOKEN_TTL", "AUDIT_BUFFER"}

// unsetAll removes every variable Config reads; t.Setenv restores them afterwards.
func unsetAll(t *testing.T) {
	t.Helper()
	for _, k := range vars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	unsetAll(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "inventory.json", cfg.InventoryFile)
	assert.Equal(t, "sales_history.json", cfg.SalesFile)
	assert.Equal(t, "store_log.txt", cfg.LogFile)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 1000, cfg.AuditBuffer)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestOverrides(t *testing.T) {
	unsetAll(t)
	t.Setenv("INVENTORY_FILE", "/tmp/inv.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TOKEN_TTL", "90m")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/inv.json", cfg.InventoryFile)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
}

func TestStorageDriver(t *testing.T) {
	unsetAll(t)
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err := FromEnv()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/store?sslmode=disable")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)

	t.Setenv("STORAGE_DRIVER", "badger")
	_, err = FromEnv()
	assert.Error(t, err)
}
