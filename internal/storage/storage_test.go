package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/georgemunganga/printa-retail/internal/config"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfg := &config.Config{
		StorageDriver: config.DriverFile,
		InventoryFile: filepath.Join(dir, "inv.json"),
		SalesFile:     filepath.Join(dir, "sales.json"),
	}
	repos, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Inventory.Save(ctx, []*inventory.Item{inventory.NewItem(1, "Widget", 10, 5)}))
	_, err = os.Stat(cfg.InventoryFile)
	assert.NoError(t, err)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StorageDriver: "badger"})
	assert.Error(t, err)
}

func TestOpenPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	repos, err := Open(context.Background(), &config.Config{StorageDriver: config.DriverPostgres, DatabaseURL: url})
	require.NoError(t, err)
	assert.NoError(t, repos.Close())
}
