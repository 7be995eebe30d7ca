// Package storage opens the inventory and sales repositories for the
// configured driver.
package storage

import (
	"context"
	"database/sql"

	"github.com/georgemunganga/printa-retail/internal/config"
	"github.com/georgemunganga/printa-retail/internal/modules/inventory"
	"github.com/georgemunganga/printa-retail/internal/modules/sales"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Repositories bundles the two snapshot stores. Close releases the
// database handle, if any.
type Repositories struct {
	Inventory inventory.Repository
	Sales     sales.Repository
	db        *sql.DB
}

func (r *Repositories) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Open returns file or postgres repositories according to cfg.StorageDriver.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.StorageDriver {
	case config.DriverFile, "":
		return &Repositories{
			Inventory: inventory.NewFileRepository(cfg.InventoryFile),
			Sales:     sales.NewFileRepository(cfg.SalesFile),
		}, nil
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "open database")
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "ping database")
		}
		if err := inventory.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		if err := sales.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("Successfully connected to the database")
		return &Repositories{
			Inventory: inventory.NewPostgresRepository(db),
			Sales:     sales.NewPostgresRepository(db),
			db:        db,
		}, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
