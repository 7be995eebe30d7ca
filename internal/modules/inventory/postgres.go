package inventory

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

const inventorySchema = `
CREATE TABLE IF NOT EXISTS inventory_items (
	item_id    BIGINT PRIMARY KEY,
	position   INTEGER NOT NULL,
	name       TEXT NOT NULL,
	price      DOUBLE PRECISION NOT NULL,
	quantity   INTEGER NOT NULL,
	discount   DOUBLE PRECISION NOT NULL DEFAULT 0
)`

// EnsureSchema creates the inventory table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, inventorySchema)
	return errors.Wrap(err, "create inventory_items")
}

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository keeps the inventory snapshot in the inventory_items table.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Save(ctx context.Context, items []*Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_items`); err != nil {
		return errors.Wrap(err, "clear inventory_items")
	}
	for pos, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO inventory_items (item_id, position, name, price, quantity, discount)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			item.ID, pos, item.Name, item.Price, item.Quantity, item.Discount)
		if err != nil {
			return errors.Wrapf(err, "insert item %d", item.ID)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func (r *postgresRepo) Load(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT item_id, name, price, quantity, discount
		FROM inventory_items ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query inventory_items")
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Quantity, &item.Discount); err != nil {
			return nil, errors.Wrap(err, "scan inventory_items")
		}
		items = append(items, item)
	}
	return items, errors.Wrap(rows.Err(), "iterate inventory_items")
}
