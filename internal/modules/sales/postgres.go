package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const salesSchema = `
CREATE TABLE IF NOT EXISTS sales (
	id            UUID PRIMARY KEY,
	position      INTEGER NOT NULL,
	sold_at       TIMESTAMPTZ NOT NULL,
	customer_name TEXT NOT NULL,
	total_cost    DOUBLE PRECISION NOT NULL,
	items         JSONB NOT NULL
)`

// EnsureSchema creates the sales table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, salesSchema)
	return errors.Wrap(err, "create sales")
}

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository keeps the ledger in the sales table. Timestamps are
// stored with microsecond precision.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Save(ctx context.Context, sales []Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
		return errors.Wrap(err, "clear sales")
	}
	for pos, s := range sales {
		items, err := json.Marshal(s.Items())
		if err != nil {
			return errors.Wrap(err, "encode sale items")
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales (id, position, sold_at, customer_name, total_cost, items)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			uuid.New(), pos, s.date, s.customerName, s.totalCost, items)
		if err != nil {
			return errors.Wrapf(err, "insert sale %d", pos)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

func (r *postgresRepo) Load(ctx context.Context) ([]Sale, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sold_at, customer_name, total_cost, items
		FROM sales ORDER BY position`)
	if err != nil {
		return nil, errors.Wrap(err, "query sales")
	}
	defer rows.Close()
	var out []Sale
	for rows.Next() {
		var (
			soldAt   time.Time
			customer string
			total    float64
			raw      []byte
			items    []LineItem
		)
		if err := rows.Scan(&soldAt, &customer, &total, &raw); err != nil {
			return nil, errors.Wrap(err, "scan sales")
		}
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, errors.Wrap(err, "decode sale items")
		}
		out = append(out, newSaleAt(soldAt, items, total, customer))
	}
	return out, errors.Wrap(rows.Err(), "iterate sales")
}
