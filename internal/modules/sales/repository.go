package sales

import "context"

// Repository persists the whole sales ledger.
type Repository interface {
	// Save replaces the stored ledger with sales, in recording order.
	Save(ctx context.Context, sales []Sale) error

	// Load returns the stored ledger. A missing ledger yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Load(ctx context.Context) ([]Sale, error)
}
