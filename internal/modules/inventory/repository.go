package inventory

import "context"

// Repository persists a full inventory snapshot.
type Repository interface {
	// Save replaces the stored snapshot with items, in the given order.
	Save(ctx context.Context, items []*Item) error

	// Load returns the stored snapshot. A missing snapshot yields an error
	// satisfying errors.Is(err, fs.ErrNotExist).
	Load(ctx context.Context) ([]*Item, error)
}
