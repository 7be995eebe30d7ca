package inventory

import (
	"context"

	"github.com/georgemunganga/printa-retail/internal/jsonfile"
)

// DefaultFile is where the CLI keeps the inventory unless configured otherwise.
const DefaultFile = "inventory.json"

type fileRepo struct{ path string }

// NewFileRepository stores the inventory as a JSON array of item records at path.
func NewFileRepository(path string) Repository { return &fileRepo{path: path} }

func (r *fileRepo) Save(_ context.Context, items []*Item) error {
	records := make([]Item, 0, len(items))
	for _, item := range items {
		records = append(records, *item)
	}
	return jsonfile.Write(r.path, records)
}

func (r *fileRepo) Load(_ context.Context) ([]*Item, error) {
	var records []Item
	if err := jsonfile.Read(r.path, &records); err != nil {
		return nil, err
	}
	items := make([]*Item, 0, len(records))
	for i := range records {
		items = append(items, &records[i])
	}
	return items, nil
}
