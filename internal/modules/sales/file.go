package sales

import (
	"context"

	"github.com/georgemunganga/printa-retail/internal/jsonfile"
)

// DefaultFile is where the CLI keeps the ledger unless configured otherwise.
const DefaultFile = "sales_history.json"

type fileRepo struct{ path string }

// NewFileRepository stores the ledger as a JSON array of sale records at path.
func NewFileRepository(path string) Repository { return &fileRepo{path: path} }

func (r *fileRepo) Save(_ context.Context, sales []Sale) error {
	if sales == nil {
		sales = []Sale{}
	}
	return jsonfile.Write(r.path, sales)
}

func (r *fileRepo) Load(_ context.Context) ([]Sale, error) {
	var sales []Sale
	if err := jsonfile.Read(r.path, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}
