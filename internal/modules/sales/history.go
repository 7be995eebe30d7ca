package sales

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/georgemunganga/printa-retail/internal/audit"
	"github.com/pkg/errors"
)

// History is the append-only ledger of recorded sales, in recording order.
type History struct {
	sales []Sale
	sink  audit.Sink
}

// NewHistory creates an empty ledger reporting to sink.
func NewHistory(sink audit.Sink) *History {
	if sink == nil {
		sink = audit.Nop{}
	}
	return &History{sink: sink}
}

// RecordSale appends sale to the ledger.
func (h *History) RecordSale(sale Sale) {
	h.sales = append(h.sales, sale)
	audit.Infof(h.sink, "Recorded sale: %s", sale)
}

// Sales returns the ledger in recording order.
func (h *History) Sales() []Sale {
	return append([]Sale(nil), h.sales...)
}

func (h *History) Len() int { return len(h.sales) }

// TotalRevenue sums the cost of every recorded sale.
func (h *History) TotalRevenue() float64 {
	var total float64
	for _, s := range h.sales {
		total += s.totalCost
	}
	return total
}

// SalesByDate returns the sales whose calendar date matches day's,
// ignoring time of day.
func (h *History) SalesByDate(day time.Time) []Sale {
	y, m, d := day.Date()
	out := []Sale{}
	for _, s := range h.sales {
		sy, sm, sd := s.date.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, s)
		}
	}
	return out
}

// Report renders every sale followed by the total revenue.
func (h *History) Report() string {
	var b strings.Builder
	b.WriteString("--- Sales Report ---\n")
	for _, s := range h.sales {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total Revenue: $%.2f\n", h.TotalRevenue())
	return b.String()
}

// Save writes the ledger to repo.
func (h *History) Save(ctx context.Context, repo Repository) error {
	if err := repo.Save(ctx, h.Sales()); err != nil {
		return errors.Wrap(err, "save sales history")
	}
	audit.Infof(h.sink, "Saved sales history to file.")
	return nil
}

// Load replaces the ledger with the one in repo. A missing snapshot is
// reported as (false, nil) and leaves the ledger as it was.
func (h *History) Load(ctx context.Context, repo Repository) (bool, error) {
	loaded, err := repo.Load(ctx)
	if errors.Is(err, fs.ErrNotExist) {
		audit.Warnf(h.sink, "Attempted to load non-existing sales history file.")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "load sales history")
	}
	h.sales = loaded
	audit.Infof(h.sink, "Loaded sales history from file.")
	return true, nil
}
