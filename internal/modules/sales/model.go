package sales

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// LineItem is a sold quantity of a named item, detached from the live inventory.
type LineItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Sale is the immutable record of a completed checkout.
type Sale struct {
	date         time.Time
	customerName string
	items        []LineItem
	totalCost    float64
}

// NewSale records a sale stamped with the current time. items is copied.
func NewSale(items []LineItem, totalCost float64, customerName string) Sale {
	return newSaleAt(time.Now(), items, totalCost, customerName)
}

func newSaleAt(date time.Time, items []LineItem, totalCost float64, customerName string) Sale {
	return Sale{
		date:         date,
		customerName: customerName,
		items:        append([]LineItem(nil), items...),
		totalCost:    totalCost,
	}
}

func (s Sale) Date() time.Time      { return s.date }
func (s Sale) CustomerName() string { return s.customerName }
func (s Sale) TotalCost() float64   { return s.totalCost }

// Items returns a copy of the line entries.
func (s Sale) Items() []LineItem { return append([]LineItem(nil), s.items...) }

func (s Sale) String() string {
	parts := make([]string, 0, len(s.items))
	for _, li := range s.items {
		parts = append(parts, fmt.Sprintf("%s x %d", li.Name, li.Quantity))
	}
	return fmt.Sprintf("Date: %s | Customer: %s | Items: %s | Total: $%.2f",
		formatDate(s.date), s.customerName, strings.Join(parts, ", "), s.totalCost)
}

// formatDate prints microseconds as six digits, omitting them when zero.
func formatDate(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02 15:04:05.000000")
}

// record is the persisted shape of a Sale.
type record struct {
	Date         string     `json:"date"`
	CustomerName string     `json:"customer_name"`
	Items        []LineItem `json:"items"`
	TotalCost    float64    `json:"total_cost"`
}

func (s Sale) MarshalJSON() ([]byte, error) {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(record{
		Date:         s.date.Format(time.RFC3339Nano),
		CustomerName: s.customerName,
		Items:        items,
		TotalCost:    s.totalCost,
	})
}

// UnmarshalJSON restores a sale with its original timestamp.
func (s *Sale) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	date, err := ParseTimestamp(r.Date)
	if err != nil {
		return err
	}
	*s = newSaleAt(date, r.Items, r.TotalCost, r.CustomerName)
	return nil
}

// ParseTimestamp accepts RFC 3339 and the zone-less ISO 8601 form
// (2006-01-02T15:04:05[.ffffff]), the latter read as local time.
func ParseTimestamp(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse sale date %q", v)
	}
	return t, nil
}
