// Package console runs the numbered store menu over a line-oriented
// reader and writer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/georgemunganga/printa-retail/internal/modules/store"
	"github.com/georgemunganga/printa-retail/internal/modules/user"
	"github.com/pkg/errors"
)

const menu = `
--- Store Management System ---
1. Add Item to Inventory
2. Update Inventory Quantity
3. View Inventory
4. Search Inventory
5. Add Discount to Item
6. Apply Discount to All Items
7. View Sales History
8. Save Data
9. Load Data
10. Exit
`

// errEOF ends the session when input runs out mid-prompt.
var errEOF = errors.New("end of input")

type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", errors.Wrap(err, "read input")
		}
		return "", errEOF
	}
	return c.in.Text(), nil
}

func (c *Console) askInt(prompt, field string) (int64, error) {
	s, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, errors.Errorf("%s must be a whole number, got %q", field, s)
	}
	return v, nil
}

func (c *Console) askFloat(prompt, field string) (float64, error) {
	s, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.Errorf("%s must be a number, got %q", field, s)
	}
	return v, nil
}

// PromptUser asks for whichever of username and role is empty.
func (c *Console) PromptUser(username, role string) (user.User, error) {
	var err error
	if username == "" {
		if username, err = c.ask("Enter your username: "); err != nil {
			return user.User{}, err
		}
	}
	if role == "" {
		if role, err = c.ask("Enter your role (admin/customer): "); err != nil {
			return user.User{}, err
		}
	}
	return user.New(username, strings.TrimSpace(role))
}

// Run loads persisted state and serves the menu until Exit or end of input.
func (c *Console) Run(ctx context.Context, s *store.Store) error {
	if err := c.load(ctx, s); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	for {
		fmt.Fprint(c.out, menu)
		choice, err := c.ask("Enter your choice (1-10): ")
		if err == errEOF {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(choice) == "10" {
			fmt.Fprintln(c.out, "Exiting program.")
			return nil
		}
		err = c.dispatch(ctx, s, strings.TrimSpace(choice))
		if err == errEOF {
			fmt.Fprintln(c.out)
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
		}
	}
}

func (c *Console) dispatch(ctx context.Context, s *store.Store, choice string) error {
	switch choice {
	case "1":
		id, err := c.askInt("Enter item ID: ", "item ID")
		if err != nil {
			return err
		}
		name, err := c.ask("Enter item name: ")
		if err != nil {
			return err
		}
		price, err := c.askFloat("Enter item price: ", "price")
		if err != nil {
			return err
		}
		qty, err := c.askInt("Enter item quantity: ", "quantity")
		if err != nil {
			return err
		}
		if err := s.AddItemToInventory(id, name, price, int(qty)); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Item added to inventory.")
	case "2":
		id, err := c.askInt("Enter item ID: ", "item ID")
		if err != nil {
			return err
		}
		qty, err := c.askInt("Enter new quantity: ", "quantity")
		if err != nil {
			return err
		}
		if err := s.UpdateInventoryQuantity(id, int(qty)); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Inventory quantity updated.")
	case "3":
		fmt.Fprint(c.out, "\n"+s.InventoryReport())
	case "4":
		keyword, err := c.ask("Enter name keyword to search: ")
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, "\n"+s.SearchReport(keyword))
	case "5":
		id, err := c.askInt("Enter item ID to discount: ", "item ID")
		if err != nil {
			return err
		}
		pct, err := c.askFloat("Enter discount percent (0-100): ", "discount percent")
		if err != nil {
			return err
		}
		if err := s.ApplyDiscount(id, pct); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Discount applied to item.")
	case "6":
		pct, err := c.askFloat("Enter discount percent for all items (0-100): ", "discount percent")
		if err != nil {
			return err
		}
		if err := s.ApplyDiscountToAll(pct); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Discount applied to all items.")
	case "7":
		fmt.Fprint(c.out, "\n"+s.SalesReport())
	case "8":
		if err := s.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Data saved.")
	case "9":
		if err := c.load(ctx, s); err != nil {
			return err
		}
		fmt.Fprintln(c.out, "Data loaded.")
	default:
		fmt.Fprintln(c.out, "Invalid choice. Please enter a number between 1 and 10.")
	}
	return nil
}

func (c *Console) load(ctx context.Context, s *store.Store) error {
	res, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if !res.Inventory {
		fmt.Fprintln(c.out, "No inventory file found.")
	}
	if !res.Sales {
		fmt.Fprintln(c.out, "No sales history file found.")
	}
	return nil
}
