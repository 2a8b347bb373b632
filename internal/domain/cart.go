package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"slices"
	"time"
)

// TaxRate is the flat GST applied to the cart subtotal.
var TaxRate = decimal.RequireFromString("0.05")

type Cart struct {
	OwnerID string
	Lines   []CartLine
}

// CartLine holds the quantity of one menu item. Name and Price are captured
// when the item is first added and are not refreshed by later menu edits.
type CartLine struct {
	ItemID string
	Name   string
	Price  Money
	Qty    int

	CreatedAt time.Time
}

type Totals struct {
	Subtotal Money
	Tax      Money
	Total    Money
}

func (c Cart) index(itemID string) int {
	for i, line := range c.Lines {
		if line.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (c Cart) Line(itemID string) (CartLine, bool) {
	i := c.index(itemID)
	if i < 0 {
		return CartLine{}, false
	}
	return c.Lines[i], true
}

// AddLine increments the line for item or appends a new line with qty 1.
func (c *Cart) AddLine(item MenuItem, now time.Time) {
	if i := c.index(item.ID); i >= 0 {
		c.addQty(i, 1)
		return
	}

	c.Lines = append(c.Lines, CartLine{
		ItemID:    item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Qty:       1,
		CreatedAt: now,
	})
}

func (c *Cart) Increment(itemID string) bool {
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	c.addQty(i, 1)
	return true
}

// Decrement lowers the qty by one and drops the line once it reaches zero.
func (c *Cart) Decrement(itemID string) bool {
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	if c.Lines[i].Qty <= 1 {
		c.Lines = slices.Delete(slices.Clone(c.Lines), i, i+1)
		return true
	}
	c.addQty(i, -1)
	return true
}

func (c *Cart) RemoveLine(itemID string) bool {
	i := c.index(itemID)
	if i < 0 {
		return false
	}
	c.Lines = slices.Delete(slices.Clone(c.Lines), i, i+1)
	return true
}

// addQty works on a fresh slice so earlier copies of the cart keep their lines.
func (c *Cart) addQty(i, delta int) {
	c.Lines = slices.Clone(c.Lines)
	c.Lines[i].Qty += delta
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// UnitCount is the sum of quantities across all lines.
func (c Cart) UnitCount() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Qty
	}
	return n
}

// Totals prices the cart in cur: subtotal is exact, tax and total are
// rounded half away from zero to two places.
func (c Cart) Totals(cur currency.Unit) Totals {
	subtotal := Money{Amount: decimal.Zero, Currency: cur}
	for _, line := range c.Lines {
		subtotal = subtotal.Add(line.Price.Mul(line.Qty))
	}

	tax := Money{Amount: subtotal.Amount.Mul(TaxRate), Currency: cur}.Round2()

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round2(),
	}
}
