package domain

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/currency"
)

// MaxQuantity is the largest quantity a single cart line may carry.
const MaxQuantity = 999

var ErrQuantityOutOfRange = errors.New("quantity out of range")

// Cart is the ledger of a single visitor. Lines keep insertion order and repeated
// additions of the same configuration stay as distinct lines.
//
// Index or quantity violations are programming errors and panic; callers holding
// user input validate it first (see storefront).
type Cart struct {
	OwnerID  string
	Currency currency.Unit
	Lines    []CartLine

	UpdatedAt time.Time
}

type CartLine struct {
	Item     MenuItem
	AddOns   []MenuAddOn
	Quantity int
}

// UnitPrice is the item price plus every selected add-on.
func (l CartLine) UnitPrice() Money {
	unit := l.Item.Price
	for _, a := range l.AddOns {
		unit = unit.Add(a.Price)
	}
	return unit
}

func (l CartLine) Total() Money {
	return l.UnitPrice().Mul(l.Quantity)
}

func (l CartLine) AddOnNames() []string {
	names := make([]string, 0, len(l.AddOns))
	for _, a := range l.AddOns {
		names = append(names, a.Name)
	}
	return names
}

func (l CartLine) AddOnIDs() []string {
	ids := make([]string, 0, len(l.AddOns))
	for _, a := range l.AddOns {
		ids = append(ids, a.ID)
	}
	return ids
}

// CheckQuantities reports the first line whose quantity falls outside
// [1, MaxQuantity].
func (c Cart) CheckQuantities() error {
	for i, l := range c.Lines {
		if l.Quantity < 1 || l.Quantity > MaxQuantity {
			return fmt.Errorf("line[%d]: quantity %d: %w", i, l.Quantity, ErrQuantityOutOfRange)
		}
	}
	return nil
}

func LineTotal(line CartLine) Money {
	return line.Total()
}

func (c *Cart) Add(item MenuItem, addOns []MenuAddOn, quantity int) {
	if quantity < 1 {
		panic(fmt.Sprintf("domain: cart line quantity %d < 1", quantity))
	}

	seen := make(map[string]struct{}, len(addOns))
	for _, a := range addOns {
		if _, dup := seen[a.ID]; dup {
			panic(fmt.Sprintf("domain: add-on %q selected twice for item %q", a.ID, item.ID))
		}
		if _, ok := item.AddOn(a.ID); !ok {
			panic(fmt.Sprintf("domain: add-on %q is not offered by item %q", a.ID, item.ID))
		}
		seen[a.ID] = struct{}{}
	}

	selected := make([]MenuAddOn, len(addOns))
	copy(selected, addOns)

	c.Lines = append(c.Lines, CartLine{
		Item:     item,
		AddOns:   selected,
		Quantity: quantity,
	})
}

// SetQuantity clamps values below 1 to 1.
func (c *Cart) SetQuantity(index, quantity int) {
	c.mustIndex(index)
	if quantity < 1 {
		quantity = 1
	}
	c.Lines[index].Quantity = quantity
}

func (c *Cart) Remove(index int) {
	c.mustIndex(index)
	c.Lines = append(c.Lines[:index:index], c.Lines[index+1:]...)
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Len() int {
	return len(c.Lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) HasLine(index int) bool {
	return index >= 0 && index < len(c.Lines)
}

// Total is recomputed from the lines on every call; an empty cart yields zero.
func (c *Cart) Total() Money {
	if len(c.Lines) == 0 {
		return Zero(c.Currency)
	}
	total := c.Lines[0].Total()
	for _, l := range c.Lines[1:] {
		total = total.Add(l.Total())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

func (c *Cart) mustIndex(index int) {
	if !c.HasLine(index) {
		panic(fmt.Sprintf("domain: cart line index %d out of range [0,%d)", index, len(c.Lines)))
	}
}
