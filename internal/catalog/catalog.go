// Package catalog holds the restaurant's static menu.
package catalog

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/broka-order/internal/domain"
)

var (
	ErrItemNotFound  = errors.New("menu item not found")
	ErrAddOnNotFound = errors.New("add-on not found")
	ErrAddOnRepeated = errors.New("add-on selected more than once")
)

type Section struct {
	ID       string
	Title    string
	Subtitle string
	Items    []domain.MenuItem
}

// Catalog is loaded once and never mutated. Lookups return copies of catalog values.
type Catalog struct {
	sections []Section
	byID     map[string]domain.MenuItem
}

// New indexes the sections. An item may appear in more than one section
// (featured items are also burgers) as long as every occurrence carries the same name.
func New(sections []Section) (*Catalog, error) {
	byID := make(map[string]domain.MenuItem)
	indexed := make([]Section, 0, len(sections))

	for _, s := range sections {
		items := make([]domain.MenuItem, 0, len(s.Items))
		for _, item := range s.Items {
			if item.ID == "" {
				return nil, fmt.Errorf("section[%s]: item with empty ID", s.ID)
			}
			if item.Price.IsNegative() {
				return nil, fmt.Errorf("item[%s]: negative price", item.ID)
			}
			if err := checkAddOns(item); err != nil {
				return nil, fmt.Errorf("item[%s]: %w", item.ID, err)
			}
			if prev, ok := byID[item.ID]; ok && prev.Name != item.Name {
				return nil, fmt.Errorf("item[%s]: conflicting definitions %q and %q", item.ID, prev.Name, item.Name)
			}
			if item.AddOns == nil {
				item.AddOns = []domain.MenuAddOn{}
			}
			byID[item.ID] = item
			items = append(items, item)
		}
		s.Items = items
		indexed = append(indexed, s)
	}

	return &Catalog{sections: indexed, byID: byID}, nil
}

func checkAddOns(item domain.MenuItem) error {
	seen := make(map[string]struct{}, len(item.AddOns))
	for _, a := range item.AddOns {
		if a.ID == "" {
			return errors.New("add-on with empty ID")
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("add-on[%s] defined twice", a.ID)
		}
		if a.Price.IsNegative() {
			return fmt.Errorf("add-on[%s]: negative price", a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}

func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	copy(out, c.sections)
	return out
}

func (c *Catalog) Item(id string) (domain.MenuItem, error) {
	item, ok := c.byID[id]
	if !ok {
		return domain.MenuItem{}, fmt.Errorf("item[%s]: %w", id, ErrItemNotFound)
	}
	return item, nil
}

// Resolve maps client selections onto catalog values, keeping selection order.
func (c *Catalog) Resolve(itemID string, addOnIDs []string) (domain.MenuItem, []domain.MenuAddOn, error) {
	item, err := c.Item(itemID)
	if err != nil {
		return domain.MenuItem{}, nil, err
	}

	addOns := make([]domain.MenuAddOn, 0, len(addOnIDs))
	seen := make(map[string]struct{}, len(addOnIDs))
	for _, id := range addOnIDs {
		if _, dup := seen[id]; dup {
			return domain.MenuItem{}, nil, fmt.Errorf("add-on[%s]: %w", id, ErrAddOnRepeated)
		}
		addOn, ok := item.AddOn(id)
		if !ok {
			return domain.MenuItem{}, nil, fmt.Errorf("item[%s] add-on[%s]: %w", itemID, id, ErrAddOnNotFound)
		}
		seen[id] = struct{}{}
		addOns = append(addOns, addOn)
	}

	return item, addOns, nil
}
