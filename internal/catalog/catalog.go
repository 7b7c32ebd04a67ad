// Package catalog holds the static list of bookable rooms and halls.
// The catalog is read-only at runtime; it is parsed once at startup.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkordes/grand-plaza/internal/domain"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog is an immutable, ordered set of bookable items.
type Catalog struct {
	items []domain.BookableItem
	byID  map[string]domain.BookableItem
}

// file mirrors the layout of catalog.json: rooms and halls in separate lists,
// with the kind implied by the list an item appears in.
type file struct {
	Rooms []domain.BookableItem `json:"rooms"`
	Halls []domain.BookableItem `json:"halls"`
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	c, err := Parse(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic("catalog: embedded catalog.json is invalid: " + err.Error())
	}
	return c
}

// Parse reads a catalog document. Rooms are listed before halls, each in
// document order. Every item needs a unique id, a positive price and a
// positive capacity.
func Parse(r io.Reader) (*Catalog, error) {
	var f file
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog.Parse: %w", err)
	}

	c := &Catalog{byID: make(map[string]domain.BookableItem, len(f.Rooms)+len(f.Halls))}
	add := func(kind domain.Kind, items []domain.BookableItem) error {
		for _, it := range items {
			it.Kind = kind
			if it.ID == "" {
				return fmt.Errorf("catalog.Parse: %s %q has no id", kind, it.Name)
			}
			if _, dup := c.byID[it.ID]; dup {
				return fmt.Errorf("catalog.Parse: duplicate id %q", it.ID)
			}
			if it.Price <= 0 || it.Capacity <= 0 {
				return fmt.Errorf("catalog.Parse: %s %q needs a positive price and capacity", kind, it.ID)
			}
			c.items = append(c.items, it)
			c.byID[it.ID] = it
		}
		return nil
	}
	if err := add(domain.KindRoom, f.Rooms); err != nil {
		return nil, err
	}
	if err := add(domain.KindHall, f.Halls); err != nil {
		return nil, err
	}
	return c, nil
}

// All returns every item, rooms first.
func (c *Catalog) All() []domain.BookableItem {
	out := make([]domain.BookableItem, len(c.items))
	copy(out, c.items)
	return out
}

// ByKind returns the items of one kind in catalog order.
func (c *Catalog) ByKind(kind domain.Kind) []domain.BookableItem {
	out := []domain.BookableItem{}
	for _, it := range c.items {
		if it.Kind == kind {
			out = append(out, it)
		}
	}
	return out
}

// Get returns the item with the given id, or domain.ErrNotFound.
func (c *Catalog) Get(id string) (domain.BookableItem, error) {
	it, ok := c.byID[id]
	if !ok {
		return domain.BookableItem{}, fmt.Errorf("catalog.Get %q: %w", id, domain.ErrNotFound)
	}
	return it, nil
}
