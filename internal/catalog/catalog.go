package catalog

import (
	"errors"
	"sync"

	"warungchat/internal/cart"
	"warungchat/internal/menu"
)

var ErrNoSuchCard = errors.New("menu card not found")

// Catalog holds the menus currently on display.
type Catalog struct {
	mu      sync.Mutex
	records []menu.Record
}

func New() *Catalog {
	return &Catalog{}
}

// Show replaces the displayed menus. An empty list clears the display.
func (c *Catalog) Show(records []menu.Record) []Card {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = make([]menu.Record, len(records))
	for i, r := range records {
		c.records[i] = r.Clone()
	}
	return Cards(c.records)
}

func (c *Catalog) Cards() []Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Cards(c.records)
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Record returns a copy of the record behind card i.
func (c *Catalog) Record(i int) (menu.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return menu.Record{}, ErrNoSuchCard
	}
	return c.records[i].Clone(), nil
}

// ViewDetail is the "Detail" action.
func (c *Catalog) ViewDetail(i int) (Detail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.records) {
		return Detail{}, ErrNoSuchCard
	}
	return NewDetail(&c.records[i]), nil
}

// AddToCart is the "Tambah" action.
func (c *Catalog) AddToCart(i int, store *cart.Store) (menu.Record, error) {
	c.mu.Lock()
	if i < 0 || i >= len(c.records) {
		c.mu.Unlock()
		return menu.Record{}, ErrNoSuchCard
	}
	c.records[i].NumericPrice()
	r := c.records[i].Clone()
	c.mu.Unlock()

	store.Add(r)
	return r, nil
}

// Clear empties the display (used when the chat is cleared).
func (c *Catalog) Clear() {
	c.mu.Lock()
	c.records = nil
	c.mu.Unlock()
}
