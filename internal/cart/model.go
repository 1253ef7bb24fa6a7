package cart

import "warungchat/internal/menu"

// LineItem is one menu in the cart with its quantity (always >= 1).
type LineItem struct {
	Menu     menu.Record `json:"menu"`
	Quantity int         `json:"quantity"`
}

// Key is the uniqueness key of the line (the menu key).
func (l LineItem) Key() string {
	return l.Menu.Key()
}

// UnitPrice is the cached numeric price of the menu.
func (l LineItem) UnitPrice() int64 {
	if l.Menu.Numeric != nil {
		return *l.Menu.Numeric
	}
	return menu.ParsePrice(l.Menu.Price)
}

// Total is unit price times quantity.
func (l LineItem) Total() int64 {
	return l.UnitPrice() * int64(l.Quantity)
}

// Totals is derived state: never stored, always recomputed.
type Totals struct {
	Items  int   `json:"totalItems"`
	Amount int64 `json:"totalAmount"`
}
