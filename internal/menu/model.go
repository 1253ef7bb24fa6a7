package menu

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ID is the menu identifier as sent by the NLU slot.
// The upstream database emits numbers, hand-written stories emit strings,
// so both are accepted and kept as text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Record is a recommended menu as surfaced by the dialogue state.
// Everything except the cached numeric price is read-only once fetched.
type Record struct {
	ID          ID      `json:"id,omitempty"`
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	Numeric     *int64  `json:"numericPrice,omitempty"`
	Category    string  `json:"category,omitempty"`
	Rating      float64 `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Image       string  `json:"image,omitempty"`
	Ingredients string  `json:"ingredients,omitempty"`
	Description string  `json:"description,omitempty"`
}

// NumericPrice parses Price once and caches the result on the record.
// Later edits to Price do not change the cached amount.
func (r *Record) NumericPrice() int64 {
	if r.Numeric != nil {
		return *r.Numeric
	}
	v := ParsePrice(r.Price)
	r.Numeric = &v
	return v
}

// Key is the cart identity of a record. Records without an identifier fall
// back to title+price so two different unidentified menus never share a line.
func (r *Record) Key() string {
	if r.ID != "" {
		return "id:" + string(r.ID)
	}
	return "anon:" + strings.ToLower(strings.TrimSpace(r.Title)) + "|" + strings.TrimSpace(r.Price)
}

// DisplayTitle falls back to a generic label for untitled records.
func (r *Record) DisplayTitle() string {
	if strings.TrimSpace(r.Title) == "" {
		return "Menu"
	}
	return r.Title
}

// DisplayPrice falls back to the "price not available" label.
func (r *Record) DisplayPrice() string {
	if strings.TrimSpace(r.Price) == "" {
		return "Harga belum tersedia"
	}
	return r.Price
}

// Clone returns a deep copy, including the cached price pointer.
func (r Record) Clone() Record {
	if r.Numeric != nil {
		v := *r.Numeric
		r.Numeric = &v
	}
	return r
}
