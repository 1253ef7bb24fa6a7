// Package catalog turns recommended menus into selectable cards and wires
// the card actions ("Detail", "Tambah") to the cart.
package catalog

import (
	"fmt"
	"math"
	"strings"
	"time"

	"warungchat/internal/menu"
)

// Card is the view model of one menu card.
type Card struct {
	Index          int
	Key            string
	Title          string
	Price          string
	NumericPrice   int64
	Category       string
	Rating         string
	Image          string
	HasImage       bool
	AnimationDelay time.Duration
}

// Detail is the view model of the menu detail overlay.
type Detail struct {
	Card
	Stars       string
	Ingredients string
	Description string
}

const cardStagger = 100 * time.Millisecond

// Cards builds card view models. The numeric price is cached onto each
// record as a side effect, so later cart totals reuse the same value.
func Cards(records []menu.Record) []Card {
	cards := make([]Card, len(records))
	for i := range records {
		cards[i] = newCard(&records[i], i)
	}
	return cards
}

func newCard(r *menu.Record, i int) Card {
	return Card{
		Index:          i,
		Key:            r.Key(),
		Title:          r.DisplayTitle(),
		Price:          r.DisplayPrice(),
		NumericPrice:   r.NumericPrice(),
		Category:       strings.TrimSpace(r.Category),
		Rating:         RatingLabel(r.Rating),
		Image:          r.Image,
		HasImage:       strings.TrimSpace(r.Image) != "",
		AnimationDelay: time.Duration(i) * cardStagger,
	}
}

// NewDetail builds the detail view of a record.
func NewDetail(r *menu.Record) Detail {
	return Detail{
		Card:        newCard(r, 0),
		Stars:       Stars(r.Rating),
		Ingredients: strings.TrimSpace(r.Ingredients),
		Description: strings.TrimSpace(r.Description),
	}
}

// RatingLabel renders "⭐ 4.5/5"; a zero rating shows nothing.
func RatingLabel(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return fmt.Sprintf("⭐ %s/5", trimFloat(rating))
}

// Stars repeats the star glyph floor(rating) times.
func Stars(rating float64) string {
	if rating <= 0 {
		return ""
	}
	return strings.Repeat("⭐", int(math.Floor(math.Min(rating, 5))))
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.1f", f)
	return strings.TrimSuffix(s, ".0")
}
