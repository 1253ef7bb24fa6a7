package cart

import (
	"sync"

	"warungchat/internal/menu"
)

// Listener is notified with fresh totals after every mutation.
type Listener func(Totals)

// Store is the ordered, single-writer cart.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	listeners []Listener
}

func NewStore() *Store {
	return &Store{}
}

// Subscribe registers a listener for cart changes (e.g. the cart badge).
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

// Add increments the line with the same key or appends a new one.
func (s *Store) Add(rec menu.Record) {
	rec.NumericPrice()

	s.mu.Lock()
	key := rec.Key()
	if i := s.indexOf(key); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, LineItem{Menu: rec.Clone(), Quantity: 1})
	}
	s.mu.Unlock()

	s.notify()
}

// UpdateQuantity adds delta to a line; a result <= 0 removes it.
// Unknown keys are ignored.
func (s *Store) UpdateQuantity(key string, delta int) {
	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	q := s.items[i].Quantity + delta
	if q <= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = q
	}
	s.mu.Unlock()

	s.notify()
}

// Remove deletes the line with key, if any.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	i := s.indexOf(key)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	s.mu.Unlock()

	s.notify()
}

// Clear empties the cart. Asking the user for confirmation is the caller's job.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalsOf(s.items)
}

// Items returns a deep copy in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot(s.items)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Get returns a copy of the line with key.
func (s *Store) Get(key string) (LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(key)
	if i < 0 {
		return LineItem{}, false
	}
	l := s.items[i]
	l.Menu = l.Menu.Clone()
	return l, true
}

// Snapshot deep-copies a list of lines so later cart edits cannot leak in.
func Snapshot(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, l := range items {
		out[i] = LineItem{Menu: l.Menu.Clone(), Quantity: l.Quantity}
	}
	return out
}

// TotalsOf sums an arbitrary list of lines.
func TotalsOf(items []LineItem) Totals {
	return totalsOf(items)
}

func totalsOf(items []LineItem) Totals {
	var t Totals
	for _, l := range items {
		t.Items += l.Quantity
		t.Amount += l.Total()
	}
	return t
}

// caller holds mu
func (s *Store) indexOf(key string) int {
	for i := range s.items {
		if s.items[i].Key() == key {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	s.mu.Lock()
	t := totalsOf(s.items)
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l(t)
	}
}
