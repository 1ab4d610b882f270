// Package cart holds the shopper's session-local cart: the items they intend
// to buy, mutated through a small set of operations and re-persisted in full
// after every change.
package cart

import (
	"log"
	"sync"
)

type Item struct {
	ID       string  `json:"_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

type EventKind string

const (
	EventAdded             EventKind = "added"
	EventQuantityIncreased EventKind = "quantity_increased"
	EventRemoved           EventKind = "removed"
	EventCleared           EventKind = "cleared"
)

type Event struct {
	Kind EventKind
	Item *Item
}

// Notifier receives an Event after each successful mutation. Kept separate
// from the state transitions so the transitions stay pure and testable.
type Notifier func(Event)

type Store struct {
	mu      sync.Mutex
	items   []Item
	persist Persistence
	notify  Notifier
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notify = n }
}

// logNotifier is the default: mutations are logged, nothing more.
func logNotifier(ev Event) {
	if ev.Item != nil {
		log.Printf("🛒 Cart %s: %s", ev.Kind, ev.Item.Name)
		return
	}
	log.Printf("🛒 Cart %s", ev.Kind)
}

// New builds a Store rehydrated from the persistence adapter. A load failure
// starts an empty cart; it is logged, never fatal.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{persist: p, notify: logNotifier}
	for _, opt := range opts {
		opt(s)
	}

	items, err := p.Load()
	if err != nil {
		log.Printf("⚠️ Cart load failed, starting empty: %v", err)
		items = nil
	}
	s.items = sanitize(items)
	return s
}

// Add appends the item with quantity 1, or bumps the quantity when the id is
// already in the cart.
func (s *Store) Add(item Item) {
	s.mu.Lock()
	items, ev := add(s.items, item)
	s.items = items
	s.save()
	s.mu.Unlock()
	s.notify(ev)
}

// UpdateQuantity applies a delta to an item's quantity, clamped to a floor of
// 1. Callers that want the item gone use Remove instead. Returns false when
// the id is not in the cart.
func (s *Store) UpdateQuantity(id string, delta int) bool {
	s.mu.Lock()
	items, ok := updateQuantity(s.items, id, delta)
	if ok {
		s.items = items
		s.save()
	}
	s.mu.Unlock()
	return ok
}

// Remove drops the item matching id. Returns false when the id is unknown.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	items, removed := remove(s.items, id)
	ok := removed != nil
	if ok {
		s.items = items
		s.save()
	}
	s.mu.Unlock()
	if ok {
		s.notify(Event{Kind: EventRemoved, Item: removed})
	}
	return ok
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.save()
	s.mu.Unlock()
	s.notify(Event{Kind: EventCleared})
}

// Snapshot returns a copy of the items in insertion order.
func (s *Store) Snapshot() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price×quantity over the cart.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for _, it := range s.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count is the sum of quantities over the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

// save persists the full snapshot, last-writer-wins. Persistence failures are
// logged only; the in-memory cart stays authoritative for the session.
func (s *Store) save() {
	if err := s.persist.Save(s.items); err != nil {
		log.Printf("⚠️ Cart save failed: %v", err)
	}
}

// --- Pure state transitions ---

func add(items []Item, item Item) ([]Item, Event) {
	for i := range items {
		if items[i].ID == item.ID {
			out := make([]Item, len(items))
			copy(out, items)
			out[i].Quantity++
			return out, Event{Kind: EventQuantityIncreased, Item: &out[i]}
		}
	}
	item.Quantity = 1
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	out = append(out, item)
	return out, Event{Kind: EventAdded, Item: &out[len(out)-1]}
}

func updateQuantity(items []Item, id string, delta int) ([]Item, bool) {
	for i := range items {
		if items[i].ID == id {
			out := make([]Item, len(items))
			copy(out, items)
			out[i].Quantity = max(1, out[i].Quantity+delta)
			return out, true
		}
	}
	return items, false
}

func remove(items []Item, id string) ([]Item, *Item) {
	for i := range items {
		if items[i].ID == id {
			removed := items[i]
			out := make([]Item, 0, len(items)-1)
			out = append(out, items[:i]...)
			out = append(out, items[i+1:]...)
			return out, &removed
		}
	}
	return items, nil
}

// sanitize repairs rehydrated items in place: any entry without a usable
// quantity is coerced to 1 rather than dropped.
func sanitize(items []Item) []Item {
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
	}
	return items
}
