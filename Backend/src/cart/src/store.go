package main

import (
	"math"
	"sync"

	cartapi "github.com/ahinestrog/storefront/api/cart"
)

const MaxQty = cartapi.MaxQty

type EventKind int

const (
	ItemAdded EventKind = iota + 1
	ItemRemoved
	QuantityUpdated
	CartCleared
)

func (k EventKind) String() string {
	switch k {
	case ItemAdded:
		return "item_added"
	case ItemRemoved:
		return "item_removed"
	case QuantityUpdated:
		return "quantity_updated"
	case CartCleared:
		return "cart_cleared"
	default:
		return "unknown"
	}
}

// Event describes one change to a Store together with the state it produced.
type Event struct {
	Kind       EventKind
	BookID     string
	Items      []CartItem
	TotalItems int32
	TotalPrice Money
}

type Observer func(Event)

type subscription struct {
	id int
	fn Observer
}

// Store is one visitor's cart. Items keep insertion order and are unique by
// book id; every quantity is at least 1.
type Store struct {
	mu     sync.Mutex
	items  []CartItem
	subs   []subscription
	nextID int
}

func NewStore() *Store { return &Store{} }

// AddToCart appends b with quantity 1, or bumps the quantity when b is
// already in the cart. The price is captured at the time of adding. A line
// already at MaxQty is left unchanged.
func (s *Store) AddToCart(b Book) {
	s.mutate(func() (Event, bool) {
		if i := s.indexLocked(b.ID); i >= 0 {
			if s.items[i].Qty >= MaxQty {
				return Event{}, false
			}
			s.items[i].Qty++
		} else {
			s.items = append(s.items, CartItem{
				BookID:    b.ID,
				Title:     b.Title,
				Author:    b.Author,
				CoverURL:  b.CoverURL,
				UnitPrice: b.Price,
				Qty:       1,
			})
		}
		return Event{Kind: ItemAdded, BookID: b.ID}, true
	})
}

func (s *Store) RemoveFromCart(id string) {
	s.mutate(func() (Event, bool) {
		return Event{Kind: ItemRemoved, BookID: id}, s.removeLocked(id)
	})
}

// UpdateQuantity sets the quantity of id, clamped to MaxQty. A quantity of
// zero or less removes the item. Unknown ids are ignored.
func (s *Store) UpdateQuantity(id string, qty int32) {
	if qty <= 0 {
		s.RemoveFromCart(id)
		return
	}
	qty = min(qty, MaxQty)
	s.mutate(func() (Event, bool) {
		i := s.indexLocked(id)
		if i < 0 || s.items[i].Qty == qty {
			return Event{}, false
		}
		s.items[i].Qty = qty
		return Event{Kind: QuantityUpdated, BookID: id}, true
	})
}

func (s *Store) Clear() {
	s.mutate(func() (Event, bool) {
		s.items = nil
		return Event{Kind: CartCleared}, true
	})
}

// TotalItems is the sum of quantities, not the number of lines.
func (s *Store) TotalItems() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

func (s *Store) TotalPrice() Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

func (s *Store) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers o to be called after every change, in registration
// order, before the mutating call returns. The returned func unsubscribes.
func (s *Store) Subscribe(o Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: o})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// mutate runs fn under the lock and, when it reports a change, notifies the
// observers with the lock released so they can read the store.
func (s *Store) mutate(fn func() (Event, bool)) {
	s.mu.Lock()
	ev, changed := fn()
	if !changed {
		s.mu.Unlock()
		return
	}
	ev.Items = s.snapshotLocked()
	ev.TotalItems = totalItems(s.items)
	ev.TotalPrice = totalPrice(s.items)
	subs := append([]subscription(nil), s.subs...)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].BookID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) bool {
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store) snapshotLocked() []CartItem {
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func totalItems(items []CartItem) int32 {
	var n int64
	for _, it := range items {
		n += int64(it.Qty)
	}
	return int32(min(n, math.MaxInt32))
}

func totalPrice(items []CartItem) Money {
	var total Money
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
