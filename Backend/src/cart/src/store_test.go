package main

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

var (
	bookA = Book{ID: "a", Title: "Book A", Author: "Author A", CoverURL: "/books/a.jpg", Price: Money{Cents: 1000}}
	bookB = Book{ID: "b", Title: "Book B", Author: "Author B", CoverURL: "/books/b.jpg", Price: Money{Cents: 500}}
)

func TestAddToCart(t *testing.T) {
	t.Run("repeated adds accumulate on one line", func(t *testing.T) {
		s := NewStore()
		for i := 0; i < 5; i++ {
			s.AddToCart(bookA)
		}
		items := s.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "a", items[0].BookID)
		assert.Equal(t, int32(5), items[0].Qty)
	})

	t.Run("copies display fields and price", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookB)
		it := s.Items()[0]
		assert.Equal(t, CartItem{
			BookID:    "b",
			Title:     "Book B",
			Author:    "Author B",
			CoverURL:  "/books/b.jpg",
			UnitPrice: Money{Cents: 500},
			Qty:       1,
		}, it)
	})

	t.Run("keeps the price captured on first add", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		repriced := bookA
		repriced.Price = Money{Cents: 9999}
		s.AddToCart(repriced)
		assert.Equal(t, Money{Cents: 2000}, s.TotalPrice())
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookB)
		s.AddToCart(bookA)
		s.AddToCart(bookB)
		items := s.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "b", items[0].BookID)
		assert.Equal(t, "a", items[1].BookID)
	})
}

func TestTotals(t *testing.T) {
	s := NewStore()
	assert.Equal(t, int32(0), s.TotalItems())
	assert.Equal(t, 0.0, s.TotalPrice().Float())

	s.AddToCart(bookA)
	s.AddToCart(bookB)
	s.AddToCart(bookB)
	assert.Equal(t, int32(3), s.TotalItems())
	assert.Equal(t, 20.00, s.TotalPrice().Float())
	assert.Equal(t, "20.00", s.TotalPrice().String())
}

func TestRemoveFromCart(t *testing.T) {
	t.Run("removes the line", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.RemoveFromCart("a")
		assert.Empty(t, s.Items())
		assert.Equal(t, int32(0), s.TotalItems())
		assert.Equal(t, Money{}, s.TotalPrice())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.RemoveFromCart("missing")
		assert.Len(t, s.Items(), 1)
	})
}

func TestUpdateQuantity(t *testing.T) {
	t.Run("sets rather than adds", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.AddToCart(bookA)
		s.AddToCart(bookA)
		s.UpdateQuantity("a", 1)
		assert.Equal(t, int32(1), s.Items()[0].Qty)
	})

	t.Run("zero behaves like remove", func(t *testing.T) {
		updated, removed := NewStore(), NewStore()
		for _, s := range []*Store{updated, removed} {
			s.AddToCart(bookA)
			s.AddToCart(bookB)
		}
		updated.UpdateQuantity("a", 0)
		removed.RemoveFromCart("a")
		assert.Equal(t, removed.Items(), updated.Items())
	})

	t.Run("negative removes", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.UpdateQuantity("a", -3)
		assert.Empty(t, s.Items())
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.UpdateQuantity("missing", 4)
		require.Len(t, s.Items(), 1)
		assert.Equal(t, int32(1), s.TotalItems())
	})
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddToCart(bookA)
	s.AddToCart(bookB)
	s.Clear()
	assert.Empty(t, s.Items())
	assert.Equal(t, int32(0), s.TotalItems())
	assert.Equal(t, 0.0, s.TotalPrice().Float())
}

func TestTotalPriceFollowsMutations(t *testing.T) {
	s := NewStore()
	check := func() {
		t.Helper()
		var want Money
		for _, it := range s.Items() {
			want = want.Add(it.UnitPrice.Mul(it.Qty))
		}
		assert.Equal(t, want, s.TotalPrice())
	}
	s.AddToCart(bookA)
	check()
	s.AddToCart(bookB)
	check()
	s.UpdateQuantity("b", 7)
	check()
	s.RemoveFromCart("a")
	check()
	s.UpdateQuantity("b", 0)
	check()
}

func TestItemsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddToCart(bookA)
	items := s.Items()
	items[0].Qty = 42
	assert.Equal(t, int32(1), s.TotalItems())
}

func TestSubscribe(t *testing.T) {
	t.Run("notifies in registration order with the new state", func(t *testing.T) {
		s := NewStore()
		var calls []string
		s.Subscribe(func(ev Event) { calls = append(calls, "first:"+ev.Kind.String()) })
		s.Subscribe(func(ev Event) {
			calls = append(calls, "second:"+ev.Kind.String())
			assert.Equal(t, int32(1), ev.TotalItems)
			assert.Equal(t, Money{Cents: 1000}, ev.TotalPrice)
			require.Len(t, ev.Items, 1)
			assert.Equal(t, "a", ev.BookID)
		})

		s.AddToCart(bookA)
		assert.Equal(t, []string{"first:item_added", "second:item_added"}, calls)
	})

	t.Run("observers may read the store", func(t *testing.T) {
		s := NewStore()
		var seen int32
		s.Subscribe(func(Event) { seen = s.TotalItems() })
		s.AddToCart(bookA)
		s.AddToCart(bookA)
		assert.Equal(t, int32(2), seen)
	})

	t.Run("no-op mutations are silent", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		var n int
		s.Subscribe(func(Event) { n++ })
		s.RemoveFromCart("missing")
		s.UpdateQuantity("missing", 3)
		s.UpdateQuantity("a", 1)
		assert.Zero(t, n)
	})

	t.Run("every kind is reported", func(t *testing.T) {
		s := NewStore()
		var kinds []EventKind
		s.Subscribe(func(ev Event) { kinds = append(kinds, ev.Kind) })
		s.AddToCart(bookA)
		s.AddToCart(bookB)
		s.UpdateQuantity("a", 3)
		s.UpdateQuantity("b", 0)
		s.Clear()
		assert.Equal(t, []EventKind{ItemAdded, ItemAdded, QuantityUpdated, ItemRemoved, CartCleared}, kinds)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		s := NewStore()
		var a, b int
		unsubA := s.Subscribe(func(Event) { a++ })
		s.Subscribe(func(Event) { b++ })
		s.AddToCart(bookA)
		unsubA()
		unsubA()
		s.AddToCart(bookA)
		assert.Equal(t, 1, a)
		assert.Equal(t, 2, b)
	})
}

func TestStoreConcurrentAdds(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewStore()
	var notified sync.WaitGroup
	var mu sync.Mutex
	events := 0
	s.Subscribe(func(Event) {
		mu.Lock()
		events++
		mu.Unlock()
	})

	const workers, perWorker = 8, 50
	notified.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer notified.Done()
			for i := 0; i < perWorker; i++ {
				s.AddToCart(bookA)
			}
		}()
	}
	notified.Wait()

	require.Len(t, s.Items(), 1)
	assert.Equal(t, int32(workers*perWorker), s.TotalItems())
	assert.Equal(t, workers*perWorker, events)
}

func TestQuantityCap(t *testing.T) {
	t.Run("update clamps to the cap", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.UpdateQuantity("a", math.MaxInt32)
		assert.Equal(t, MaxQty, s.Items()[0].Qty)
	})

	t.Run("add stops at the cap without notifying", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.UpdateQuantity("a", MaxQty)
		var events int
		s.Subscribe(func(Event) { events++ })

		s.AddToCart(bookA)
		assert.Equal(t, MaxQty, s.Items()[0].Qty)
		assert.Zero(t, events)
	})

	t.Run("totals stay positive at the cap", func(t *testing.T) {
		s := NewStore()
		s.AddToCart(bookA)
		s.AddToCart(bookB)
		s.UpdateQuantity("a", math.MaxInt32)
		s.UpdateQuantity("b", math.MaxInt32)
		s.AddToCart(bookA)
		assert.Equal(t, 2*MaxQty, s.TotalItems())
		assert.Equal(t, Money{Cents: int64(MaxQty) * 1500}, s.TotalPrice())
	})
}
