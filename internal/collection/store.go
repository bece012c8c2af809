package collection

import (
	"sync"

	"github.com/medghazdali/product-trial-master/internal/domain"
)

// Store holds the ordered line items of a single collection (cart or
// wishlist). It is dumb storage: invariants live in the Reconciler and the
// wishlist adapter, the Store only guarantees ordering, identifier lookup
// and change notification.
//
// Every successful mutation triggers exactly one notification carrying the
// full new snapshot. Observers run synchronously under the store lock and
// must not mutate the store.
type Store struct {
	mu     sync.RWMutex
	items  []domain.LineItem
	notify func([]domain.LineItem)
}

// NewStore creates an empty store. notify may be nil.
func NewStore(notify func([]domain.LineItem)) *Store {
	return &Store{notify: notify}
}

// AddQuantity adds delta to the product's quantity, appending a new line
// item at the end when the product is not yet present. Insertion order of
// existing items never changes. Re-adding an existing product refreshes its
// snapshot to ref.
func (s *Store) AddQuantity(ref domain.ProductRef, delta int) domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == ref.ID {
			s.items[i].Product = ref
			s.items[i].Quantity += delta
			item := s.items[i]
			s.publishLocked()
			return item
		}
	}

	item := domain.LineItem{Product: ref, Quantity: delta}
	s.items = append(s.items, item)
	s.publishLocked()
	return item
}

// SetQuantity overwrites the product's quantity in place, preserving its
// position. Returns false without notifying when the product is absent.
func (s *Store) SetQuantity(productID string, quantity int) (domain.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			item := s.items[i]
			s.publishLocked()
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// Remove deletes the product's line item. Absence is a silent no-op (no
// notification). The removed item and its index are returned so a failed
// remote removal can be replayed at the original position.
func (s *Store) Remove(productID string) (domain.LineItem, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].Product.ID == productID {
			item := s.items[i]
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.publishLocked()
			return item, i, true
		}
	}
	return domain.LineItem{}, 0, false
}

// InsertAt places item at index, clamped to the current bounds. Used to
// restore a removed item during rollback.
func (s *Store) InsertAt(item domain.LineItem, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 {
		index = 0
	}
	if index > len(s.items) {
		index = len(s.items)
	}
	s.items = append(s.items, domain.LineItem{})
	copy(s.items[index+1:], s.items[index:])
	s.items[index] = item
	s.publishLocked()
}

// Replace swaps the whole collection for items, e.g. on a wishlist
// bootstrap load.
func (s *Store) Replace(items []domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]domain.LineItem, len(items))
	copy(s.items, items)
	s.publishLocked()
}

// Get returns the line item for productID.
func (s *Store) Get(productID string) (domain.LineItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.Product.ID == productID {
			return item, true
		}
	}
	return domain.LineItem{}, false
}

// Len returns the number of line items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns an ordered copy of the current line items. Mutating the
// returned slice does not affect the store.
func (s *Store) Snapshot() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) publishLocked() {
	if s.notify != nil {
		s.notify(s.snapshotLocked())
	}
}
