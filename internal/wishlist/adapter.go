// Package wishlist keeps the local wishlist collection synchronized with
// the wishlist service, which is the source of truth. Mutations apply
// optimistically so the UI reflects them with zero latency; a failed remote
// call rolls the local change back and reports the failure on the result
// channel.
package wishlist

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/medghazdali/product-trial-master/internal/collection"
	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/medghazdali/product-trial-master/internal/projection"
	"golang.org/x/sync/singleflight"
)

// Remote is the wishlist service seen by the adapter.
type Remote interface {
	List(ctx context.Context) ([]domain.ProductRef, error)
	Add(ctx context.Context, productID string) error
	Remove(ctx context.Context, productID string) error
}

type opState int

const (
	stateRequested opState = iota
	stateConfirmed
	stateRolledBack
)

type operation struct {
	id    string
	state opState
}

// Adapter owns the wishlist collection and its projection. All mutations
// enter through Add and Remove; the guard check and the optimistic apply
// are atomic, so a mutation issued right after another sees the first one's
// optimistic state even while its confirmation is still in flight.
type Adapter struct {
	store      *collection.Store
	projection *projection.Projection
	remote     Remote

	sfg singleflight.Group

	mu  sync.Mutex
	ops map[string]*operation
}

func New(remote Remote) *Adapter {
	proj := projection.New()
	return &Adapter{
		store:      collection.NewStore(proj.Publish),
		projection: proj,
		remote:     remote,
		ops:        make(map[string]*operation),
	}
}

// Load replaces the whole local collection with the server's wishlist.
// A failed load degrades to an empty collection instead of failing the
// session; the wishlist simply starts empty when the network is down.
// Concurrent loads collapse into a single request.
func (a *Adapter) Load(ctx context.Context) {
	a.sfg.Do("load", func() (interface{}, error) {
		refs, err := a.remote.List(ctx)
		if err != nil {
			log.Printf("wishlist load failed, starting empty: %v", err)
			a.store.Replace(nil)
			return nil, nil
		}

		items := make([]domain.LineItem, 0, len(refs))
		seen := make(map[string]bool, len(refs))
		for _, ref := range refs {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			items = append(items, domain.LineItem{Product: ref, Quantity: 1})
		}
		a.store.Replace(items)
		return nil, nil
	})
}

// Add puts the product on the wishlist. The item is visible locally before
// the network call resolves; the returned channel delivers nil once the
// server confirms, or the failure after the local add has been rolled back.
// A product already in the collection fails fast with ErrAlreadyInCollection
// and no network call.
func (a *Adapter) Add(ctx context.Context, ref domain.ProductRef) (<-chan error, error) {
	a.mu.Lock()
	if _, ok := a.store.Get(ref.ID); ok {
		a.mu.Unlock()
		return nil, domain.ErrAlreadyInCollection
	}
	a.store.AddQuantity(ref, 1)
	op := a.begin()
	a.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		// The confirmation outlives the caller; no cancellation of an
		// in-flight confirmation is supported.
		err := a.remote.Add(context.Background(), ref.ID)
		if err != nil {
			a.rollbackAdd(ref.ID)
			a.finish(op, stateRolledBack)
			log.Printf("wishlist add %s rolled back: %v", ref.ID, err)
			done <- err
			return
		}
		a.finish(op, stateConfirmed)
		done <- nil
	}()
	return done, nil
}

// Remove takes the product off the wishlist, mirroring Add: the removal is
// applied locally first and the item is re-inserted at its original
// position if the server call fails. An absent product fails fast with
// ErrNotInCollection and no network call.
func (a *Adapter) Remove(ctx context.Context, productID string) (<-chan error, error) {
	a.mu.Lock()
	removed, index, ok := a.store.Remove(productID)
	if !ok {
		a.mu.Unlock()
		return nil, domain.ErrNotInCollection
	}
	op := a.begin()
	a.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := a.remote.Remove(context.Background(), productID)
		if err != nil {
			a.rollbackRemove(removed, index)
			a.finish(op, stateRolledBack)
			log.Printf("wishlist remove %s rolled back: %v", productID, err)
			done <- err
			return
		}
		a.finish(op, stateConfirmed)
		done <- nil
	}()
	return done, nil
}

// rollbackAdd undoes an optimistic add. It reverts only the change the add
// made: if a later mutation already removed or changed the item, the
// rollback leaves it alone.
func (a *Adapter) rollbackAdd(productID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if item, ok := a.store.Get(productID); ok && item.Quantity == 1 {
		a.store.Remove(productID)
	}
}

// rollbackRemove restores a removed item at its captured position, but only
// if a later mutation has not re-added it in the meantime.
func (a *Adapter) rollbackRemove(item domain.LineItem, index int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.store.Get(item.Product.ID); ok {
		return
	}
	a.store.InsertAt(item, index)
}

func (a *Adapter) begin() *operation {
	op := &operation{id: uuid.NewString(), state: stateRequested}
	a.ops[op.id] = op
	return op
}

func (a *Adapter) finish(op *operation, state opState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	op.state = state
	delete(a.ops, op.id)
}

// Pending reports how many confirmations are still in flight.
func (a *Adapter) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.ops)
}

// Contains reports whether the product is currently on the wishlist.
func (a *Adapter) Contains(productID string) bool {
	_, ok := a.store.Get(productID)
	return ok
}

// Len returns the number of wishlist items.
func (a *Adapter) Len() int {
	return a.store.Len()
}

// Items returns an ordered snapshot of the wishlist.
func (a *Adapter) Items() []domain.LineItem {
	return a.store.Snapshot()
}

// Subscribe registers an observer for wishlist snapshots; the current
// snapshot is delivered immediately.
func (a *Adapter) Subscribe(obs projection.Observer) *projection.Subscription {
	return a.projection.Subscribe(obs)
}
