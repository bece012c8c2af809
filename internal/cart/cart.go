// Package cart implements the local shopping cart. The cart has no remote
// counterpart: it lives only in memory and is discarded when the session
// ends.
package cart

import (
	"github.com/medghazdali/product-trial-master/internal/collection"
	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/medghazdali/product-trial-master/internal/projection"
	"github.com/shopspring/decimal"
)

// Cart is the UI-facing cart session. Mutations go through the reconciler,
// snapshots reach display surfaces through the projection.
type Cart struct {
	store      *collection.Store
	reconciler *collection.Reconciler
	projection *projection.Projection
}

func New() *Cart {
	proj := projection.New()
	store := collection.NewStore(proj.Publish)
	return &Cart{
		store:      store,
		reconciler: collection.NewReconciler(store),
		projection: proj,
	}
}

// AddItem adds quantity of the product, incrementing when already present.
func (c *Cart) AddItem(ref domain.ProductRef, quantity int) (domain.LineItem, error) {
	return c.reconciler.AddOrIncrement(ref, quantity)
}

// SetQuantity overwrites the product's quantity; zero removes the item.
func (c *Cart) SetQuantity(productID string, quantity int) (domain.LineItem, error) {
	return c.reconciler.SetQuantity(productID, quantity)
}

// RemoveItem removes the product from the cart. Removing an absent product
// is already satisfied, not an error.
func (c *Cart) RemoveItem(productID string) {
	_ = c.reconciler.Remove(productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.store.Replace(nil)
}

// Items returns an ordered snapshot of the cart contents.
func (c *Cart) Items() []domain.LineItem {
	return c.store.Snapshot()
}

// Count returns the total number of units across all line items.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.store.Snapshot() {
		count += item.Quantity
	}
	return count
}

// Total is the sum of unit price times quantity in insertion order.
func (c *Cart) Total() decimal.Decimal {
	return c.reconciler.Total()
}

// Subscribe registers an observer for cart snapshots; the current snapshot
// is delivered immediately.
func (c *Cart) Subscribe(obs projection.Observer) *projection.Subscription {
	return c.projection.Subscribe(obs)
}
