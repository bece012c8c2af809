package collection

import (
	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/shopspring/decimal"
)

// Reconciler is the invariant-enforcing entry point for collection
// mutations. The Store underneath is dumb storage; quantity rules and
// absence policy live here.
type Reconciler struct {
	store *Store
}

func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store}
}

// AddOrIncrement adds quantity of the product to the collection. Adding a
// product that is already present increments its quantity instead of
// duplicating the line item.
func (r *Reconciler) AddOrIncrement(ref domain.ProductRef, quantity int) (domain.LineItem, error) {
	if quantity <= 0 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}
	return r.store.AddQuantity(ref, quantity), nil
}

// SetQuantity overwrites the product's quantity. Setting zero removes the
// line item; zero-quantity items never persist.
func (r *Reconciler) SetQuantity(productID string, quantity int) (domain.LineItem, error) {
	if quantity < 0 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}
	if quantity == 0 {
		if _, _, ok := r.store.Remove(productID); !ok {
			return domain.LineItem{}, domain.ErrProductNotFound
		}
		return domain.LineItem{}, nil
	}
	item, ok := r.store.SetQuantity(productID, quantity)
	if !ok {
		return domain.LineItem{}, domain.ErrProductNotFound
	}
	return item, nil
}

// Remove deletes the product's line item, failing when it is absent.
// Callers that want idempotent removal handle ErrProductNotFound themselves.
func (r *Reconciler) Remove(productID string) error {
	if _, _, ok := r.store.Remove(productID); !ok {
		return domain.ErrProductNotFound
	}
	return nil
}

// Total sums unit price times quantity over the collection in insertion
// order. It is recomputed on every call, never cached.
func (r *Reconciler) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.store.Snapshot() {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Snapshot exposes the underlying store snapshot.
func (r *Reconciler) Snapshot() []domain.LineItem {
	return r.store.Snapshot()
}
