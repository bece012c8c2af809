package collection

import (
	"testing"

	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReconciler() (*Store, *Reconciler) {
	store := NewStore(nil)
	return store, NewReconciler(store)
}

func TestReconciler_AddOrIncrement_RejectsNonPositive(t *testing.T) {
	store, rec := setupReconciler()

	_, err := rec.AddOrIncrement(ref("P1", "10.00"), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = rec.AddOrIncrement(ref("P1", "10.00"), -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	// no partial application
	assert.Equal(t, 0, store.Len())
}

func TestReconciler_AddOrIncrement_SumsQuantities(t *testing.T) {
	_, rec := setupReconciler()

	item, err := rec.AddOrIncrement(ref("P1", "10.00"), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = rec.AddOrIncrement(ref("P1", "10.00"), 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestReconciler_SetQuantity_ZeroRemoves(t *testing.T) {
	store, rec := setupReconciler()
	_, err := rec.AddOrIncrement(ref("P1", "10.00"), 2)
	require.NoError(t, err)

	_, err = rec.SetQuantity("P1", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, store.Len())
}

func TestReconciler_SetQuantity_Errors(t *testing.T) {
	_, rec := setupReconciler()

	_, err := rec.SetQuantity("P1", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = rec.SetQuantity("P1", 3)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = rec.SetQuantity("P1", 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReconciler_Remove_StrictOnAbsence(t *testing.T) {
	_, rec := setupReconciler()

	err := rec.Remove("P1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = rec.AddOrIncrement(ref("P1", "10.00"), 1)
	require.NoError(t, err)
	require.NoError(t, rec.Remove("P1"))
	assert.ErrorIs(t, rec.Remove("P1"), domain.ErrProductNotFound)
}

func TestReconciler_Total_InsertionOrderSum(t *testing.T) {
	_, rec := setupReconciler()

	_, err := rec.AddOrIncrement(ref("P1", "19.99"), 2)
	require.NoError(t, err)
	_, err = rec.AddOrIncrement(ref("P2", "0.01"), 3)
	require.NoError(t, err)

	want := decimal.RequireFromString("40.01")
	assert.True(t, rec.Total().Equal(want), "got %s", rec.Total())

	// recomputed, not cached
	_, err = rec.SetQuantity("P2", 1)
	require.NoError(t, err)
	want = decimal.RequireFromString("39.99")
	assert.True(t, rec.Total().Equal(want), "got %s", rec.Total())
}

// Any sequence of mutations must leave the collection free of duplicate
// identifiers and zero-quantity items.
func TestReconciler_InvariantsHoldAcrossSequences(t *testing.T) {
	_, rec := setupReconciler()

	ops := []func() error{
		func() error { _, err := rec.AddOrIncrement(ref("P1", "1.00"), 1); return err },
		func() error { _, err := rec.AddOrIncrement(ref("P2", "2.00"), 4); return err },
		func() error { _, err := rec.AddOrIncrement(ref("P1", "1.00"), 2); return err },
		func() error { _, err := rec.SetQuantity("P2", 0); return err },
		func() error { _, err := rec.AddOrIncrement(ref("P3", "3.00"), 1); return err },
		func() error { return rec.Remove("P3") },
		func() error { _, err := rec.AddOrIncrement(ref("P2", "2.00"), 1); return err },
		func() error { _, err := rec.SetQuantity("P1", 7); return err },
		func() error { _, err := rec.SetQuantity("P1", 0); return err },
		func() error { _, err := rec.AddOrIncrement(ref("P1", "1.00"), 1); return err },
	}

	for i, op := range ops {
		require.NoError(t, op(), "op %d", i)

		seen := make(map[string]bool)
		for _, item := range rec.Snapshot() {
			assert.False(t, seen[item.Product.ID], "duplicate %s after op %d", item.Product.ID, i)
			seen[item.Product.ID] = true
			assert.Greater(t, item.Quantity, 0, "zero quantity after op %d", i)
		}
	}

	// removed-then-re-added products go to the end
	snapshot := rec.Snapshot()
	require.Len(t, snapshot, 2)
	assert.Equal(t, "P2", snapshot[0].Product.ID)
	assert.Equal(t, "P1", snapshot[1].Product.ID)
}
