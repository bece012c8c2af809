package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogClient_ListProducts_NormalizesIdentifiers(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// the store exposes "_id", older records carry "id"
		w.Write([]byte(`[
			{"_id":"65a1","code":"f230fh0g3","name":"Bamboo Watch","price":65.00,"inventoryStatus":"INSTOCK","rating":4.5},
			{"id":"local-2","name":"Black Watch","price":72.50,"inventoryStatus":"LOWSTOCK"}
		]`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewCatalogClient(srv.URL, srv.Client())
	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "65a1", products[0].ID)
	assert.Equal(t, "Bamboo Watch", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("65")))
	assert.Equal(t, domain.StatusInStock, products[0].InventoryStatus)

	assert.Equal(t, "local-2", products[1].ID)
}

func TestCatalogClient_GetProduct_NotFound(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/products/{productID}", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Product not found"}`, http.StatusNotFound)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewCatalogClient(srv.URL, srv.Client())
	_, err := client.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogClient_RetriesTransientFailures(t *testing.T) {
	var attempts atomic.Int32
	r := chi.NewRouter()
	r.Get("/api/products/{productID}", func(w http.ResponseWriter, req *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"_id":"` + chi.URLParam(req, "productID") + `","name":"Bamboo Watch","price":65.00}`))
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	client := NewCatalogClient(srv.URL, srv.Client())
	product, err := client.GetProduct(context.Background(), "65a1")
	require.NoError(t, err)
	assert.Equal(t, "65a1", product.ID)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestCatalogClient_DeadBackendIsRemoteUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listens anymore

	client := NewCatalogClient(srv.URL, nil)
	_, err := client.ListProducts(context.Background())
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
}
