package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// WishlistClient talks to the wishlist service, the server of record for the
// wishlist collection. Mutations pass through a circuit breaker so a dead
// backend fails fast instead of stacking up timeouts; guard responses
// (already exists, not found) count as successes and never trip it.
type WishlistClient struct {
	c       *client
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewWishlistClient creates a client for the wishlist service at baseURL.
func NewWishlistClient(baseURL string, httpClient *http.Client) *WishlistClient {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "wishlist",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, domain.ErrRemoteUnavailable)
		},
	})
	return &WishlistClient{c: newClient(baseURL, httpClient), breaker: breaker}
}

// List returns the persisted wishlist in server order.
func (wc *WishlistClient) List(ctx context.Context) ([]domain.ProductRef, error) {
	var dtos []productDTO
	if err := wc.c.getJSON(ctx, "/api/wishlist", &dtos); err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}

	refs := make([]domain.ProductRef, 0, len(dtos))
	for _, d := range dtos {
		refs = append(refs, d.toRef())
	}
	return refs, nil
}

// Add persists the product on the server-side wishlist.
func (wc *WishlistClient) Add(ctx context.Context, productID string) error {
	err := wc.execute(ctx, http.MethodPost, "/api/wishlist/"+url.PathEscape(productID))
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			switch se.Code {
			case http.StatusBadRequest, http.StatusConflict:
				return fmt.Errorf("add to wishlist %s: %w", productID, domain.ErrAlreadyInCollection)
			case http.StatusNotFound:
				return fmt.Errorf("add to wishlist %s: %w", productID, domain.ErrProductNotFound)
			}
		}
		return fmt.Errorf("add to wishlist %s: %w", productID, err)
	}
	return nil
}

// Remove deletes the product from the server-side wishlist.
func (wc *WishlistClient) Remove(ctx context.Context, productID string) error {
	err := wc.execute(ctx, http.MethodDelete, "/api/wishlist/"+url.PathEscape(productID))
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return fmt.Errorf("remove from wishlist %s: %w", productID, domain.ErrNotInCollection)
		}
		return fmt.Errorf("remove from wishlist %s: %w", productID, err)
	}
	return nil
}

func (wc *WishlistClient) execute(ctx context.Context, method, path string) error {
	_, err := wc.breaker.Execute(func() (struct{}, error) {
		_, doErr := wc.c.do(ctx, method, path)
		return struct{}{}, wrapTransient(doErr)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	return err
}
