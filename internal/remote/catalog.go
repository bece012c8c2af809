package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medghazdali/product-trial-master/internal/domain"
	"github.com/shopspring/decimal"
)

// CatalogClient reads product records from the catalog API.
type CatalogClient struct {
	c *client
}

// NewCatalogClient creates a client for the catalog API at baseURL.
// httpClient may be nil to use a default with a 10s timeout.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	return &CatalogClient{c: newClient(baseURL, httpClient)}
}

// productDTO is the wire shape of a product. The backing store exposes its
// own identifier under "_id" while older records carry "id"; normalization
// into the single ProductRef.ID happens here and nowhere else.
type productDTO struct {
	ID              string                 `json:"id"`
	MongoID         string                 `json:"_id"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	Category        string                 `json:"category"`
	Price           decimal.Decimal        `json:"price"`
	InventoryStatus domain.InventoryStatus `json:"inventoryStatus"`
	Rating          float64                `json:"rating"`
}

func (d productDTO) toRef() domain.ProductRef {
	id := d.ID
	if id == "" {
		id = d.MongoID
	}
	return domain.ProductRef{
		ID:              id,
		Code:            d.Code,
		Name:            d.Name,
		Description:     d.Description,
		Category:        d.Category,
		Price:           d.Price,
		InventoryStatus: d.InventoryStatus,
		Rating:          d.Rating,
	}
}

// ListProducts returns all catalog products in server order.
func (cc *CatalogClient) ListProducts(ctx context.Context) ([]domain.ProductRef, error) {
	var dtos []productDTO
	if err := cc.c.getJSON(ctx, "/api/products", &dtos); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	refs := make([]domain.ProductRef, 0, len(dtos))
	for _, d := range dtos {
		refs = append(refs, d.toRef())
	}
	return refs, nil
}

// GetProduct fetches a single product by its normalized identifier.
func (cc *CatalogClient) GetProduct(ctx context.Context, productID string) (domain.ProductRef, error) {
	var dto productDTO
	err := cc.c.getJSON(ctx, "/api/products/"+url.PathEscape(productID), &dto)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return domain.ProductRef{}, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}
		return domain.ProductRef{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	return dto.toRef(), nil
}
