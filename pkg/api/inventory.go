package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// InventoryAPI maps stock operations onto transport requests.
type InventoryAPI struct {
	c *transport.Client
}

// NewInventoryAPI creates an inventory API module
func NewInventoryAPI(c *transport.Client) *InventoryAPI {
	return &InventoryAPI{c: c}
}

// ListInventory fetches the stock list.
func (a *InventoryAPI) ListInventory(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/api/inventory/list", pageValues(params))
}

// GetInventory fetches a single stock record by id.
func (a *InventoryAPI) GetInventory(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/api/inventory/%d", id))
}

// CreateInventory creates a stock record.
func (a *InventoryAPI) CreateInventory(ctx context.Context, inventory *models.Inventory) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/inventory", inventory)
}

// UpdateInventory updates a stock record.
func (a *InventoryAPI) UpdateInventory(ctx context.Context, id int64, inventory *models.Inventory) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/api/inventory/%d", id), inventory)
}

// DeleteInventory deletes a stock record.
func (a *InventoryAPI) DeleteInventory(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/api/inventory/%d", id))
}

// StockIn records an inbound stock movement.
func (a *InventoryAPI) StockIn(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/inventory/stock-in", movement)
}

// StockOut records an outbound stock movement.
func (a *InventoryAPI) StockOut(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/inventory/stock-out", movement)
}

// ProductNames fetches all known product names, for autocompletion.
func (a *InventoryAPI) ProductNames(ctx context.Context) (*models.Envelope, error) {
	return a.c.Get(ctx, "/api/inventory/product-names")
}

// ByProductName fetches the stock record for a product name. The name path
// segment is percent-encoded.
func (a *InventoryAPI) ByProductName(ctx context.Context, productName string) (*models.Envelope, error) {
	return a.c.Get(ctx, "/api/inventory/by-name/"+url.PathEscape(productName))
}
