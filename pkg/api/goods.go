package api

import (
	"context"
	"fmt"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// GoodsAPI maps product catalogue operations onto transport requests.
type GoodsAPI struct {
	c *transport.Client
}

// NewGoodsAPI creates a goods API module
func NewGoodsAPI(c *transport.Client) *GoodsAPI {
	return &GoodsAPI{c: c}
}

// ListGoods fetches the product list.
func (a *GoodsAPI) ListGoods(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/goods", pageValues(params))
}

// GetGoods fetches a single product by id.
func (a *GoodsAPI) GetGoods(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/goods/%d", id))
}

// CreateGoods creates a product record.
func (a *GoodsAPI) CreateGoods(ctx context.Context, goods *models.Goods) (*models.Envelope, error) {
	return a.c.Post(ctx, "/goods", goods)
}

// UpdateGoods updates a product record.
func (a *GoodsAPI) UpdateGoods(ctx context.Context, id int64, goods *models.Goods) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/goods/%d", id), goods)
}

// DeleteGoods deletes a product record.
func (a *GoodsAPI) DeleteGoods(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/goods/%d", id))
}

// UpdateStock sets a product's stock quantity.
func (a *GoodsAPI) UpdateStock(ctx context.Context, id int64, quantity int) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/goods/%d/stock", id), map[string]int{"quantity": quantity})
}
