package api

import (
	"context"
	"fmt"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// OrderGoodsAPI maps order line-item operations onto transport requests.
type OrderGoodsAPI struct {
	c *transport.Client
}

// NewOrderGoodsAPI creates an order line-item API module
func NewOrderGoodsAPI(c *transport.Client) *OrderGoodsAPI {
	return &OrderGoodsAPI{c: c}
}

// List fetches the line items of one order.
func (a *OrderGoodsAPI) List(ctx context.Context, orderID int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/orders/%d/goods", orderID))
}

// Add appends a line item to an order.
func (a *OrderGoodsAPI) Add(ctx context.Context, orderID int64, item *models.OrderGoods) (*models.Envelope, error) {
	return a.c.Post(ctx, fmt.Sprintf("/orders/%d/goods", orderID), item)
}

// Update modifies a line item inside an order.
func (a *OrderGoodsAPI) Update(ctx context.Context, orderID, goodsID int64, item *models.OrderGoods) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/orders/%d/goods/%d", orderID, goodsID), item)
}

// Remove deletes a line item from an order.
func (a *OrderGoodsAPI) Remove(ctx context.Context, orderID, goodsID int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/orders/%d/goods/%d", orderID, goodsID))
}

// BatchAdd appends several line items to an order in one call.
func (a *OrderGoodsAPI) BatchAdd(ctx context.Context, orderID int64, items []models.OrderGoods) (*models.Envelope, error) {
	payload := map[string]interface{}{"goodsList": items}
	return a.c.Post(ctx, fmt.Sprintf("/orders/%d/goods/batch", orderID), payload)
}
