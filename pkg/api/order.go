package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// OrderAPI maps order operations onto transport requests. A single backend
// order resource serves two logical flows; the typed wrappers fix the type
// tag and stamp it onto create payloads.
type OrderAPI struct {
	c *transport.Client
}

// NewOrderAPI creates an order API module
func NewOrderAPI(c *transport.Client) *OrderAPI {
	return &OrderAPI{c: c}
}

// ListOrders fetches the order list.
func (a *OrderAPI) ListOrders(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/api/customer-order/list", pageValues(params))
}

// GetOrder fetches a single order by id.
func (a *OrderAPI) GetOrder(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/api/customer-order/%d", id))
}

// CreateOrder creates an order record.
func (a *OrderAPI) CreateOrder(ctx context.Context, order *models.Order) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/customer-order", order)
}

// UpdateOrder updates an order record.
func (a *OrderAPI) UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/api/customer-order/%d", id), order)
}

// DeleteOrder deletes an order record.
func (a *OrderAPI) DeleteOrder(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/api/customer-order/%d", id))
}

// ConfirmOrderOptions carries the optional freight charge for order
// confirmation.
type ConfirmOrderOptions struct {
	Freight *float64
}

// ConfirmOrder confirms an order. Freight defaults to 0 when absent and is
// sent as a query parameter, not a body field.
func (a *OrderAPI) ConfirmOrder(ctx context.Context, id int64, opts *ConfirmOrderOptions) (*models.Envelope, error) {
	freight := 0.0
	if opts != nil && opts.Freight != nil {
		freight = *opts.Freight
	}

	query := url.Values{}
	query.Set("freight", strconv.FormatFloat(freight, 'f', -1, 64))

	return a.c.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/customer-order/%d/confirm", id),
		Query:  query,
	})
}

// ListOrdersByType fetches orders for one type tag ("customer" or
// "purchase").
func (a *OrderAPI) ListOrdersByType(ctx context.Context, orderType string, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/api/customer-order/type/"+url.PathEscape(orderType), pageValues(params))
}

// Typed convenience wrappers for the two order flows. The "Custormer"
// spelling matches the upstream API surface.

// GetCustormerOrders fetches customer orders.
func (a *OrderAPI) GetCustormerOrders(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.ListOrdersByType(ctx, models.OrderTypeCustomer, params)
}

// GetPurchaseOrders fetches purchase orders.
func (a *OrderAPI) GetPurchaseOrders(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.ListOrdersByType(ctx, models.OrderTypePurchase, params)
}

// CreateCustormerOrder creates an order stamped with the customer type tag.
func (a *OrderAPI) CreateCustormerOrder(ctx context.Context, order *models.Order) (*models.Envelope, error) {
	stamped := *order
	stamped.Type = models.OrderTypeCustomer
	return a.CreateOrder(ctx, &stamped)
}

// CreatePurchaseOrder creates an order stamped with the purchase type tag.
func (a *OrderAPI) CreatePurchaseOrder(ctx context.Context, order *models.Order) (*models.Envelope, error) {
	stamped := *order
	stamped.Type = models.OrderTypePurchase
	return a.CreateOrder(ctx, &stamped)
}
