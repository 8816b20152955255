package store

import (
	"context"
	"sync"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/models"
)

// OrderAPI is the slice of the order module the store consumes.
type OrderAPI interface {
	GetOrder(ctx context.Context, id int64) (*models.Envelope, error)
	UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Envelope, error)
	DeleteOrder(ctx context.Context, id int64) (*models.Envelope, error)
	ConfirmOrder(ctx context.Context, id int64, opts *api.ConfirmOrderOptions) (*models.Envelope, error)
	GetCustormerOrders(ctx context.Context, params *api.PageParams) (*models.Envelope, error)
	GetPurchaseOrders(ctx context.Context, params *api.PageParams) (*models.Envelope, error)
	CreateCustormerOrder(ctx context.Context, order *models.Order) (*models.Envelope, error)
	CreatePurchaseOrder(ctx context.Context, order *models.Order) (*models.Envelope, error)
}

// OrderStore caches the two order lists. Unlike the other stores it can
// refresh the affected list after each mutation, so callers always observe
// server-assigned fields. The policy is fixed at construction.
type OrderStore struct {
	api     OrderAPI
	refetch bool

	mu              sync.RWMutex
	custormerOrders []models.Order
	purchaseOrders  []models.Order
	currentOrder    *models.Order
	loading         bool
	pagination      models.Pagination
}

// NewOrderStore creates an order store. With refetchAfterMutation set, every
// create, delete and confirm refreshes the affected list before returning.
func NewOrderStore(orderAPI OrderAPI, refetchAfterMutation bool) *OrderStore {
	return &OrderStore{
		api:             orderAPI,
		refetch:         refetchAfterMutation,
		custormerOrders: []models.Order{},
		purchaseOrders:  []models.Order{},
		pagination:      models.DefaultPagination(),
	}
}

// FetchCustormerOrders loads the customer order list. On failure the cached
// list resets to empty and the error propagates.
func (s *OrderStore) FetchCustormerOrders(ctx context.Context, params *api.PageParams) ([]models.Order, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetCustormerOrders(ctx, params)
	if err != nil {
		s.mu.Lock()
		s.custormerOrders = []models.Order{}
		s.mu.Unlock()
		return nil, err
	}

	items, page := normalizeList[models.Order](env)
	s.mu.Lock()
	s.custormerOrders = items
	if page != nil {
		s.pagination = *page
	}
	s.mu.Unlock()
	return items, nil
}

// FetchPurchaseOrders loads the purchase order list. On failure the cached
// list resets to empty and the error propagates.
func (s *OrderStore) FetchPurchaseOrders(ctx context.Context, params *api.PageParams) ([]models.Order, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetPurchaseOrders(ctx, params)
	if err != nil {
		s.mu.Lock()
		s.purchaseOrders = []models.Order{}
		s.mu.Unlock()
		return nil, err
	}

	items, page := normalizeList[models.Order](env)
	s.mu.Lock()
	s.purchaseOrders = items
	if page != nil {
		s.pagination = *page
	}
	s.mu.Unlock()
	return items, nil
}

// FetchOrder loads one order and makes it the current selection.
func (s *OrderStore) FetchOrder(ctx context.Context, id int64) (*models.Order, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetOrder(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.currentOrder = nil
		s.mu.Unlock()
		return nil, err
	}

	current := decodeCurrent[models.Order](env)
	s.mu.Lock()
	s.currentOrder = current
	s.mu.Unlock()
	return current, nil
}

// CreateCustormerOrder creates a customer order, then refreshes the customer
// list when the refetch policy is on.
func (s *OrderStore) CreateCustormerOrder(ctx context.Context, order *models.Order) (*models.Envelope, error) {
	env, err := s.api.CreateCustormerOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.refetchList(ctx, models.OrderTypeCustomer); err != nil {
		return nil, err
	}
	return env, nil
}

// CreatePurchaseOrder creates a purchase order, then refreshes the purchase
// list when the refetch policy is on.
func (s *OrderStore) CreatePurchaseOrder(ctx context.Context, order *models.Order) (*models.Envelope, error) {
	env, err := s.api.CreatePurchaseOrder(ctx, order)
	if err != nil {
		return nil, err
	}
	if err := s.refetchList(ctx, models.OrderTypePurchase); err != nil {
		return nil, err
	}
	return env, nil
}

// UpdateOrder updates an order record. Unlike create, delete and confirm it
// never refreshes the cached lists, regardless of the refetch policy: edits
// happen from the detail view, whose caller reloads the record it is showing.
func (s *OrderStore) UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Envelope, error) {
	return s.api.UpdateOrder(ctx, id, order)
}

// DeleteOrder deletes an order, then refreshes the list named by orderType
// when the refetch policy is on.
func (s *OrderStore) DeleteOrder(ctx context.Context, id int64, orderType string) (*models.Envelope, error) {
	env, err := s.api.DeleteOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.refetchList(ctx, orderType); err != nil {
		return nil, err
	}
	return env, nil
}

// ConfirmOrder confirms an order, then refreshes the list named by orderType
// when the refetch policy is on.
func (s *OrderStore) ConfirmOrder(ctx context.Context, id int64, orderType string, opts *api.ConfirmOrderOptions) (*models.Envelope, error) {
	env, err := s.api.ConfirmOrder(ctx, id, opts)
	if err != nil {
		return nil, err
	}
	if err := s.refetchList(ctx, orderType); err != nil {
		return nil, err
	}
	return env, nil
}

// refetchList refreshes one cached list on the current page. A refetch
// failure surfaces to the caller even though the mutation itself succeeded.
func (s *OrderStore) refetchList(ctx context.Context, orderType string) error {
	if !s.refetch {
		return nil
	}

	s.mu.RLock()
	params := &api.PageParams{Page: s.pagination.CurrentPage, Size: s.pagination.Size}
	s.mu.RUnlock()

	var err error
	switch orderType {
	case models.OrderTypePurchase:
		_, err = s.FetchPurchaseOrders(ctx, params)
	default:
		_, err = s.FetchCustormerOrders(ctx, params)
	}
	return err
}

// CustormerOrders returns the cached customer order list.
func (s *OrderStore) CustormerOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.custormerOrders
}

// PurchaseOrders returns the cached purchase order list.
func (s *OrderStore) PurchaseOrders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchaseOrders
}

// CurrentOrder returns the current selection, or nil.
func (s *OrderStore) CurrentOrder() *models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentOrder
}

// Loading reports whether a fetch is in flight.
func (s *OrderStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Pagination returns the paging metadata from the latest paged response.
func (s *OrderStore) Pagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *OrderStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
