package store

import (
	"context"
	"sync"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/models"
)

// InventoryAPI is the slice of the inventory module the store consumes.
type InventoryAPI interface {
	ListInventory(ctx context.Context, params *api.PageParams) (*models.Envelope, error)
	GetInventory(ctx context.Context, id int64) (*models.Envelope, error)
	CreateInventory(ctx context.Context, inventory *models.Inventory) (*models.Envelope, error)
	UpdateInventory(ctx context.Context, id int64, inventory *models.Inventory) (*models.Envelope, error)
	DeleteInventory(ctx context.Context, id int64) (*models.Envelope, error)
	StockIn(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error)
	StockOut(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error)
	ProductNames(ctx context.Context) (*models.Envelope, error)
}

// InventoryStore caches stock state.
type InventoryStore struct {
	api InventoryAPI

	mu               sync.RWMutex
	inventories      []models.Inventory
	currentInventory *models.Inventory
	loading          bool
}

// NewInventoryStore creates an inventory store
func NewInventoryStore(inventoryAPI InventoryAPI) *InventoryStore {
	return &InventoryStore{
		api:         inventoryAPI,
		inventories: []models.Inventory{},
	}
}

// FetchInventories loads the stock list into the store. On failure the cached
// list resets to empty and the error propagates.
func (s *InventoryStore) FetchInventories(ctx context.Context, params *api.PageParams) ([]models.Inventory, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.ListInventory(ctx, params)
	if err != nil {
		s.mu.Lock()
		s.inventories = []models.Inventory{}
		s.mu.Unlock()
		return nil, err
	}

	items, _ := normalizeList[models.Inventory](env)
	s.mu.Lock()
	s.inventories = items
	s.mu.Unlock()
	return items, nil
}

// FetchInventory loads one stock record and makes it the current selection.
func (s *InventoryStore) FetchInventory(ctx context.Context, id int64) (*models.Inventory, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetInventory(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.currentInventory = nil
		s.mu.Unlock()
		return nil, err
	}

	current := decodeCurrent[models.Inventory](env)
	s.mu.Lock()
	s.currentInventory = current
	s.mu.Unlock()
	return current, nil
}

// CreateInventory creates a stock record.
func (s *InventoryStore) CreateInventory(ctx context.Context, inventory *models.Inventory) (*models.Envelope, error) {
	if err := models.Validate(inventory); err != nil {
		return nil, err
	}
	return s.api.CreateInventory(ctx, inventory)
}

// UpdateInventory updates a stock record.
func (s *InventoryStore) UpdateInventory(ctx context.Context, id int64, inventory *models.Inventory) (*models.Envelope, error) {
	return s.api.UpdateInventory(ctx, id, inventory)
}

// DeleteInventory deletes a stock record.
func (s *InventoryStore) DeleteInventory(ctx context.Context, id int64) (*models.Envelope, error) {
	return s.api.DeleteInventory(ctx, id)
}

// StockIn records an inbound movement.
func (s *InventoryStore) StockIn(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error) {
	if err := models.Validate(movement); err != nil {
		return nil, err
	}
	return s.api.StockIn(ctx, movement)
}

// StockOut records an outbound movement.
func (s *InventoryStore) StockOut(ctx context.Context, movement *models.StockMovement) (*models.Envelope, error) {
	if err := models.Validate(movement); err != nil {
		return nil, err
	}
	return s.api.StockOut(ctx, movement)
}

// FetchProductNames loads all known product names, for autocompletion.
func (s *InventoryStore) FetchProductNames(ctx context.Context) ([]string, error) {
	env, err := s.api.ProductNames(ctx)
	if err != nil {
		return nil, err
	}
	names, _ := normalizeList[string](env)
	return names, nil
}

// Inventories returns the cached stock list.
func (s *InventoryStore) Inventories() []models.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventories
}

// CurrentInventory returns the current selection, or nil.
func (s *InventoryStore) CurrentInventory() *models.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentInventory
}

// SetCurrentInventory sets the current selection.
func (s *InventoryStore) SetCurrentInventory(inventory *models.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentInventory = inventory
}

// Loading reports whether a fetch is in flight.
func (s *InventoryStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *InventoryStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
