package store

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/daacooerp/erpclient/pkg/models"
)

// FinanceAPI is the slice of the finance module the store consumes.
type FinanceAPI interface {
	GetFinance(ctx context.Context, year int) (*models.Envelope, error)
	GetStatistics(ctx context.Context) (*models.Envelope, error)
	GetData(ctx context.Context, query url.Values) (*models.Envelope, error)
	CreateRecord(ctx context.Context, record *models.FinanceRecord) (*models.Envelope, error)
	UpdateRecord(ctx context.Context, id int64, record *models.FinanceRecord) (*models.Envelope, error)
	DeleteRecord(ctx context.Context, id int64) (*models.Envelope, error)
}

// FinanceStore caches the finance ledger for one year plus the aggregate
// statistics payload.
type FinanceStore struct {
	api FinanceAPI

	mu          sync.RWMutex
	financeData []models.FinanceRecord
	statistics  json.RawMessage
	currentYear int
	loading     bool
}

// NewFinanceStore creates a finance store pointed at the current wall-clock
// year.
func NewFinanceStore(financeAPI FinanceAPI) *FinanceStore {
	return &FinanceStore{
		api:         financeAPI,
		financeData: []models.FinanceRecord{},
		currentYear: time.Now().Year(),
	}
}

// FetchFinance loads the ledger for one year. A zero year means the store's
// current year. On failure the cached ledger resets to empty and the error
// propagates.
func (s *FinanceStore) FetchFinance(ctx context.Context, year int) ([]models.FinanceRecord, error) {
	if year == 0 {
		year = s.CurrentYear()
	}

	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetFinance(ctx, year)
	if err != nil {
		s.mu.Lock()
		s.financeData = []models.FinanceRecord{}
		s.mu.Unlock()
		return nil, err
	}

	items, _ := normalizeList[models.FinanceRecord](env)
	s.mu.Lock()
	s.financeData = items
	s.currentYear = year
	s.mu.Unlock()
	return items, nil
}

// FetchStatistics loads the aggregate statistics payload. The shape is
// server-defined, so the store keeps it raw. On failure the cached payload
// resets and the error propagates.
func (s *FinanceStore) FetchStatistics(ctx context.Context) (json.RawMessage, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetStatistics(ctx)
	if err != nil {
		s.mu.Lock()
		s.statistics = nil
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.statistics = env.Data
	s.mu.Unlock()
	return env.Data, nil
}

// FetchData loads ledger entries filtered by arbitrary query parameters,
// without touching the cached year ledger.
func (s *FinanceStore) FetchData(ctx context.Context, query url.Values) ([]models.FinanceRecord, error) {
	env, err := s.api.GetData(ctx, query)
	if err != nil {
		return nil, err
	}
	items, _ := normalizeList[models.FinanceRecord](env)
	return items, nil
}

// CreateRecord creates a ledger entry.
func (s *FinanceStore) CreateRecord(ctx context.Context, record *models.FinanceRecord) (*models.Envelope, error) {
	return s.api.CreateRecord(ctx, record)
}

// UpdateRecord updates a ledger entry.
func (s *FinanceStore) UpdateRecord(ctx context.Context, id int64, record *models.FinanceRecord) (*models.Envelope, error) {
	return s.api.UpdateRecord(ctx, id, record)
}

// DeleteRecord deletes a ledger entry.
func (s *FinanceStore) DeleteRecord(ctx context.Context, id int64) (*models.Envelope, error) {
	return s.api.DeleteRecord(ctx, id)
}

// FinanceData returns the cached ledger.
func (s *FinanceStore) FinanceData() []models.FinanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.financeData
}

// Statistics returns the cached statistics payload, or nil.
func (s *FinanceStore) Statistics() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statistics
}

// CurrentYear returns the year the cached ledger belongs to.
func (s *FinanceStore) CurrentYear() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentYear
}

// SetCurrentYear repoints the store at a different year without fetching.
func (s *FinanceStore) SetCurrentYear(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentYear = year
}

// Loading reports whether a fetch is in flight.
func (s *FinanceStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *FinanceStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
