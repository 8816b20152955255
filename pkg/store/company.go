package store

import (
	"context"
	"sync"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/models"
)

// CompanyAPI is the slice of the company module the store consumes.
type CompanyAPI interface {
	ListCompanies(ctx context.Context, params *api.PageParams) (*models.Envelope, error)
	GetCompany(ctx context.Context, id int64) (*models.Envelope, error)
	CreateCompany(ctx context.Context, company *models.Company) (*models.Envelope, error)
	UpdateCompany(ctx context.Context, id int64, company *models.Company) (*models.Envelope, error)
	DeleteCompany(ctx context.Context, id int64) (*models.Envelope, error)
	ListStaff(ctx context.Context, companyID int64, params *api.PageParams) (*models.Envelope, error)
	CreateStaff(ctx context.Context, staff *models.Staff) (*models.Envelope, error)
	UpdateStaff(ctx context.Context, id int64, staff *models.Staff) (*models.Envelope, error)
	DeleteStaff(ctx context.Context, id int64) (*models.Envelope, error)
	UpdatePassword(ctx context.Context, update *models.PasswordUpdate) (*models.Envelope, error)
}

// CompanyStore caches company and staff state. Reads are safe from any
// goroutine; concurrent fetches settle last-resolved-wins.
type CompanyStore struct {
	api CompanyAPI

	mu             sync.RWMutex
	companies      []models.Company
	currentCompany *models.Company
	staff          []models.Staff
	currentStaff   *models.Staff
	loading        bool
	pagination     models.Pagination
}

// NewCompanyStore creates a company store
func NewCompanyStore(companyAPI CompanyAPI) *CompanyStore {
	return &CompanyStore{
		api:        companyAPI,
		companies:  []models.Company{},
		staff:      []models.Staff{},
		pagination: models.DefaultPagination(),
	}
}

// FetchCompanies loads the company list into the store. On failure the cached
// list resets to empty and the error propagates.
func (s *CompanyStore) FetchCompanies(ctx context.Context, params *api.PageParams) ([]models.Company, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.ListCompanies(ctx, params)
	if err != nil {
		s.mu.Lock()
		s.companies = []models.Company{}
		s.mu.Unlock()
		return nil, err
	}

	items, page := normalizeList[models.Company](env)
	s.mu.Lock()
	s.companies = items
	if page != nil {
		s.pagination = *page
	}
	s.mu.Unlock()
	return items, nil
}

// FetchCompany loads one company and makes it the current selection. An empty
// payload leaves the selection cleared without an error.
func (s *CompanyStore) FetchCompany(ctx context.Context, id int64) (*models.Company, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.GetCompany(ctx, id)
	if err != nil {
		s.mu.Lock()
		s.currentCompany = nil
		s.mu.Unlock()
		return nil, err
	}

	current := decodeCurrent[models.Company](env)
	s.mu.Lock()
	s.currentCompany = current
	s.mu.Unlock()
	return current, nil
}

// CreateCompany creates a company record.
func (s *CompanyStore) CreateCompany(ctx context.Context, company *models.Company) (*models.Envelope, error) {
	return s.api.CreateCompany(ctx, company)
}

// UpdateCompany updates a company record.
func (s *CompanyStore) UpdateCompany(ctx context.Context, id int64, company *models.Company) (*models.Envelope, error) {
	return s.api.UpdateCompany(ctx, id, company)
}

// DeleteCompany deletes a company record.
func (s *CompanyStore) DeleteCompany(ctx context.Context, id int64) (*models.Envelope, error) {
	return s.api.DeleteCompany(ctx, id)
}

// FetchStaff loads the staff list, optionally scoped to one company. On
// failure the cached list resets to empty and the error propagates.
func (s *CompanyStore) FetchStaff(ctx context.Context, companyID int64, params *api.PageParams) ([]models.Staff, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	env, err := s.api.ListStaff(ctx, companyID, params)
	if err != nil {
		s.mu.Lock()
		s.staff = []models.Staff{}
		s.mu.Unlock()
		return nil, err
	}

	items, page := normalizeList[models.Staff](env)
	s.mu.Lock()
	s.staff = items
	if page != nil {
		s.pagination = *page
	}
	s.mu.Unlock()
	return items, nil
}

// CreateStaff creates a staff record.
func (s *CompanyStore) CreateStaff(ctx context.Context, staff *models.Staff) (*models.Envelope, error) {
	return s.api.CreateStaff(ctx, staff)
}

// UpdateStaff updates a staff record.
func (s *CompanyStore) UpdateStaff(ctx context.Context, id int64, staff *models.Staff) (*models.Envelope, error) {
	return s.api.UpdateStaff(ctx, id, staff)
}

// DeleteStaff deletes a staff record.
func (s *CompanyStore) DeleteStaff(ctx context.Context, id int64) (*models.Envelope, error) {
	return s.api.DeleteStaff(ctx, id)
}

// UpdatePassword changes the calling staff member's password.
func (s *CompanyStore) UpdatePassword(ctx context.Context, update *models.PasswordUpdate) (*models.Envelope, error) {
	if err := models.Validate(update); err != nil {
		return nil, err
	}
	return s.api.UpdatePassword(ctx, update)
}

// Companies returns the cached company list.
func (s *CompanyStore) Companies() []models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.companies
}

// Staff returns the cached staff list.
func (s *CompanyStore) Staff() []models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staff
}

// CurrentCompany returns the current company selection, or nil.
func (s *CompanyStore) CurrentCompany() *models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCompany
}

// SetCurrentCompany sets the current company selection.
func (s *CompanyStore) SetCurrentCompany(company *models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentCompany = company
}

// CurrentStaff returns the current staff selection, or nil.
func (s *CompanyStore) CurrentStaff() *models.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentStaff
}

// SetCurrentStaff sets the current staff selection.
func (s *CompanyStore) SetCurrentStaff(staff *models.Staff) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentStaff = staff
}

// Loading reports whether a fetch is in flight.
func (s *CompanyStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Pagination returns the paging metadata from the latest paged response.
func (s *CompanyStore) Pagination() models.Pagination {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pagination
}

func (s *CompanyStore) setLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}
