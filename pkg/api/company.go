package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// CompanyAPI maps company and staff operations onto transport requests. It
// holds no state and adds no error kinds of its own.
type CompanyAPI struct {
	c *transport.Client
}

// NewCompanyAPI creates a company API module
func NewCompanyAPI(c *transport.Client) *CompanyAPI {
	return &CompanyAPI{c: c}
}

// ListCompanies fetches the company list.
func (a *CompanyAPI) ListCompanies(ctx context.Context, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/company", pageValues(params))
}

// GetCompany fetches a single company by id.
func (a *CompanyAPI) GetCompany(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/company/%d", id))
}

// CreateCompany creates a company record.
func (a *CompanyAPI) CreateCompany(ctx context.Context, company *models.Company) (*models.Envelope, error) {
	return a.c.Post(ctx, "/company", company)
}

// UpdateCompany updates a company record.
func (a *CompanyAPI) UpdateCompany(ctx context.Context, id int64, company *models.Company) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/company/%d", id), company)
}

// DeleteCompany deletes a company record.
func (a *CompanyAPI) DeleteCompany(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/company/%d", id))
}

// GetCompanyStats fetches aggregate statistics for one company.
func (a *CompanyAPI) GetCompanyStats(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/company/%d/stats", id))
}

// GetCompanyOrders fetches the orders associated with a company.
func (a *CompanyAPI) GetCompanyOrders(ctx context.Context, id int64, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, fmt.Sprintf("/company/%d/orders", id), pageValues(params))
}

// GetCompanyInventory fetches the inventory associated with a company.
func (a *CompanyAPI) GetCompanyInventory(ctx context.Context, id int64, params *PageParams) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, fmt.Sprintf("/company/%d/inventory", id), pageValues(params))
}

// ListStaff fetches staff, optionally scoped to one company.
func (a *CompanyAPI) ListStaff(ctx context.Context, companyID int64, params *PageParams) (*models.Envelope, error) {
	path := "/api/staff"
	if companyID > 0 {
		path = fmt.Sprintf("/api/staff/company/%d", companyID)
	}
	return a.c.GetWithQuery(ctx, path, pageValues(params))
}

// CreateStaff creates a staff record.
func (a *CompanyAPI) CreateStaff(ctx context.Context, staff *models.Staff) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/staff", staff)
}

// UpdateStaff updates a staff record.
func (a *CompanyAPI) UpdateStaff(ctx context.Context, id int64, staff *models.Staff) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/api/staff/%d", id), staff)
}

// DeleteStaff deletes a staff record.
func (a *CompanyAPI) DeleteStaff(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/api/staff/%d", id))
}

// UpdatePassword changes the calling staff member's password.
func (a *CompanyAPI) UpdatePassword(ctx context.Context, update *models.PasswordUpdate) (*models.Envelope, error) {
	return a.c.Do(ctx, &transport.Request{
		Method: http.MethodPut,
		Path:   "/api/staff/password",
		Body:   update,
	})
}
