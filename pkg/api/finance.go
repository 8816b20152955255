package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// FinanceAPI maps finance ledger operations onto transport requests.
type FinanceAPI struct {
	c *transport.Client
}

// NewFinanceAPI creates a finance API module
func NewFinanceAPI(c *transport.Client) *FinanceAPI {
	return &FinanceAPI{c: c}
}

// GetFinance fetches the finance records for one year.
func (a *FinanceAPI) GetFinance(ctx context.Context, year int) (*models.Envelope, error) {
	return a.c.Get(ctx, fmt.Sprintf("/api/finance/%d", year))
}

// GetStatistics fetches aggregate finance statistics.
func (a *FinanceAPI) GetStatistics(ctx context.Context) (*models.Envelope, error) {
	return a.c.Get(ctx, "/api/finance/statistics")
}

// GetData fetches finance records filtered by arbitrary query parameters.
func (a *FinanceAPI) GetData(ctx context.Context, query url.Values) (*models.Envelope, error) {
	return a.c.GetWithQuery(ctx, "/api/finance/data", query)
}

// CreateRecord creates a finance ledger entry.
func (a *FinanceAPI) CreateRecord(ctx context.Context, record *models.FinanceRecord) (*models.Envelope, error) {
	return a.c.Post(ctx, "/api/finance", record)
}

// UpdateRecord updates a finance ledger entry.
func (a *FinanceAPI) UpdateRecord(ctx context.Context, id int64, record *models.FinanceRecord) (*models.Envelope, error) {
	return a.c.Put(ctx, fmt.Sprintf("/api/finance/%d", id), record)
}

// DeleteRecord deletes a finance ledger entry.
func (a *FinanceAPI) DeleteRecord(ctx context.Context, id int64) (*models.Envelope, error) {
	return a.c.Delete(ctx, fmt.Sprintf("/api/finance/%d", id))
}
