package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daacooerp/erpclient/pkg/api"
	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/models"
	erptesting "github.com/daacooerp/erpclient/pkg/testing"
	"github.com/daacooerp/erpclient/pkg/transport"
)

func envelopeWithData(t *testing.T, data interface{}) *models.Envelope {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	return &models.Envelope{Code: models.EnvelopeOK, Data: raw}
}

func TestNormalizeListShapes(t *testing.T) {
	t.Run("content wrapper yields items and pagination", func(t *testing.T) {
		env := envelopeWithData(t, erptesting.PagedData(
			[]models.Company{{ID: 1, Name: "Acme"}}, 31, 4, 2, 10))

		items, page := normalizeList[models.Company](env)
		require.Len(t, items, 1)
		assert.Equal(t, "Acme", items[0].Name)
		require.NotNil(t, page)
		assert.Equal(t, int64(31), page.TotalElements)
		assert.Equal(t, 4, page.TotalPages)
		assert.Equal(t, 2, page.CurrentPage)
	})

	t.Run("bare array yields items without pagination", func(t *testing.T) {
		env := envelopeWithData(t, []models.Company{{ID: 1}, {ID: 2}})

		items, page := normalizeList[models.Company](env)
		assert.Len(t, items, 2)
		assert.Nil(t, page)
	})

	t.Run("unrecognized shape fails soft to empty", func(t *testing.T) {
		for _, data := range []interface{}{"surprise", 42, map[string]int{"count": 3}} {
			env := envelopeWithData(t, data)
			items, page := normalizeList[models.Company](env)
			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.Nil(t, page)
		}
	})

	t.Run("empty envelope yields empty", func(t *testing.T) {
		items, page := normalizeList[models.Company](&models.Envelope{Code: models.EnvelopeOK})
		assert.Empty(t, items)
		assert.Nil(t, page)

		items, page = normalizeList[models.Company](nil)
		assert.Empty(t, items)
		assert.Nil(t, page)
	})
}

// newStoreFixture wires real API modules through the transport at a mock
// server.
func newStoreFixture(t *testing.T) (*erptesting.MockERPServer, *transport.Client) {
	t.Helper()
	server := erptesting.NewMockERPServer(t)
	client := transport.NewClient(&transport.Config{BaseURL: server.URL})
	return server, client
}

func TestCompanyStoreFetchPopulatesState(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/company", erptesting.PagedData(
		[]models.Company{{ID: 7, Name: "Acme"}}, 1, 1, 0, 10))

	companies := NewCompanyStore(api.NewCompanyAPI(client))
	items, err := companies.FetchCompanies(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, items, 1)
	assert.Equal(t, items, companies.Companies())
	assert.Equal(t, int64(1), companies.Pagination().TotalElements)
	assert.False(t, companies.Loading(), "loading flag clears after the fetch settles")
}

func TestCompanyStoreFetchFailureResetsAndRethrows(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/company", []models.Company{{ID: 7}})

	companies := NewCompanyStore(api.NewCompanyAPI(client))
	_, err := companies.FetchCompanies(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, companies.Companies())

	// Staff list 500s: staff resets to empty, companies stay untouched.
	server.StubRaw(http.MethodGet, "/api/staff", http.StatusInternalServerError,
		map[string]string{"error": "db down"})
	_, err = companies.FetchStaff(context.Background(), 0, nil)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeServerError))
	assert.Empty(t, companies.Staff())
	assert.NotEmpty(t, companies.Companies())
	assert.False(t, companies.Loading(), "loading flag clears on the failure path too")
}

func TestCompanyStoreCurrentSelection(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/company/7", models.Company{ID: 7, Name: "Acme"})

	companies := NewCompanyStore(api.NewCompanyAPI(client))
	current, err := companies.FetchCompany(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "Acme", current.Name)
	assert.Equal(t, current, companies.CurrentCompany())

	// A failing detail fetch clears the selection.
	server.StubRaw(http.MethodGet, "/company/8", http.StatusNotFound, nil)
	_, err = companies.FetchCompany(context.Background(), 8)
	require.Error(t, err)
	assert.Nil(t, companies.CurrentCompany())
}

func TestInventoryStoreListAndProductNames(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/api/inventory/list",
		[]models.Inventory{{ID: 1, ProductName: "widget", Quantity: 5}})
	server.StubSuccess(http.MethodGet, "/api/inventory/product-names",
		[]string{"widget", "gadget"})

	inventories := NewInventoryStore(api.NewInventoryAPI(client))

	items, err := inventories.FetchInventories(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, items, inventories.Inventories())

	names, err := inventories.FetchProductNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"widget", "gadget"}, names)
}

func TestInventoryStoreValidatesMovements(t *testing.T) {
	_, client := newStoreFixture(t)
	inventories := NewInventoryStore(api.NewInventoryAPI(client))

	_, err := inventories.StockIn(context.Background(), &models.StockMovement{ProductName: "widget"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation),
		"zero quantity never reaches the wire")
}

func TestFinanceStoreYearLedger(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/api/finance/2025",
		[]map[string]interface{}{{"id": 1, "income": "150.75", "expense": "20.25", "profit": "130.50"}})

	finance := NewFinanceStore(api.NewFinanceAPI(client))
	records, err := finance.FetchFinance(context.Background(), 2025)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "150.75", records[0].Income.String())
	assert.Equal(t, 2025, finance.CurrentYear())
	assert.Equal(t, records, finance.FinanceData())
}

func TestFinanceStoreStatisticsFailureResets(t *testing.T) {
	server, client := newStoreFixture(t)
	server.StubSuccess(http.MethodGet, "/api/finance/statistics",
		map[string]interface{}{"totalIncome": "99.00"})

	finance := NewFinanceStore(api.NewFinanceAPI(client))
	stats, err := finance.FetchStatistics(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalIncome":"99.00"}`, string(stats))

	// Swap in a failing route on a fresh fixture to observe the reset.
	server2, client2 := newStoreFixture(t)
	server2.StubDomainError(http.MethodGet, "/api/finance/statistics", 500, "no data")
	finance2 := NewFinanceStore(api.NewFinanceAPI(client2))
	_, err = finance2.FetchStatistics(context.Background())
	require.Error(t, err)
	assert.Nil(t, finance2.Statistics())
}
