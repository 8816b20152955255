package testing

import (
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/daacooerp/erpclient/pkg/models"
)

// MockERPServer is a gin-backed stand-in for the ERP service. Tests register
// stubbed routes, point a transport client at URL and assert on what arrived.
type MockERPServer struct {
	Router *gin.Engine
	URL    string

	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// RecordedRequest captures one request the mock server received.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         map[string]string
	Authorization string
	RequestID     string
}

// NewMockERPServer creates a mock ERP server and tears it down with the test.
func NewMockERPServer(t *testing.T) *MockERPServer {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	m := &MockERPServer{
		Router: router,
		t:      t,
	}

	router.Use(func(c *gin.Context) {
		query := map[string]string{}
		for key := range c.Request.URL.Query() {
			query[key] = c.Query(key)
		}
		m.mu.Lock()
		m.requests = append(m.requests, RecordedRequest{
			Method:        c.Request.Method,
			Path:          c.Request.URL.Path,
			Query:         query,
			Authorization: c.GetHeader("Authorization"),
			RequestID:     c.GetHeader("X-Request-ID"),
		})
		m.mu.Unlock()
		c.Next()
	})

	m.server = httptest.NewServer(router)
	m.URL = m.server.URL
	t.Cleanup(m.server.Close)
	return m
}

// Requests returns a copy of every request received so far.
func (m *MockERPServer) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil if none arrived.
func (m *MockERPServer) LastRequest() *RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	last := m.requests[len(m.requests)-1]
	return &last
}

// StubSuccess registers a route answering with a success envelope wrapping
// data.
func (m *MockERPServer) StubSuccess(method, path string, data interface{}) {
	m.Router.Handle(method, path, func(c *gin.Context) {
		c.JSON(200, gin.H{"code": 200, "message": "ok", "data": data})
	})
}

// StubRaw registers a route answering with an arbitrary status and body,
// for bare payloads and error shapes.
func (m *MockERPServer) StubRaw(method, path string, status int, body interface{}) {
	m.Router.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// StubDomainError registers a route answering HTTP 200 with a failure
// envelope code.
func (m *MockERPServer) StubDomainError(method, path string, code int, message string) {
	m.Router.Handle(method, path, func(c *gin.Context) {
		c.JSON(200, gin.H{"code": code, "message": message})
	})
}

// PagedData builds the content-wrapped page shape around items.
func PagedData(items interface{}, totalElements int64, totalPages, number, size int) models.Page {
	content, err := json.Marshal(items)
	if err != nil {
		panic(err)
	}
	return models.Page{
		TotalElements: totalElements,
		TotalPages:    totalPages,
		Number:        number,
		Size:          size,
		Content:       content,
	}
}
