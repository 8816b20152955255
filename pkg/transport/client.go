package transport

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daacooerp/erpclient/pkg/auth"
	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/logging"
	"github.com/daacooerp/erpclient/pkg/models"
)

// DefaultTimeout is the per-request timeout for ordinary CRUD calls.
const DefaultTimeout = 5 * time.Second

// Client executes HTTP requests against the ERP service with uniform auth
// injection, envelope unwrapping and error mapping. It does not retry and it
// does not expose cancellation: a request, once issued, runs to completion
// or timeout.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	timeout        time.Duration
	tokens         auth.TokenStore
	defaultHeaders map[string]string
	logger         *logging.Logger

	mu             sync.RWMutex
	fallbackToken  func() string
	onUnauthorized func()
}

// Config holds transport configuration
type Config struct {
	BaseURL string
	Timeout time.Duration
	Tokens  auth.TokenStore
	Headers map[string]string
	Logger  *logging.Logger

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// NewClient creates a new transport client
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Tokens == nil {
		config.Tokens = auth.NewMemoryTokenStore()
	}
	if config.Logger == nil {
		config.Logger = logging.GetDefault()
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		// Per-request deadlines come from the context, not http.Client.Timeout.
		httpClient = &http.Client{}
	}

	defaultHeaders := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "erpclient/1.0",
	}
	for key, value := range config.Headers {
		defaultHeaders[key] = value
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimSuffix(config.BaseURL, "/"),
		timeout:        config.Timeout,
		tokens:         config.Tokens,
		defaultHeaders: defaultHeaders,
		logger:         config.Logger,
	}
}

// Tokens returns the credential store the client was constructed with.
func (c *Client) Tokens() auth.TokenStore {
	return c.tokens
}

// SetFallbackToken registers a secondary token source, consulted only when
// the credential store is empty. The session store registers its in-memory
// mirror here.
func (c *Client) SetFallbackToken(fn func() string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fallbackToken = fn
}

// SetUnauthenticatedHook registers a callback invoked after a 401 clears the
// credential store, so secondary token holders can drop their copies too.
func (c *Client) SetUnauthenticatedHook(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) notifyUnauthenticated() {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (c *Client) readFallbackToken() string {
	c.mu.RLock()
	fn := c.fallbackToken
	c.mu.RUnlock()
	if fn == nil {
		return ""
	}
	return auth.NormalizeBearer(fn())
}

// Request describes a single HTTP call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Timeout time.Duration
}

// Do executes a request and unwraps the response envelope. Every failure is
// mapped onto the client error taxonomy; nothing is swallowed.
func (c *Client) Do(ctx context.Context, req *Request) (*models.Envelope, error) {
	if req == nil || req.Method == "" || req.Path == "" {
		return nil, errors.New(errors.ErrCodeClientConfig, "request method and path are required")
	}

	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeClientConfig, "failed to marshal request body")
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reqCtx = logging.WithRequestID(reqCtx, uuid.NewString())

	httpReq, err := http.NewRequestWithContext(reqCtx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeClientConfig, "failed to construct request")
	}

	for key, value := range c.defaultHeaders {
		httpReq.Header.Set(key, value)
	}
	if token := c.authToken(); token != "" {
		httpReq.Header.Set("Authorization", token)
	}
	httpReq.Header.Set("X-Request-ID", logging.GetRequestIDFromContext(reqCtx))

	startTime := time.Now()
	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    fullURL,
	}).Debug(reqCtx, "Starting request")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.mapTransportError(reqCtx, req, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeNetworkUnreachable, "failed to read response body")
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"url":         fullURL,
		"status_code": httpResp.StatusCode,
		"duration_ms": float64(time.Since(startTime).Nanoseconds()) / 1e6,
	}).Debug(reqCtx, "Request completed")

	if httpResp.StatusCode >= 400 {
		return nil, c.mapStatusError(reqCtx, httpResp.StatusCode, body)
	}

	return c.unwrapEnvelope(body)
}

// buildURL joins the base URL, path and query, stripping any caller-supplied
// cancellation token from the query: cancellation is handled out of band and
// must never reach the wire.
func (c *Client) buildURL(req *Request) (string, error) {
	fullURL := c.baseURL + req.Path
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeClientConfig, "invalid request URL")
	}

	if len(req.Query) > 0 {
		query := parsed.Query()
		for key, values := range req.Query {
			if key == "signal" {
				continue
			}
			for _, value := range values {
				query.Add(key, value)
			}
		}
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

// authToken resolves the Authorization header value: the credential store is
// preferred, the session mirror is the fallback.
func (c *Client) authToken() string {
	if token := c.tokens.Read(); token != "" {
		return token
	}
	return c.readFallbackToken()
}

func (c *Client) mapTransportError(ctx context.Context, req *Request, err error) error {
	c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"path":   req.Path,
	}).Error(ctx, "Request execution failed", err)

	if stderrors.Is(err, context.DeadlineExceeded) || errors.IsTimeout(err) {
		return errors.Wrap(err, errors.ErrCodeTimeout, "request timed out")
	}
	return errors.Wrap(err, errors.ErrCodeNetworkUnreachable, "Network error, server unreachable")
}

// mapStatusError maps an HTTP failure status onto the error taxonomy. A 401
// clears the local credential as a side effect before propagating, in the
// store and in any registered secondary holder.
func (c *Client) mapStatusError(ctx context.Context, statusCode int, body []byte) error {
	detail := serverDetail(body)

	switch statusCode {
	case http.StatusUnauthorized:
		if err := c.tokens.Clear(); err != nil {
			c.logger.Warn(ctx, "Failed to clear credential after 401")
		}
		c.notifyUnauthenticated()
		return errors.New(errors.ErrCodeUnauthenticated, "Session expired or not authorized").WithDetails(detail)
	case http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "Requested resource not found")
	case http.StatusInternalServerError:
		message := "Internal server error"
		if detail != "" {
			message = detail
		}
		return errors.New(errors.ErrCodeServerError, message)
	default:
		message := "request failed"
		if detail != "" {
			message = detail
		}
		return errors.New(errors.ErrCodeDomain, message).WithStatusCode(statusCode)
	}
}

// serverDetail pulls the error or message field out of an error response
// body, best effort.
func serverDetail(body []byte) string {
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return ""
	}
	if env.Error != "" {
		return env.Error
	}
	return env.Message
}

// unwrapEnvelope normalizes the heterogeneous response bodies into an
// Envelope: a {code,message,data} wrapper is checked for a success code,
// while bare arrays and bare objects become the envelope's data verbatim.
func (c *Client) unwrapEnvelope(body []byte) (*models.Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &models.Envelope{Code: models.EnvelopeOK}, nil
	}

	if trimmed[0] == '[' {
		return &models.Envelope{Code: models.EnvelopeOK, Data: json.RawMessage(trimmed)}, nil
	}

	var env models.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDomain, "malformed response envelope")
	}

	// Bare payload without the wrapper: no code and no data field.
	if env.Code == 0 && len(env.Data) == 0 {
		return &models.Envelope{Code: models.EnvelopeOK, Data: json.RawMessage(trimmed)}, nil
	}

	if !env.IsSuccess() {
		return nil, errors.New(errors.ErrCodeDomain, env.ErrMessage())
	}
	return &env, nil
}

// Convenience methods for common HTTP operations

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) (*models.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path})
}

// GetWithQuery performs a GET request with query parameters
func (c *Client) GetWithQuery(ctx context.Context, path string, query url.Values) (*models.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*models.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*models.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*models.Envelope, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
