package api

import (
	"context"
	"net/http"
	"time"

	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// AI query timing. Parse attempts start at one minute and grow by thirty
// seconds per retry; the wait between attempts grows linearly from two
// seconds.
const (
	parseBaseTimeout  = 60 * time.Second
	parseTimeoutStep  = 30 * time.Second
	retryBaseWait     = 2 * time.Second
	retryWaitStep     = 1 * time.Second
	insightsTimeout   = 90 * time.Second
	DefaultMaxRetries = 3
)

// requestDoer is the slice of the transport the AI module needs; tests
// substitute a synthetic one to observe per-attempt timeouts.
type requestDoer interface {
	Do(ctx context.Context, req *transport.Request) (*models.Envelope, error)
}

// AIAPI issues free-text analytics queries. This is the only module with an
// explicit failure-recovery policy: bounded retry on timeout-class errors
// only.
type AIAPI struct {
	c     requestDoer
	sleep func(time.Duration)
}

// NewAIAPI creates an AI query module
func NewAIAPI(c *transport.Client) *AIAPI {
	return &AIAPI{c: c, sleep: time.Sleep}
}

type parseRequest struct {
	Input     string `json:"input"`
	Confirmed bool   `json:"confirmed"`
}

type insightsRequest struct {
	Input        string `json:"input"`
	AnalysisType string `json:"analysisType"`
	DataContext  string `json:"dataContext"`
}

// Parse issues a single natural-language query with the base timeout and no
// retry.
func (a *AIAPI) Parse(ctx context.Context, input string, confirmed bool) (*models.Envelope, error) {
	return a.parseAttempt(ctx, input, confirmed, 0)
}

// ParseWithRetry issues a natural-language query with bounded retry. Each
// attempt's timeout escalates; only timeout-class failures are retried, with
// a linearly growing wait between attempts. Any other failure, or an
// exhausted budget, propagates immediately.
func (a *AIAPI) ParseWithRetry(ctx context.Context, input string, confirmed bool, maxRetries int) (*models.Envelope, error) {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		env, err := a.parseAttempt(ctx, input, confirmed, attempt)
		if err == nil {
			return env, nil
		}
		if !errors.IsTimeout(err) {
			return nil, err
		}
		if attempt >= maxRetries {
			return nil, errors.Wrap(err, errors.ErrCodeRetryExhausted, "AI query retry budget exhausted")
		}
		a.sleep(retryBaseWait + time.Duration(attempt)*retryWaitStep)
	}
}

func (a *AIAPI) parseAttempt(ctx context.Context, input string, confirmed bool, attempt int) (*models.Envelope, error) {
	return a.c.Do(ctx, &transport.Request{
		Method:  http.MethodPost,
		Path:    "/ai/parse",
		Body:    &parseRequest{Input: input, Confirmed: confirmed},
		Timeout: parseBaseTimeout + time.Duration(attempt)*parseTimeoutStep,
	})
}

// Insights requests a business-insight analysis, with a longer timeout for
// the heavier computation and no retry.
func (a *AIAPI) Insights(ctx context.Context, input, analysisType, dataContext string) (*models.Envelope, error) {
	return a.c.Do(ctx, &transport.Request{
		Method:  http.MethodPost,
		Path:    "/ai/insights",
		Body:    &insightsRequest{Input: input, AnalysisType: analysisType, DataContext: dataContext},
		Timeout: insightsTimeout,
	})
}
