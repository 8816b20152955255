package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daacooerp/erpclient/pkg/errors"
	"github.com/daacooerp/erpclient/pkg/models"
	"github.com/daacooerp/erpclient/pkg/transport"
)

// scriptedDoer fails attempts according to a script and records each
// attempt's timeout.
type scriptedDoer struct {
	failures []error
	timeouts []time.Duration
	attempts int
}

func (d *scriptedDoer) Do(_ context.Context, req *transport.Request) (*models.Envelope, error) {
	d.timeouts = append(d.timeouts, req.Timeout)
	idx := d.attempts
	d.attempts++
	if idx < len(d.failures) && d.failures[idx] != nil {
		return nil, d.failures[idx]
	}
	return &models.Envelope{Code: 200}, nil
}

func timeoutErr() error {
	return errors.New(errors.ErrCodeTimeout, "request timed out")
}

func newRetryAPI(doer *scriptedDoer) (*AIAPI, *[]time.Duration) {
	waits := &[]time.Duration{}
	ai := &AIAPI{
		c:     doer,
		sleep: func(d time.Duration) { *waits = append(*waits, d) },
	}
	return ai, waits
}

func TestParseWithRetryExhaustsBudget(t *testing.T) {
	doer := &scriptedDoer{failures: []error{timeoutErr(), timeoutErr(), timeoutErr(), timeoutErr()}}
	ai, waits := newRetryAPI(doer)

	_, err := ai.ParseWithRetry(context.Background(), "sales trend", false, 3)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeRetryExhausted))
	assert.True(t, errors.IsTimeout(err), "final timeout remains reachable through unwrap")

	// maxRetries=3 means exactly 4 attempts.
	assert.Equal(t, 4, doer.attempts)

	// Timeouts escalate: 60s + 30s per attempt index.
	assert.Equal(t, []time.Duration{
		60 * time.Second,
		90 * time.Second,
		120 * time.Second,
		150 * time.Second,
	}, doer.timeouts)

	// Waits grow linearly: 2s + 1s per attempt index.
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		3 * time.Second,
		4 * time.Second,
	}, *waits)
}

func TestParseWithRetrySucceedsMidway(t *testing.T) {
	doer := &scriptedDoer{failures: []error{timeoutErr(), nil}}
	ai, waits := newRetryAPI(doer)

	env, err := ai.ParseWithRetry(context.Background(), "sales trend", true, 3)

	require.NoError(t, err)
	assert.True(t, env.IsSuccess())
	assert.Equal(t, 2, doer.attempts)
	assert.Equal(t, []time.Duration{2 * time.Second}, *waits)
}

func TestParseWithRetryNonTimeoutFailsFast(t *testing.T) {
	doer := &scriptedDoer{failures: []error{errors.New(errors.ErrCodeDomain, "model rejected input")}}
	ai, waits := newRetryAPI(doer)

	_, err := ai.ParseWithRetry(context.Background(), "sales trend", false, 3)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeDomain))
	assert.Equal(t, 1, doer.attempts, "non-timeout failures are never retried")
	assert.Empty(t, *waits)
}

func TestParseUsesBaseTimeout(t *testing.T) {
	doer := &scriptedDoer{}
	ai, _ := newRetryAPI(doer)

	_, err := ai.Parse(context.Background(), "sales trend", false)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{60 * time.Second}, doer.timeouts)
}

func TestInsightsUsesLongTimeout(t *testing.T) {
	doer := &scriptedDoer{}
	ai, _ := newRetryAPI(doer)

	_, err := ai.Insights(context.Background(), "q3 revenue", "trend", "")

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{90 * time.Second}, doer.timeouts)
}
