package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daacooerp/erpclient/pkg/errors"
)

func TestEnvelopeIsSuccess(t *testing.T) {
	tests := []struct {
		name string
		code int
		want bool
	}{
		{"explicit 200", 200, true},
		{"missing code", 0, true},
		{"domain failure", 403, false},
		{"server-declared error", 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := &Envelope{Code: tt.code}
			assert.Equal(t, tt.want, env.IsSuccess())
		})
	}
}

func TestEnvelopeErrMessage(t *testing.T) {
	assert.Equal(t, "no permission", (&Envelope{Message: "no permission"}).ErrMessage())
	assert.Equal(t, "boom", (&Envelope{Error: "boom"}).ErrMessage())
	assert.Equal(t, "request failed", (&Envelope{}).ErrMessage())
	assert.Equal(t, "msg wins", (&Envelope{Message: "msg wins", Error: "err loses"}).ErrMessage())
}

func TestEnvelopeDecodeData(t *testing.T) {
	env := &Envelope{Data: json.RawMessage(`{"id": 7, "name": "ACME"}`)}

	var company Company
	require.NoError(t, env.DecodeData(&company))
	assert.Equal(t, int64(7), company.ID)
	assert.Equal(t, "ACME", company.Name)

	empty := &Envelope{}
	assert.NoError(t, empty.DecodeData(&company))
}

func TestFinanceRecordDecimalRoundTrip(t *testing.T) {
	raw := `{"id":1,"income":"1999.99","expense":"100.01","profit":"1899.98"}`

	var record FinanceRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, "1999.99", record.Income.String())
	assert.Equal(t, "1899.98", record.Profit.String())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(&LoginRequest{Username: "admin", Password: "x"}))

	err := Validate(&LoginRequest{Username: "admin"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))

	err = Validate(&Company{Email: "not-an-email"})
	require.Error(t, err)
	appErr, ok := errors.IsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Details, "Email")
}
