package models

import "encoding/json"

// EnvelopeOK is the only envelope code that signals success. Any other code,
// even inside an HTTP 2xx response, is a domain-level failure.
const EnvelopeOK = 200

// Envelope is the uniform shape of every server response.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// IsSuccess reports whether the envelope carries a success code. A missing
// code (zero value) is treated as success: some endpoints return bare
// payloads without the wrapper.
func (e *Envelope) IsSuccess() bool {
	return e.Code == 0 || e.Code == EnvelopeOK
}

// ErrMessage returns the server-provided failure detail, preferring message
// over error, with a generic fallback.
func (e *Envelope) ErrMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return "request failed"
}

// DecodeData unmarshals the envelope payload into target.
func (e *Envelope) DecodeData(target interface{}) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, target)
}

// Pagination describes the client-side view of a paginated collection.
type Pagination struct {
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	CurrentPage   int   `json:"currentPage"`
	Size          int   `json:"size"`
}

// DefaultPagination returns the zero page with the default page size.
func DefaultPagination() Pagination {
	return Pagination{Size: 10}
}

// Page mirrors the server's paginated collection shape: a content slice plus
// paging metadata with a zero-based current page number.
type Page struct {
	Content       json.RawMessage `json:"content"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
	Number        int             `json:"number"`
	Size          int             `json:"size"`
}
