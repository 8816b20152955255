package store

import (
	"bytes"
	"encoding/json"

	"github.com/daacooerp/erpclient/pkg/models"
)

// normalizeList converges the three list response shapes onto a flat slice
// plus optional pagination: a content-wrapped page, a bare array, or
// anything else (which fails soft to an empty slice, never a crash).
// A nil pagination means the response carried no paging metadata and the
// store keeps its prior values.
func normalizeList[T any](env *models.Envelope) ([]T, *models.Pagination) {
	empty := []T{}
	if env == nil || len(env.Data) == 0 {
		return empty, nil
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 {
		return empty, nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return empty, nil
		}
		if items == nil {
			return empty, nil
		}
		return items, nil
	}

	if data[0] == '{' {
		var page models.Page
		if err := json.Unmarshal(data, &page); err != nil {
			return empty, nil
		}
		if page.Content == nil {
			return empty, nil
		}
		var items []T
		if err := json.Unmarshal(page.Content, &items); err != nil {
			return empty, nil
		}
		if items == nil {
			items = empty
		}
		return items, &models.Pagination{
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
			CurrentPage:   page.Number,
			Size:          page.Size,
		}
	}

	return empty, nil
}

// decodeCurrent decodes a detail payload, failing soft to nil on an empty or
// unrecognizable body.
func decodeCurrent[T any](env *models.Envelope) *T {
	if env == nil || len(env.Data) == 0 {
		return nil
	}
	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		return nil
	}
	return &value
}
