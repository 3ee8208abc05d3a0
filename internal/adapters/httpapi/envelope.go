// internal/adapters/httpapi/envelope.go
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ammerola/stockdesk/internal/core/domain"
)

// pagination is the metadata block of a list envelope
type pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// listEnvelope is the {data, pagination} response shape
type listEnvelope[T any] struct {
	Data       []T         `json:"data"`
	Pagination *pagination `json:"pagination"`
	Meta       *pagination `json:"meta"`
}

// decodeList normalizes a collection response. The API answers either with a
// bare array, treated as a single page, or with a {data, pagination} envelope.
func decodeList[T any](body []byte) (*domain.Page[T], error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &domain.Page[T]{Items: []T{}, TotalPages: 1}, nil
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}
		if items == nil {
			items = []T{}
		}
		return &domain.Page[T]{Items: items, TotalPages: 1, TotalItems: len(items)}, nil

	case '{':
		var env listEnvelope[T]
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("failed to decode list envelope: %w", err)
		}
		if env.Data == nil {
			env.Data = []T{}
		}

		meta := env.Pagination
		if meta == nil {
			meta = env.Meta
		}

		page := &domain.Page[T]{Items: env.Data, TotalPages: 1, TotalItems: len(env.Data)}
		if meta != nil {
			total := meta.Total
			if total == 0 {
				total = meta.TotalItems
			}
			if total > 0 {
				page.TotalItems = total
			}

			switch {
			case meta.TotalPages > 0:
				page.TotalPages = meta.TotalPages
			case total > 0 && meta.Limit > 0:
				page.TotalPages = (total + meta.Limit - 1) / meta.Limit
			}
		}
		return page, nil

	default:
		return nil, fmt.Errorf("unexpected list response starting with %q", trimmed[0])
	}
}

// decodeItems reads a bare array or the data field of an envelope
func decodeItems[T any](body []byte) ([]T, error) {
	page, err := decodeList[T](body)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
