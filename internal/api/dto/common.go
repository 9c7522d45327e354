// Package dto defines the JSON shapes of the HTTP API.
package dto

import (
	"net/http"
	"strconv"
)

// ErrorResponse is the uniform error envelope. Message is always a
// sanitized, category-level description; raw store or driver errors
// never reach the client.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse wraps mutation acknowledgements that carry no entity.
type SuccessResponse struct {
	Message string `json:"message"`
}

// PaginatedResponse wraps list results.
type PaginatedResponse struct {
	Data   interface{} `json:"data"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// PaginationParams reads limit/offset from the query string, clamping
// limit to [1,100] and offset to non-negative. Malformed values fall
// back to defaults rather than erroring.
func PaginationParams(r *http.Request) (limit, offset int) {
	limit = defaultLimit
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}
