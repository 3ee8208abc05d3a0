// internal/core/domain/paging.go
package domain

// DefaultPageSize is the fixed number of items requested per page
const DefaultPageSize = 5

// ListParams are the query parameters of a collection request
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// Page is a normalized list response, whatever shape the server sent
type Page[T any] struct {
	Items      []T
	TotalPages int
	TotalItems int
}

// PageState tracks where a list controller is within a collection
type PageState struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
}

// NewPageState returns the state before the first fetch
func NewPageState() PageState {
	return PageState{CurrentPage: 1, TotalPages: 1}
}

// Contains reports whether n is a page the controller may move to
func (p PageState) Contains(n int) bool {
	return n >= 1 && n <= p.TotalPages
}

// HasPrev reports whether there is a page before the current one
func (p PageState) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether there is a page after the current one
func (p PageState) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// SearchState separates what is typed from what is sent
type SearchState struct {
	Draft     string `json:"draft"`
	Committed string `json:"committed"`
}
