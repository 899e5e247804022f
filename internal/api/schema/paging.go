// Package schema defines the wire types of the admin API. Localized bodies
// merge a typed fixed part with dynamically derived per-language keys; the
// merge happens only in MarshalJSON/UnmarshalJSON so handlers and
// repositories never see flat keys.
package schema

// Paged is the generic paged list contract shared by every collection.
type Paged[T any] struct {
	Content       []T  `json:"content"`
	Page          int  `json:"page"`
	Size          int  `json:"size"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Last          bool `json:"last"`
}

// NewPaged assembles the paged envelope for one page of items.
func NewPaged[T any](items []T, page, size, total int) Paged[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Paged[T]{
		Content:       items,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    pages,
		Last:          page >= pages-1,
	}
}
