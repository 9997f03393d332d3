package listquery

import "github.com/qaforge/qaforge/internal/docstore"

// Envelope is the uniform paginated result.
type Envelope struct {
	Total      int64
	Page       int
	TotalPages int
	Items      []docstore.Document
}

// NewEnvelope computes page metadata for a result window.
func NewEnvelope(total int64, page, limit int, items []docstore.Document) Envelope {
	if items == nil {
		items = []docstore.Document{}
	}
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Envelope{Total: total, Page: page, TotalPages: totalPages, Items: items}
}

// Body renders the envelope with the item array under key.
func (e Envelope) Body(key string) map[string]any {
	return map[string]any{
		"total":      e.Total,
		"page":       e.Page,
		"totalPages": e.TotalPages,
		key:          e.Items,
	}
}

// Page is an envelope whose items are decoded into T.
type Page[T any] struct {
	Total      int64
	Page       int
	TotalPages int
	Items      []T
}

// DecodePage decodes every envelope item into T.
func DecodePage[T any](env Envelope) (Page[T], error) {
	items := make([]T, 0, len(env.Items))
	for _, doc := range env.Items {
		var item T
		if err := docstore.Decode(doc, &item); err != nil {
			return Page[T]{}, err
		}
		items = append(items, item)
	}
	return Page[T]{Total: env.Total, Page: env.Page, TotalPages: env.TotalPages, Items: items}, nil
}

// Body renders the page with the item array under key.
func (p Page[T]) Body(key string) map[string]any {
	return map[string]any{
		"total":      p.Total,
		"page":       p.Page,
		"totalPages": p.TotalPages,
		key:          p.Items,
	}
}
