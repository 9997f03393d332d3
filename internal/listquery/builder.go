package listquery

import (
	"github.com/qaforge/qaforge/internal/docstore"
)

// Config describes how one entity's list operation behaves.
type Config struct {
	Collection string
	// DefaultSort is the field used when the request names none or an invalid one.
	DefaultSort string
	// ShowDeleted flips the soft-delete default so deleted documents are listed
	// unless the caller filters them out.
	ShowDeleted bool
	// Scope adds fixed predicates, e.g. restricting steps to one plan.
	Scope docstore.Filter
	// Hidden fields may be neither filtered nor sorted on.
	Hidden []string
	// Expand lists reference fields merged into each item.
	Expand []Expansion
}

// Plan is the storage-level query derived from a request.
type Plan struct {
	Filter docstore.Filter
	Sort   []docstore.Sort
	Skip   int64
	Limit  int64
	Page   int
}

// Build derives the query plan for params under cfg. It performs no I/O.
func Build(cfg Config, params Params) Plan {
	p := params.Normalize()

	filter := make(docstore.Filter, 0, len(cfg.Scope)+2)
	filter = append(filter, cfg.Scope...)
	if !p.IncludeDeleted && !cfg.ShowDeleted {
		filter = append(filter, docstore.Eq(docstore.FieldDeleted, false))
	}
	if p.FilterBy != "" && p.FilterTerm != "" {
		if ValidField(p.FilterBy) && !cfg.hidden(p.FilterBy) {
			filter = append(filter, docstore.Contains(p.FilterBy, p.FilterTerm))
		} else {
			filter = append(filter, docstore.None())
		}
	}

	sortField := cfg.DefaultSort
	if sortField == "" {
		sortField = docstore.FieldCreatedAt
	}
	if p.SortBy != "" && ValidField(p.SortBy) && !cfg.hidden(p.SortBy) {
		sortField = p.SortBy
	}
	order := []docstore.Sort{{Field: sortField, Desc: p.Order == OrderDesc}}
	if sortField != docstore.FieldID {
		order = append(order, docstore.Sort{Field: docstore.FieldID})
	}

	return Plan{
		Filter: filter,
		Sort:   order,
		Skip:   int64(p.Page-1) * int64(p.Limit),
		Limit:  int64(p.Limit),
		Page:   p.Page,
	}
}

func (c Config) hidden(field string) bool {
	for _, h := range c.Hidden {
		if field == h || len(field) > len(h) && field[:len(h)+1] == h+"." {
			return true
		}
	}
	return false
}
