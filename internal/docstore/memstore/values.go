package memstore

import (
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/qaforge/qaforge/internal/docstore"
)

func matches(doc docstore.Document, filter docstore.Filter) bool {
	for _, p := range filter {
		if !matchPredicate(doc, p) {
			return false
		}
	}
	return true
}

func matchPredicate(doc docstore.Document, p docstore.Predicate) bool {
	if p.Op == docstore.OpNone {
		return false
	}
	value, ok := doc.Lookup(p.Field)
	if !ok {
		return false
	}
	switch p.Op {
	case docstore.OpEq:
		return anyElement(value, func(v any) bool { return equal(v, p.Value) })
	case docstore.OpContains:
		term, _ := p.Value.(string)
		return anyElement(value, func(v any) bool {
			s, ok := v.(string)
			return ok && containsFold(s, term)
		})
	case docstore.OpIn:
		set, _ := p.Value.([]string)
		return anyElement(value, func(v any) bool {
			s, ok := v.(string)
			if !ok {
				return false
			}
			for _, candidate := range set {
				if candidate == s {
					return true
				}
			}
			return false
		})
	}
	return false
}

// anyElement applies fn to value, or to each element when value is an array.
func anyElement(value any, fn func(any) bool) bool {
	switch arr := value.(type) {
	case []any:
		for _, v := range arr {
			if fn(v) {
				return true
			}
		}
		return false
	case []string:
		for _, v := range arr {
			if fn(v) {
				return true
			}
		}
		return false
	default:
		return fn(value)
	}
}

func containsFold(s, term string) bool {
	return strings.Contains(cases.Fold().String(s), cases.Fold().String(term))
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch rank(a) {
	case 3, 4, 7:
		return reflect.DeepEqual(a, b)
	}
	return rank(a) == rank(b) && compare(a, b) == 0
}

// rank orders value types the way document databases do: null, numbers, strings,
// objects, arrays, booleans, dates.
func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case int, int32, int64, float32, float64:
		return 1
	case string:
		return 2
	case map[string]any, docstore.Document:
		return 3
	case []any, []string:
		return 4
	case bool:
		return 5
	case time.Time:
		return 6
	default:
		return 7
	}
}

func compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case string:
		return strings.Compare(av, b.(string))
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case time.Time:
		return av.Compare(b.(time.Time))
	}
	if ra == 1 {
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}
