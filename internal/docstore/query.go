package docstore

// Op identifies a predicate operator.
type Op int

const (
	// OpEq matches documents whose field equals the value.
	OpEq Op = iota
	// OpContains matches documents whose string field contains the value, ignoring case.
	OpContains
	// OpIn matches documents whose field equals one of the values.
	OpIn
	// OpNone matches nothing.
	OpNone
)

// Predicate is a single field condition.
type Predicate struct {
	Field string
	Op    Op
	Value any
}

// Eq builds an equality predicate.
func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Value: value}
}

// Contains builds a case-insensitive substring predicate.
func Contains(field, term string) Predicate {
	return Predicate{Field: field, Op: OpContains, Value: term}
}

// In builds a membership predicate over string values.
func In(field string, values []string) Predicate {
	return Predicate{Field: field, Op: OpIn, Value: append([]string(nil), values...)}
}

// None builds a predicate that never matches.
func None() Predicate {
	return Predicate{Op: OpNone}
}

// Filter is a conjunction of predicates. An empty filter matches everything.
type Filter []Predicate

// Unsatisfiable reports whether the filter contains an OpNone predicate.
func (f Filter) Unsatisfiable() bool {
	for _, p := range f {
		if p.Op == OpNone {
			return true
		}
	}
	return false
}

// Sort orders results by one field.
type Sort struct {
	Field string
	Desc  bool
}

// Query describes a windowed, sorted read.
type Query struct {
	Filter Filter
	Sort   []Sort
	Skip   int64
	// Limit of zero means unbounded.
	Limit int64
	// Fields projects the result; empty keeps every field.
	Fields []string
}
