package docstore

// FilterOp enumerates the supported comparison operators.
type FilterOp int

const (
	OpEqual FilterOp = iota
	OpGreaterThan
	OpLessThan
)

// Filter is a single field comparison.
type Filter struct {
	Field string
	Op    FilterOp
	Value any
}

// Query describes a filtered, optionally ordered and limited read of a
// collection. The zero value matches everything. Builder methods return a
// copy, so queries can be shared and extended safely.
type Query struct {
	filters    []Filter
	orderBy    string
	descending bool
	limit      int
}

// NewQuery returns the match-everything query.
func NewQuery() Query { return Query{} }

func (q Query) where(field string, op FilterOp, value any) Query {
	out := q
	out.filters = append(append([]Filter(nil), q.filters...), Filter{Field: field, Op: op, Value: value})
	return out
}

// WhereEqual adds an equality filter.
func (q Query) WhereEqual(field string, value any) Query {
	return q.where(field, OpEqual, value)
}

// WhereGreaterThan adds a greater-than filter.
func (q Query) WhereGreaterThan(field string, value any) Query {
	return q.where(field, OpGreaterThan, value)
}

// WhereLessThan adds a less-than filter.
func (q Query) WhereLessThan(field string, value any) Query {
	return q.where(field, OpLessThan, value)
}

// OrderBy sorts results by field.
func (q Query) OrderBy(field string, descending bool) Query {
	out := q
	out.orderBy = field
	out.descending = descending
	return out
}

// Limit caps the number of results; n <= 0 means no cap.
func (q Query) Limit(n int) Query {
	out := q
	out.limit = n
	return out
}

// Filters exposes the accumulated filters.
func (q Query) Filters() []Filter { return q.filters }

// Order exposes the ordering field ("" when unordered) and direction.
func (q Query) Order() (field string, descending bool) { return q.orderBy, q.descending }

// Max exposes the result cap (0 when uncapped).
func (q Query) Max() int { return q.limit }
