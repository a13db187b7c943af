package levyt

import (
	"fmt"
	"strings"

	"github.com/aisola/levyt/dataset"
)

// Record is a single row resulting from a query: an immutable, ordered
// view of (column, value) pairs. Column names keep the query's column
// order and are not required to be unique or to be valid identifiers.
type Record struct {
	keys   []string
	values []any
}

// NewRecord builds a record from parallel column-name and value slices.
// Both slices are copied; the record shares no state with the caller.
func NewRecord(keys []string, values []any) *Record {
	if len(keys) != len(values) {
		panic(fmt.Sprintf("levyt: record needs matching keys and values, got %d keys and %d values", len(keys), len(values)))
	}
	r := &Record{
		keys:   make([]string, len(keys)),
		values: make([]any, len(values)),
	}
	copy(r.keys, keys)
	copy(r.values, values)
	return r
}

// Keys returns the column names in query order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Values returns the column values in query order.
func (r *Record) Values() []any {
	values := make([]any, len(r.values))
	copy(values, r.values)
	return values
}

// Len returns the number of columns.
func (r *Record) Len() int {
	return len(r.keys)
}

// Index returns the value at position i. It fails with
// ErrIndexOutOfRange when i is outside [0, Len).
func (r *Record) Index(i int) (any, error) {
	if i < 0 || i >= len(r.values) {
		return nil, fmt.Errorf("%w: column %d of %d", ErrIndexOutOfRange, i, len(r.values))
	}
	return r.values[i], nil
}

// Get returns the value for the named column. When the record carries
// duplicate column names the FIRST matching column wins; this is a
// deliberate policy, not an error. Fails with ErrNoSuchColumn when the
// name is absent.
func (r *Record) Get(name string) (any, error) {
	for i, k := range r.keys {
		if k == name {
			return r.values[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSuchColumn, name)
}

// GetDefault returns the value for the named column, or def when the
// column is absent. It never fails.
func (r *Record) GetDefault(name string, def any) any {
	v, err := r.Get(name)
	if err != nil {
		return def
	}
	return v
}

// Map returns a fresh name-to-value snapshot. Mutating the returned map
// does not affect the record. For duplicate column names the first
// occurrence wins, matching Get; column order remains observable
// through Keys.
func (r *Record) Map() map[string]any {
	m := make(map[string]any, len(r.keys))
	for i, k := range r.keys {
		if _, ok := m[k]; !ok {
			m[k] = r.values[i]
		}
	}
	return m
}

// Equal reports whether two records carry the same columns and values
// in the same order.
func (r *Record) Equal(other *Record) bool {
	if other == nil || len(r.keys) != len(other.keys) {
		return false
	}
	for i := range r.keys {
		if r.keys[i] != other.keys[i] || r.values[i] != other.values[i] {
			return false
		}
	}
	return true
}

// Dataset returns a single-row dataset containing the record.
func (r *Record) Dataset() *dataset.Dataset {
	ds := dataset.New(r.keys...)
	ds.Append(r.values)
	return ds
}

// Export encodes the record as a one-row table in the given format.
func (r *Record) Export(format string, opts ...dataset.Option) ([]byte, error) {
	return r.Dataset().Export(format, opts...)
}

func (r *Record) String() string {
	var b strings.Builder
	b.WriteString("<Record ")
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, r.values[i])
	}
	b.WriteString(">")
	return b.String()
}
