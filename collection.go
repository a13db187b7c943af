package levyt

import (
	"errors"
	"fmt"

	"github.com/aisola/levyt/dataset"
)

// RowSource produces the records of one query execution, one at a
// time. Next returns (nil, nil) once the source is drained; after that
// it must keep returning (nil, nil). Close releases the underlying
// cursor and must be safe to call more than once.
type RowSource interface {
	Next() (*Record, error)
	Close() error
}

// headerSource is implemented by row sources that know their column
// names up front. It lets an empty collection still export headers.
type headerSource interface {
	Headers() []string
}

// Collection is the lazily realized sequence of records produced by
// one query. Records are pulled from the source on demand and cached
// in order; the cache is always a prefix of the full row sequence.
// Once the source reports end-of-rows the collection is exhausted: the
// source is closed, every operation serves from cache, and the
// collection stays usable after its originating connection closes.
//
// A collection is single-owner: pulling rows from an unexhausted
// collection from multiple goroutines at once is not supported.
type Collection struct {
	source RowSource
	cache  []*Record
	done   bool
}

// NewCollection wraps a row source in a collection. The collection
// takes ownership of the source and closes it on exhaustion.
func NewCollection(source RowSource) *Collection {
	return &Collection{source: source}
}

// pull fetches one more record from the source into the cache. It
// returns (nil, nil) once the source is drained, flipping the
// collection to exhausted.
func (c *Collection) pull() (*Record, error) {
	if c.done {
		return nil, nil
	}
	rec, err := c.source.Next()
	if err != nil {
		return nil, err
	}
	if rec == nil {
		c.done = true
		c.source.Close()
		return nil, nil
	}
	c.cache = append(c.cache, rec)
	return rec, nil
}

// Len returns the number of records realized so far. It does not pull.
func (c *Collection) Len() int {
	return len(c.cache)
}

// Pending reports whether the source may still hold unrealized rows.
func (c *Collection) Pending() bool {
	return !c.done
}

// Get returns the record at position i, pulling rows from the source
// as needed. A negative i resolves against the fully materialized
// length, which forces a full drain first. Fails with
// ErrIndexOutOfRange when the source exhausts before reaching i.
func (c *Collection) Get(i int) (*Record, error) {
	if i < 0 {
		if _, err := c.All(); err != nil {
			return nil, err
		}
		i += len(c.cache)
		if i < 0 {
			return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i-len(c.cache), len(c.cache))
		}
	}
	for len(c.cache) <= i {
		rec, err := c.pull()
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: row %d of %d", ErrIndexOutOfRange, i, len(c.cache))
		}
	}
	return c.cache[i], nil
}

// All materializes every remaining row and returns the complete record
// sequence. Idempotent once the collection is exhausted. The returned
// slice is a copy; the records themselves are shared.
func (c *Collection) All() ([]*Record, error) {
	for !c.done {
		if _, err := c.pull(); err != nil {
			return nil, err
		}
	}
	rows := make([]*Record, len(c.cache))
	copy(rows, c.cache)
	return rows, nil
}

// First returns the record at position 0 without materializing the
// rest. Fails with ErrEmptyResult when the result holds no rows.
func (c *Collection) First() (*Record, error) {
	rec, err := c.Get(0)
	if errors.Is(err, ErrIndexOutOfRange) {
		return nil, ErrEmptyResult
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// One returns the single record of the result, pulling a second row to
// verify there is exactly one. Fails with ErrEmptyResult on zero rows
// and ErrMultipleResults on more than one.
func (c *Collection) One() (*Record, error) {
	first, err := c.First()
	if err != nil {
		return nil, err
	}
	if _, err := c.Get(1); err == nil {
		return nil, ErrMultipleResults
	} else if !errors.Is(err, ErrIndexOutOfRange) {
		return nil, err
	}
	return first, nil
}

// Scalar returns the first column of the exactly-one row of the
// result.
func (c *Collection) Scalar() (any, error) {
	rec, err := c.One()
	if err != nil {
		return nil, err
	}
	return rec.Index(0)
}

// Maps materializes the full result and returns one Map snapshot per
// record.
func (c *Collection) Maps() ([]map[string]any, error) {
	rows, err := c.All()
	if err != nil {
		return nil, err
	}
	maps := make([]map[string]any, len(rows))
	for i, rec := range rows {
		maps[i] = rec.Map()
	}
	return maps, nil
}

// Dataset materializes the full result into a dataset of column
// headers plus rows. An empty result still carries headers when the
// source knows them.
func (c *Collection) Dataset() (*dataset.Dataset, error) {
	rows, err := c.All()
	if err != nil {
		return nil, err
	}
	var headers []string
	if len(rows) > 0 {
		headers = rows[0].Keys()
	} else if hs, ok := c.source.(headerSource); ok {
		headers = hs.Headers()
	}
	ds := dataset.New(headers...)
	for _, rec := range rows {
		if err := ds.Append(rec.Values()); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// Export materializes the full result and encodes it in the named
// format. Unknown format names fail with ErrUnsupportedFormat.
func (c *Collection) Export(format string, opts ...dataset.Option) ([]byte, error) {
	ds, err := c.Dataset()
	if err != nil {
		return nil, err
	}
	return ds.Export(format, opts...)
}

func (c *Collection) String() string {
	return fmt.Sprintf("<Collection size=%d pending=%t>", len(c.cache), !c.done)
}

// Iterator walks a collection front to back, replaying the cache and
// then pulling from the source. Every fresh Iter pass observes the
// identical record sequence.
type Iterator struct {
	c   *Collection
	pos int
	cur *Record
	err error
}

// Iter starts a new pass over the collection at position 0.
func (c *Collection) Iter() *Iterator {
	return &Iterator{c: c}
}

// Next advances the iterator. It returns false at the end of the
// result or on a pull error; check Err afterwards.
func (it *Iterator) Next() bool {
	if it.err != nil {
		return false
	}
	// Another consumer may have grown the cache between calls.
	if it.pos < len(it.c.cache) {
		it.cur = it.c.cache[it.pos]
		it.pos++
		return true
	}
	rec, err := it.c.pull()
	if err != nil {
		it.err = err
		return false
	}
	if rec == nil {
		return false
	}
	it.cur = rec
	it.pos++
	return true
}

// Record returns the record produced by the last successful Next.
func (it *Iterator) Record() *Record {
	return it.cur
}

// Err returns the first pull error hit by this pass, if any.
func (it *Iterator) Err() error {
	return it.err
}
