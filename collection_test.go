package levyt_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aisola/levyt"
)

// sliceSource is a RowSource backed by a fixed record slice.
type sliceSource struct {
	records []*levyt.Record
	headers []string
	pos     int
	closed  bool
}

func (s *sliceSource) Next() (*levyt.Record, error) {
	if s.pos >= len(s.records) {
		return nil, nil
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

func (s *sliceSource) Close() error {
	s.closed = true
	return nil
}

func (s *sliceSource) Headers() []string {
	return s.headers
}

// failSource yields a few records and then fails, standing in for a
// dropped cursor.
type failSource struct {
	remaining int
	err       error
}

func (s *failSource) Next() (*levyt.Record, error) {
	if s.remaining == 0 {
		return nil, s.err
	}
	s.remaining--
	return levyt.NewRecord([]string{"n"}, []any{int64(s.remaining)}), nil
}

func (s *failSource) Close() error { return nil }

func numberedSource(n int) *sliceSource {
	src := &sliceSource{headers: []string{"n", "label"}}
	for i := 0; i < n; i++ {
		src.records = append(src.records, levyt.NewRecord(
			[]string{"n", "label"},
			[]any{int64(i), fmt.Sprintf("row-%d", i)},
		))
	}
	return src
}

func TestCollectionGetPullsLazily(t *testing.T) {
	src := numberedSource(5)
	c := levyt.NewCollection(src)

	rec, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.GetDefault("n", nil))
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Pending())

	// Within the cache, no further pulling.
	rec, err = c.Get(0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.GetDefault("n", nil))
	assert.Equal(t, 2, c.Len())
}

func TestCollectionGetPastEnd(t *testing.T) {
	src := numberedSource(3)
	c := levyt.NewCollection(src)

	_, err := c.Get(7)
	assert.ErrorIs(t, err, levyt.ErrIndexOutOfRange)
	assert.False(t, c.Pending())
	assert.True(t, src.closed)
	assert.Equal(t, 3, c.Len())

	// Exhaustion is sticky: cached access still works.
	rec, err := c.Get(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.GetDefault("n", nil))
}

func TestCollectionGetNegative(t *testing.T) {
	c := levyt.NewCollection(numberedSource(4))

	rec, err := c.Get(-1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.GetDefault("n", nil))
	assert.False(t, c.Pending())

	rec, err = c.Get(-4)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.GetDefault("n", nil))

	_, err = c.Get(-5)
	assert.ErrorIs(t, err, levyt.ErrIndexOutOfRange)
}

func TestCollectionAllIdempotent(t *testing.T) {
	src := numberedSource(3)
	c := levyt.NewCollection(src)

	first, err := c.All()
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.True(t, src.closed)
	assert.False(t, c.Pending())

	second, err := c.All()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// Indexing, iteration and All must agree on order and content.
func TestCollectionAccessIdiomsAgree(t *testing.T) {
	c := levyt.NewCollection(numberedSource(5))

	all, err := c.All()
	require.NoError(t, err)
	require.Len(t, all, 5)

	it := c.Iter()
	for i := 0; it.Next(); i++ {
		assert.True(t, all[i].Equal(it.Record()))
		byIndex, err := c.Get(i)
		require.NoError(t, err)
		assert.True(t, all[i].Equal(byIndex))
	}
	require.NoError(t, it.Err())
}

func TestCollectionIterRestartable(t *testing.T) {
	c := levyt.NewCollection(numberedSource(4))

	// First pass stops halfway.
	it := c.Iter()
	require.True(t, it.Next())
	require.True(t, it.Next())

	// A fresh pass starts at 0 and sees the full sequence.
	var pass1 []*levyt.Record
	it2 := c.Iter()
	for it2.Next() {
		pass1 = append(pass1, it2.Record())
	}
	require.NoError(t, it2.Err())
	require.Len(t, pass1, 4)

	var pass2 []*levyt.Record
	it3 := c.Iter()
	for it3.Next() {
		pass2 = append(pass2, it3.Record())
	}
	require.NoError(t, it3.Err())
	assert.Equal(t, pass1, pass2)
}

func TestCollectionFirst(t *testing.T) {
	c := levyt.NewCollection(numberedSource(3))
	rec, err := c.First()
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.GetDefault("n", nil))
	// First does not force a full drain.
	assert.True(t, c.Pending())

	empty := levyt.NewCollection(numberedSource(0))
	_, err = empty.First()
	assert.ErrorIs(t, err, levyt.ErrEmptyResult)
}

func TestCollectionOne(t *testing.T) {
	_, err := levyt.NewCollection(numberedSource(0)).One()
	assert.ErrorIs(t, err, levyt.ErrEmptyResult)

	rec, err := levyt.NewCollection(numberedSource(1)).One()
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.GetDefault("n", nil))

	_, err = levyt.NewCollection(numberedSource(2)).One()
	assert.ErrorIs(t, err, levyt.ErrMultipleResults)
}

func TestCollectionScalar(t *testing.T) {
	v, err := levyt.NewCollection(numberedSource(1)).Scalar()
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	_, err = levyt.NewCollection(numberedSource(2)).Scalar()
	assert.ErrorIs(t, err, levyt.ErrMultipleResults)
}

func TestCollectionMaps(t *testing.T) {
	maps, err := levyt.NewCollection(numberedSource(2)).Maps()
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, int64(0), maps[0]["n"])
	assert.Equal(t, "row-1", maps[1]["label"])
}

func TestCollectionExport(t *testing.T) {
	out, err := levyt.NewCollection(numberedSource(2)).Export("csv")
	require.NoError(t, err)
	assert.Equal(t, "n,label\n0,row-0\n1,row-1\n", string(out))

	_, err = levyt.NewCollection(numberedSource(1)).Export("nope")
	assert.ErrorIs(t, err, levyt.ErrUnsupportedFormat)
}

// An empty collection still exports headers when the source knows its
// columns.
func TestCollectionExportEmptyKeepsHeaders(t *testing.T) {
	out, err := levyt.NewCollection(numberedSource(0)).Export("csv")
	require.NoError(t, err)
	assert.Equal(t, "n,label\n", string(out))
}

func TestCollectionPullErrorKeepsCache(t *testing.T) {
	cause := errors.New("cursor dropped")
	c := levyt.NewCollection(&failSource{remaining: 2, err: cause})

	_, err := c.Get(1)
	require.NoError(t, err)

	_, err = c.All()
	assert.ErrorIs(t, err, cause)

	// Already-realized rows stay readable.
	rec, err := c.Get(0)
	require.NoError(t, err)
	assert.NotNil(t, rec)
}
