package dataset_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/aisola/levyt/dataset"
)

func sample() *dataset.Dataset {
	ds := dataset.New("n", "label")
	ds.Append([]any{int64(1), "one"})
	ds.Append([]any{int64(2), "two"})
	return ds
}

func TestDatasetShape(t *testing.T) {
	ds := sample()
	assert.Equal(t, []string{"n", "label"}, ds.Headers())
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, 2, ds.Width())

	rows := ds.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []any{int64(1), "one"}, rows[0])

	// Rows returns copies.
	rows[0][0] = int64(99)
	assert.Equal(t, []any{int64(1), "one"}, ds.Rows()[0])
}

func TestDatasetAppendWidthMismatch(t *testing.T) {
	ds := dataset.New("a", "b")
	assert.Error(t, ds.Append([]any{1}))
	assert.Error(t, ds.Append([]any{1, 2, 3}))
	assert.NoError(t, ds.Append([]any{1, 2}))
}

func TestDatasetColumns(t *testing.T) {
	cols := sample().Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, "n", cols[0].Name)
	assert.Equal(t, []any{int64(1), int64(2)}, cols[0].Values)
	assert.Equal(t, "label", cols[1].Name)
	assert.Equal(t, []any{"one", "two"}, cols[1].Values)
}

func TestExportCSVAndTSV(t *testing.T) {
	out, err := sample().Export(dataset.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "n,label\n1,one\n2,two\n", string(out))

	out, err = sample().Export(dataset.FormatTSV)
	require.NoError(t, err)
	assert.Equal(t, "n\tlabel\n1\tone\n2\ttwo\n", string(out))

	out, err = sample().Export(dataset.FormatCSV, dataset.WithDelimiter(';'))
	require.NoError(t, err)
	assert.Equal(t, "n;label\n1;one\n2;two\n", string(out))
}

func TestExportJSON(t *testing.T) {
	out, err := sample().Export(dataset.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `[{"n":1,"label":"one"},{"n":2,"label":"two"}]`, string(out))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "two", decoded[1]["label"])

	indented, err := sample().Export(dataset.FormatJSON, dataset.WithIndent("  "))
	require.NoError(t, err)
	assert.True(t, bytes.Contains(indented, []byte("\n")))
}

func TestExportYAML(t *testing.T) {
	out, err := sample().Export(dataset.FormatYAML)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, 1, decoded[0]["n"])
	assert.Equal(t, "one", decoded[0]["label"])
}

func TestExportHTML(t *testing.T) {
	ds := dataset.New("tag")
	ds.Append([]any{"<b>&bold</b>"})

	out, err := ds.Export(dataset.FormatHTML)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<th>tag</th>")
	assert.Contains(t, html, "&lt;b&gt;&amp;bold&lt;/b&gt;")
	assert.NotContains(t, html, "<b>&bold</b>")
}

func TestExportXLSX(t *testing.T) {
	out, err := sample().Export(dataset.FormatXLSX, dataset.WithSheet("Results"))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"n", "label"}, rows[0])
	assert.Equal(t, []string{"1", "one"}, rows[1])
}

func TestExportTimestampsAsRFC3339(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	ds := dataset.New("at")
	ds.Append([]any{when})

	out, err := ds.Export(dataset.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "at\n2024-05-01T12:30:00Z\n", string(out))

	out, err = ds.Export(dataset.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `[{"at":"2024-05-01T12:30:00Z"}]`, string(out))
}

func TestExportNilCells(t *testing.T) {
	ds := dataset.New("a", "b")
	ds.Append([]any{nil, "x"})

	out, err := ds.Export(dataset.FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n,x\n", string(out))
}

func TestExportUnsupportedFormat(t *testing.T) {
	_, err := sample().Export("parquet")
	assert.ErrorIs(t, err, dataset.ErrUnsupportedFormat)
}

func TestSupported(t *testing.T) {
	for _, f := range dataset.Formats() {
		assert.True(t, dataset.Supported(f))
	}
	assert.False(t, dataset.Supported("parquet"))
	assert.False(t, dataset.Supported(""))
}
