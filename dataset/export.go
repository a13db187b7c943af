package dataset

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Format names understood by Export.
const (
	FormatCSV  = "csv"
	FormatTSV  = "tsv"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
	FormatXLSX = "xlsx"
)

// Formats returns the supported export format names.
func Formats() []string {
	return []string{FormatCSV, FormatTSV, FormatJSON, FormatYAML, FormatHTML, FormatXLSX}
}

// Supported reports whether Export recognizes the format name.
func Supported(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return false
}

type exportOptions struct {
	delimiter rune
	indent    string
	sheet     string
}

// Option adjusts format-specific encoding behavior.
type Option func(*exportOptions)

// WithDelimiter overrides the field delimiter for delimited-text
// formats.
func WithDelimiter(d rune) Option {
	return func(o *exportOptions) { o.delimiter = d }
}

// WithIndent enables indented JSON output using the given indent
// string.
func WithIndent(indent string) Option {
	return func(o *exportOptions) { o.indent = indent }
}

// WithSheet sets the worksheet name for spreadsheet output.
func WithSheet(name string) Option {
	return func(o *exportOptions) { o.sheet = name }
}

// Export encodes the dataset in the named format. Unknown format names
// fail with ErrUnsupportedFormat.
func (d *Dataset) Export(format string, opts ...Option) ([]byte, error) {
	o := exportOptions{sheet: "Sheet1"}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatCSV:
		if o.delimiter == 0 {
			o.delimiter = ','
		}
		return d.exportDelimited(o.delimiter)
	case FormatTSV:
		if o.delimiter == 0 {
			o.delimiter = '\t'
		}
		return d.exportDelimited(o.delimiter)
	case FormatJSON:
		return d.exportJSON(o.indent)
	case FormatYAML:
		return d.exportYAML()
	case FormatHTML:
		return d.exportHTML()
	case FormatXLSX:
		return d.exportXLSX(o.sheet)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func (d *Dataset) exportDelimited(delimiter rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if len(d.headers) > 0 {
		if err := w.Write(d.headers); err != nil {
			return nil, err
		}
	}
	record := make([]string, len(d.headers))
	for _, row := range d.rows {
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// exportJSON writes an array of objects, one per row, keeping the
// header order. encoding/json sorts map keys, so the objects are
// assembled by hand.
func (d *Dataset) exportJSON(indent string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range d.rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, h := range d.headers {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(h)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(cellValue(row[j]))
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	if indent != "" {
		var out bytes.Buffer
		if err := json.Indent(&out, buf.Bytes(), "", indent); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	}
	return buf.Bytes(), nil
}

// exportYAML writes a sequence of mappings, one per row. yaml.Node is
// used directly so the mapping keys keep the header order.
func (d *Dataset) exportYAML() ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range d.rows {
		mapping := &yaml.Node{Kind: yaml.MappingNode}
		for j, h := range d.headers {
			key := &yaml.Node{Kind: yaml.ScalarNode, Value: h}
			val := &yaml.Node{}
			if err := val.Encode(cellValue(row[j])); err != nil {
				return nil, err
			}
			mapping.Content = append(mapping.Content, key, val)
		}
		seq.Content = append(seq.Content, mapping)
	}
	return yaml.Marshal(seq)
}

func (d *Dataset) exportHTML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("<table>\n<thead>\n<tr>")
	for _, h := range d.headers {
		fmt.Fprintf(&buf, "<th>%s</th>", html.EscapeString(h))
	}
	buf.WriteString("</tr>\n</thead>\n<tbody>\n")
	for _, row := range d.rows {
		buf.WriteString("<tr>")
		for _, v := range row {
			fmt.Fprintf(&buf, "<td>%s</td>", html.EscapeString(cellString(v)))
		}
		buf.WriteString("</tr>\n")
	}
	buf.WriteString("</tbody>\n</table>\n")
	return buf.Bytes(), nil
}

func (d *Dataset) exportXLSX(sheet string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return nil, err
		}
	}
	for i, h := range d.headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, row := range d.rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
