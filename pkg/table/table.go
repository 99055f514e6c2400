// Package table reads, rewrites, and annotates tabular files with normalized
// country columns.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Table is an in-memory table of string cells with ordered, named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadOptions control how a source CSV is parsed.
type ReadOptions struct {
	Delimiter rune   // 0 means comma
	Encoding  string // htmlindex name; "" or utf-8 means no transcoding
}

// ReadCSV parses a CSV file into a Table. The first row is the header. Short
// rows are padded so every row has one cell per column.
func ReadCSV(path string, opts ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := opts.Encoding; enc != "" && !strings.EqualFold(strings.ReplaceAll(enc, "-", ""), "utf8") {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if opts.Delimiter != 0 {
		r.Comma = opts.Delimiter
	}
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Columns: header}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", path, err)
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		t.Rows = append(t.Rows, record[:len(header)])
	}
	return t, nil
}

// WriteCSV writes the table as comma-delimited UTF-8.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ColumnIndex returns the position of a named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// InsertColumn inserts a column at idx with one value per row. Values beyond
// the current row count are ignored; missing values become empty cells.
func (t *Table) InsertColumn(idx int, name string, values []string) {
	if idx < 0 || idx > len(t.Columns) {
		idx = len(t.Columns)
	}
	t.Columns = append(t.Columns, "")
	copy(t.Columns[idx+1:], t.Columns[idx:])
	t.Columns[idx] = name

	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		row := append(t.Rows[i], "")
		copy(row[idx+1:], row[idx:])
		row[idx] = v
		t.Rows[i] = row
	}
}
