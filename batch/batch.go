// Package batch converts between delimited text files and the row batches written to and
// read from a worksheet.
package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Batch is an ordered set of rows, optionally with the header that came with them. Rows are
// written in order and are expected to already be in final column order.
type Batch struct {
	Header []any
	Rows   [][]any
}

// Read parses a delimited file. If header is set the first record is returned as the batch
// header rather than as a row.
func Read(f io.Reader, comma rune, header bool) (*Batch, error) {
	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	b := Batch{
		Rows: [][]any{},
	}

	if header {
		if len(records) == 0 {
			return nil, fmt.Errorf("file missing header")
		}

		b.Header = row(records[0])
		records = records[1:]
	}

	for _, record := range records {
		b.Rows = append(b.Rows, row(record))
	}

	return &b, nil
}

// ReadTSV is Read for tab separated files.
func ReadTSV(f io.Reader, header bool) (*Batch, error) {
	return Read(f, '\t', header)
}

// Write formats worksheet values as a delimited file, one record per row.
func Write(f io.Writer, comma rune, values [][]any) error {
	if len(values) == 0 {
		return fmt.Errorf("empty sheet")
	}

	w := csv.NewWriter(f)
	w.Comma = comma

	for _, v := range values {
		record := make([]string, len(v))
		for i, cell := range v {
			if cell != nil {
				record[i] = clean(fmt.Sprintf("%v", cell))
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

// WriteTSV is Write for tab separated files.
func WriteTSV(f io.Writer, values [][]any) error {
	return Write(f, '\t', values)
}

// Comma returns the field delimiter for a file name: ',' for .csv files and tab otherwise.
func Comma(file string) rune {
	if strings.HasSuffix(strings.ToLower(file), ".csv") {
		return ','
	}

	return '\t'
}

func row(record []string) []any {
	r := make([]any, len(record))
	for i, v := range record {
		r[i] = clean(v)
	}

	return r
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
