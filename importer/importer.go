// Package importer bulk-loads spreadsheet rows through an entity form, so
// every row gets the same checks as a record typed in by hand.
package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"resto/form"
)

// RowError reports one rejected row. Row is the 1-based sheet row.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type Result struct {
	Imported int        `json:"imported"`
	Failed   []RowError `json:"failed"`
}

// ReadRows reads a .xlsx or .csv file whose first row holds the field names.
func ReadRows(filename string, r io.Reader) ([]map[string]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readExcel(r)
	case ".csv":
		rows, err := gocsv.CSVToMaps(r)
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		return trimKeys(rows), nil
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
}

func readExcel(r io.Reader) ([]map[string]string, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse excel file: %w", err)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}
	rows, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		out = append(out, rec)
	}
	return trimKeys(out), nil
}

func trimKeys(rows []map[string]string) []map[string]string {
	for i, row := range rows {
		clean := make(map[string]string, len(row))
		for k, v := range row {
			if k = strings.TrimSpace(k); k != "" {
				clean[k] = strings.TrimSpace(v)
			}
		}
		rows[i] = clean
	}
	return rows
}

// Import submits each row as a new record. Columns that are not form inputs
// are ignored. Rejected rows are reported and do not stop the import.
func Import[T any](ctx context.Context, f *form.Controller[T], rows []map[string]string) Result {
	res := Result{Failed: []RowError{}}
	for i, row := range rows {
		f.OpenForCreate()
		values := make(map[string]any, len(row))
		for k, v := range row {
			if f.HasField(k) {
				values[k] = v
			}
		}
		err := f.SetFields(values)
		if err == nil {
			_, err = f.Submit(ctx)
		}
		if err != nil {
			f.Cancel()
			res.Failed = append(res.Failed, RowError{Row: i + 2, Error: err.Error()})
			continue
		}
		res.Imported++
	}
	return res
}
