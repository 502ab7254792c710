// This file implements streaming readers for the Open Images CSV files.
// The box and image-info files run to gigabytes, so rows are processed one
// at a time and never collected into a document tree.
package openimages

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readClassNames loads the MID-to-display-name map from the class
// description CSV. The file has no header row; any row whose first field is
// not a MID path (leading '/') is treated as a stray header or corruption
// and skipped.
func readClassNames(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening class descriptions: %w", err)
	}
	defer f.Close()

	midToName := make(map[string]string)
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading class descriptions: %w", err)
		}
		if len(row) < 2 || !strings.HasPrefix(row[0], "/") {
			continue
		}
		midToName[row[0]] = row[1]
	}
	return midToName, nil
}

// rowReader streams one headered CSV file, exposing fields by column name.
type rowReader struct {
	f      *os.File
	r      *csv.Reader
	column map[string]int
	row    []string
}

// openRows opens a headered CSV and verifies the required columns exist.
func openRows(path string, required ...string) (*rowReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	column := make(map[string]int, len(header))
	for i, name := range header {
		column[name] = i
	}
	for _, name := range required {
		if _, ok := column[name]; !ok {
			f.Close()
			return nil, fmt.Errorf("%s: missing column %q", path, name)
		}
	}

	return &rowReader{f: f, r: r, column: column}, nil
}

// Next advances to the next row. It returns false at end of file; a read
// error is returned and also ends iteration.
func (rr *rowReader) Next() (bool, error) {
	row, err := rr.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading row: %w", err)
	}
	rr.row = row
	return true, nil
}

// Field returns the named column of the current row, or "" when the row is
// short or the column unknown.
func (rr *rowReader) Field(name string) string {
	i, ok := rr.column[name]
	if !ok || i >= len(rr.row) {
		return ""
	}
	return rr.row[i]
}

// Close releases the underlying file.
func (rr *rowReader) Close() error {
	return rr.f.Close()
}
