package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	HasHeader bool // Whether CSV has header row (default: true)
	Delimiter rune // Field delimiter (default: ',')
	SkipRows  int  // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		HasHeader: true,
		Delimiter: ',',
	}
}

// Raw holds a CSV table before numeric conversion. Cells keep their textual
// form so that censored markers like "<5" survive loading; DetectLOD turns
// a Raw table into a numeric Table plus its limit mapping.
type Raw struct {
	Header  []string
	Records [][]string // row-major
}

// NumRows returns the number of data rows.
func (r *Raw) NumRows() int {
	return len(r.Records)
}

// LoadCSV loads a raw table from a CSV file.
func LoadCSV(filename string, opts *CSVOptions) (*Raw, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader loads a raw table from an io.Reader. Column names are
// trimmed of surrounding whitespace; cell text is kept as-is apart from
// surrounding quotes and whitespace.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Raw, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	raw := &Raw{}

	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		raw.Header = make([]string, len(header))
		for i, h := range header {
			raw.Header[i] = strings.TrimSpace(strings.Trim(h, "\""))
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make([]string, len(record))
		for i, cell := range record {
			row[i] = strings.TrimSpace(strings.Trim(cell, "\""))
		}
		raw.Records = append(raw.Records, row)
	}

	if len(raw.Records) == 0 {
		return nil, errors.New("no data rows found in CSV")
	}

	if raw.Header == nil {
		// No header: name columns by position.
		raw.Header = make([]string, len(raw.Records[0]))
		for i := range raw.Header {
			raw.Header[i] = "col" + strconv.Itoa(i+1)
		}
	}

	return raw, nil
}

// isNullToken reports whether a cell encodes a missing value.
func isNullToken(s string) bool {
	switch s {
	case "", "null", "NULL", "NaN":
		return true
	}
	return false
}

// SaveCSV writes a table to a CSV file. Missing cells are written as empty
// strings so a round-trip through LoadCSV preserves them.
func SaveCSV(t *Table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return WriteCSV(t, writer)
}

// WriteCSV writes a table to an io.Writer in CSV form.
func WriteCSV(t *Table, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Names()); err != nil {
		return err
	}

	row := make([]string, t.NumColumns())
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range t.Columns {
			v := col.Values[i]
			if math.IsNaN(v) {
				row[j] = ""
			} else {
				row[j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
