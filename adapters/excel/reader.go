// Package excel loads CSV and spreadsheet files into tables. The file format
// is identified by extension: .csv is parsed with encoding/csv, .xls and
// .xlsx with excelize. Any other extension is rejected at load time.
package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"clarity/domain/core"
	"clarity/domain/table"
)

// DataReader reads a single tabular file into a table
type DataReader struct {
	filePath string
	ext      string
}

// NewDataReader creates a reader for the given file path
func NewDataReader(filePath string) *DataReader {
	return &DataReader{
		filePath: filePath,
		ext:      strings.ToLower(filepath.Ext(filePath)),
	}
}

// Load reads the file at path into a table
func Load(path string) (*table.Table, error) {
	return NewDataReader(path).Read()
}

// Read loads the file into a table, inferring a dtype for every column
func (r *DataReader) Read() (*table.Table, error) {
	switch r.ext {
	case ".csv":
		return r.readCSV()
	case ".xls", ".xlsx":
		return r.readExcel()
	default:
		return nil, core.NewUnsupportedFormatError(r.ext)
	}
}

func (r *DataReader) readCSV() (*table.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV file: %w", err)
	}
	return buildTable(records)
}

func (r *DataReader) readExcel() (*table.Table, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.ErrEmptyDataset
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return buildTable(rows)
}

// buildTable converts raw records (header row first) into a typed table
func buildTable(records [][]string) (*table.Table, error) {
	if len(records) < 2 {
		return nil, core.ErrEmptyDataset
	}

	headers := validateHeaders(records[0])
	data := records[1:]

	cols := make([]*table.Column, len(headers))
	for j, name := range headers {
		cells := make([]string, len(data))
		for i, row := range data {
			if j < len(row) {
				cells[i] = strings.TrimSpace(row[j])
			}
		}
		cols[j] = buildColumn(name, cells)
	}
	return table.New(cols...)
}

// buildColumn infers the column dtype from its cell text. A column is numeric
// only when every non-missing cell parses as a float, temporal only when
// every non-missing cell parses under a known date layout; otherwise it is
// categorical. The rule is deterministic for a fixed input.
func buildColumn(name string, cells []string) *table.Column {
	numeric := true
	temporal := true
	present := 0
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		present++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			numeric = false
		}
		if _, ok := parseTime(cell); !ok {
			temporal = false
		}
	}

	switch {
	case present > 0 && numeric:
		floats := make([]float64, len(cells))
		for i, cell := range cells {
			if cell == "" {
				floats[i] = math.NaN()
				continue
			}
			floats[i], _ = strconv.ParseFloat(cell, 64)
		}
		return table.NewNumeric(name, floats)
	case present > 0 && temporal:
		times := make([]time.Time, len(cells))
		for i, cell := range cells {
			if cell == "" {
				continue
			}
			times[i], _ = parseTime(cell)
		}
		return table.NewTemporal(name, times)
	default:
		return table.NewCategorical(name, cells)
	}
}

var timeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

func parseTime(cell string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// validateHeaders trims header cells, substitutes generated names for blank
// ones and suffixes duplicates so column names are unique
func validateHeaders(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, len(raw))
	for i, header := range raw {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d", name, n)
		}
		seen[candidate] = true
		out[i] = candidate
	}
	return out
}
