// =============================================================================
// Repeater List Creator - CSV Parser Module
// =============================================================================
//
// This module reads one repeater listing export into memory. Listings are
// small, so the whole file is read at once and every data row is exposed as
// a map of header -> value.
//
// PARSING RULES:
//   - The first row is the header
//   - Header names and cell values are trimmed
//   - Rows that are entirely blank are skipped
//   - Short rows are padded with empty values
//   - Lazy quotes and variable field counts are tolerated
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
)

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents the parsed CSV file.
type CSVData struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Rows contains the data rows as maps of header -> value.
	Rows []map[string]string

	// SourceFile is the path to the source CSV file.
	SourceFile string

	// RowCount is the number of non-blank data rows.
	RowCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed data.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: Reader settings from the main configuration.
//
// RETURNS:
//   - The parsed data.
//   - An error if the file cannot be opened, read, or has no header row.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "open file")
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filePath)
	}
	data.SourceFile = filePath

	return data, nil
}

// ParseReader parses CSV content from r.
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, err := csvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read CSV")
	}

	if len(allRows) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	headers := cleanHeaders(allRows[0])
	rows := extractDataRows(allRows[1:], headers)

	return &CSVData{
		Headers:  headers,
		Rows:     rows,
		RowCount: len(rows),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}

// cleanHeaders trims header names and strips a UTF-8 byte order mark from
// the first one, which spreadsheet exports often carry.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// extractDataRows converts data rows to header-keyed maps.
func extractDataRows(rawRows [][]string, headers []string) []map[string]string {
	dataRows := make([]map[string]string, 0, len(rawRows))

	for _, row := range rawRows {
		if isRowEmpty(row) {
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for colIndex, header := range headers {
			if colIndex < len(row) {
				rowMap[header] = strings.TrimSpace(row[colIndex])
			} else {
				rowMap[header] = ""
			}
		}

		dataRows = append(dataRows, rowMap)
	}

	return dataRows
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// ACCESSORS
// =============================================================================

// HasColumn reports whether the header contains name.
func (d *CSVData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Head returns up to n values of column from the first rows, for previews.
func (d *CSVData) Head(column string, n int) []string {
	if n < 0 {
		n = 0
	}
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	values := make([]string, 0, n)
	for _, row := range d.Rows[:n] {
		values = append(values, row[column])
	}
	return values
}
