// =============================================================================
// Repeater List Creator - List Writer Module
// =============================================================================
//
// This module produces the consolidated repeater list from the rows of every
// converted file.
//
// OUTPUT FORMATS:
//   - CSV  : the import file for the radio programming software, with the
//            fixed 17-column header
//   - XLSX : an optional spreadsheet copy with the same header and rows
//
// ORDERING:
//   Rows are ordered by Group No, then by frequency, both ascending. Rows that
//   tie keep the order they were merged in.
//
// =============================================================================

package listwriter

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/jszwec/csvutil"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
	"github.com/ginjaninja78/repeater-list-creator/pkg/utils"
)

// SheetName is the worksheet name used in the XLSX export.
const SheetName = "Repeaters"

// =============================================================================
// MERGING
// =============================================================================

// Merge concatenates the rows of several files and sorts the result.
func Merge(groups ...[]repeater.OutputRow) []repeater.OutputRow {
	total := 0
	for _, rows := range groups {
		total += len(rows)
	}

	merged := make([]repeater.OutputRow, 0, total)
	for _, rows := range groups {
		merged = append(merged, rows...)
	}

	Sort(merged)
	return merged
}

// Sort orders rows by group number, then frequency, keeping the relative
// order of equal rows.
func Sort(rows []repeater.OutputRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].GroupNo != rows[j].GroupNo {
			return rows[i].GroupNo < rows[j].GroupNo
		}
		return rows[i].FrequencyMHz < rows[j].FrequencyMHz
	})
}

// =============================================================================
// CSV
// =============================================================================

// EncodeCSV writes the header and rows to w. The header is written even
// when rows is empty.
func EncodeCSV(w io.Writer, rows []repeater.OutputRow) error {
	csvWriter := csv.NewWriter(w)
	enc := csvutil.NewEncoder(csvWriter)

	if err := enc.EncodeHeader(repeater.OutputRow{}); err != nil {
		return errors.Wrap(err, "encode header")
	}
	if len(rows) > 0 {
		if err := enc.Encode(rows); err != nil {
			return errors.Wrap(err, "encode rows")
		}
	}

	csvWriter.Flush()
	return errors.Wrap(csvWriter.Error(), "flush CSV")
}

// WriteCSV writes the list to path. The file only appears once it is
// complete.
func WriteCSV(path string, rows []repeater.OutputRow) error {
	return utils.WriteFileAtomic(path, func(w io.Writer) error {
		return EncodeCSV(w, rows)
	})
}

// =============================================================================
// XLSX
// =============================================================================

// BuildWorkbook returns a workbook with one sheet holding the header and
// rows. Group No is stored as a number, every other cell as text.
func BuildWorkbook(rows []repeater.OutputRow) (*excelize.File, error) {
	f := excelize.NewFile()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, SheetName); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "rename sheet")
	}

	header := make([]interface{}, len(repeater.OutputHeader))
	for i, name := range repeater.OutputHeader {
		header[i] = name
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		f.Close()
		return nil, errors.Wrap(err, "write header")
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "cell name")
		}

		record := row.Record()
		values := make([]interface{}, len(record))
		values[0] = row.GroupNo
		for j := 1; j < len(record); j++ {
			values[j] = record[j]
		}

		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "write row %d", i+1)
		}
	}

	return f, nil
}

// WriteXLSX writes the list as a spreadsheet to path.
func WriteXLSX(path string, rows []repeater.OutputRow) error {
	f, err := BuildWorkbook(rows)
	if err != nil {
		return err
	}
	defer f.Close()

	return utils.WriteFileAtomicFrom(path, func(tmpPath string) error {
		return errors.Wrap(f.SaveAs(tmpPath), "save workbook")
	})
}
