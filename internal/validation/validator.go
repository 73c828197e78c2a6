// =============================================================================
// Repeater List Creator - Listing Validation
// =============================================================================
//
// This module checks a parsed repeater listing without converting it. Where
// the transformer stops at the first bad cell, the validator keeps going and
// collects every problem it finds, so a listing can be fixed in one pass.
//
// VALIDATION LEVELS:
//   1. Header: the fixed columns and exactly one output-frequency column
//   2. Row: every kept row (analog or DSTR) is checked cell by cell
//
// SEVERITY:
//   - error   : the row would abort conversion (unparsable frequency)
//   - warning : the row converts, but the result is probably not intended
//
// Rows with other modes are counted as skipped and never reported.
//
// =============================================================================

package validation

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
	"github.com/ginjaninja78/repeater-list-creator/pkg/utils"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is a single validation finding.
type Issue struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// File is the base name of the listing.
	File string

	// Row is the 1-based data row, or 0 for header issues.
	Row int

	// Column is the header of the offending cell.
	Column string

	// Value is the cell as found in the file.
	Value string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	if i.Row == 0 {
		return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(i.Severity), i.File, i.Message)
	}
	return fmt.Sprintf("[%s] %s row %d, %s: %s (value: '%s')",
		strings.ToUpper(i.Severity), i.File, i.Row, i.Column, i.Message, i.Value)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result contains the findings for one listing.
type Result struct {
	// File is the base name of the listing.
	File string

	// IsValid is true if there are no errors. Warnings do not count.
	IsValid bool

	// Issues holds every finding in row order.
	Issues []*Issue

	ErrorCount   int
	WarningCount int

	// RowsChecked counts analog and DSTR rows.
	RowsChecked int

	// RowsSkipped counts rows with other modes.
	RowsSkipped int
}

func (r *Result) add(issue *Issue) {
	issue.File = r.File
	r.Issues = append(r.Issues, issue)
	if issue.Severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Options tune the validator.
type Options struct {
	// TreatWarningsAsErrors makes any warning invalidate the listing.
	TreatWarningsAsErrors bool
}

// Validator checks listings.
type Validator struct {
	options Options
}

// NewValidator creates a Validator with default options.
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options Options) *Validator {
	return &Validator{options: options}
}

// Validate checks one parsed listing.
//
// PARAMETERS:
//   - file: The base name used in every issue.
//   - data: The parsed listing.
//
// RETURNS:
//   - The collected result. A header problem stops row checks.
func (v *Validator) Validate(file string, data *csvparser.CSVData) *Result {
	result := &Result{File: file}

	columns, err := repeater.ResolveColumns(file, data.Headers)
	if err != nil {
		result.add(&Issue{Severity: SeverityError, Message: err.Error()})
		v.finish(result)
		return result
	}

	for i, fields := range data.Rows {
		row := i + 1
		mode := repeater.NormalizeMode(fields[repeater.ColumnMode])
		if !repeater.IsSupportedMode(mode) {
			result.RowsSkipped++
			continue
		}
		result.RowsChecked++
		v.validateRow(result, row, mode, columns, fields)
	}

	v.finish(result)
	return result
}

func (v *Validator) finish(result *Result) {
	result.IsValid = result.ErrorCount == 0
	if v.options.TreatWarningsAsErrors && result.WarningCount > 0 {
		result.IsValid = false
	}
}

// =============================================================================
// ROW CHECKS
// =============================================================================

func (v *Validator) validateRow(result *Result, row int, mode string, columns repeater.Columns, fields map[string]string) {
	output, outputOK := checkFrequency(result, row, columns.OutputFreq, fields[columns.OutputFreq])
	_, _ = checkFrequency(result, row, repeater.ColumnInputFreq, fields[repeater.ColumnInputFreq])

	if call := fields[repeater.ColumnCall]; call == "" {
		result.add(&Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   repeater.ColumnCall,
			Message:  "callsign is empty",
		})
	} else if mode == repeater.ModeDSTR && len(call) > repeater.CallsignWidth {
		result.add(&Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   repeater.ColumnCall,
			Value:    call,
			Message:  "D-STAR callsign longer than 7 characters; module letter will not line up",
		})
	}

	if mode == repeater.ModeDSTR && outputOK && !inBand(output) {
		result.add(&Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   columns.OutputFreq,
			Value:    fields[columns.OutputFreq],
			Message:  "D-STAR frequency outside the 2 m and 70 cm bands; no module letter assigned",
		})
	}

	for _, column := range []string{repeater.ColumnTone, repeater.ColumnTSQ} {
		checkNumber(result, row, column, fields[column], "tone is not a number")
	}
	if fields[repeater.ColumnTone] == "" && fields[repeater.ColumnTSQ] != "" {
		result.add(&Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   repeater.ColumnTSQ,
			Value:    fields[repeater.ColumnTSQ],
			Message:  "TSQ without Tone is ignored",
		})
	}

	for _, column := range []string{repeater.ColumnLatitude, repeater.ColumnLongitude} {
		checkNumber(result, row, column, fields[column], "coordinate is not a number")
	}
}

// checkFrequency reports an error when value is not a number.
func checkFrequency(result *Result, row int, column, value string) (float64, bool) {
	f, err := repeater.ParseFrequency(row, column, value)
	if err != nil {
		result.add(&Issue{
			Severity: SeverityError,
			Row:      row,
			Column:   column,
			Value:    value,
			Message:  "frequency is not a number",
		})
		return 0, false
	}
	return f, true
}

// checkNumber warns when a non-empty value is not a number.
func checkNumber(result *Result, row int, column, value, message string) {
	if value == "" {
		return
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		result.add(&Issue{
			Severity: SeverityWarning,
			Row:      row,
			Column:   column,
			Value:    value,
			Message:  message,
		})
	}
}

func inBand(mhz float64) bool {
	return repeater.BandModule(mhz) != ""
}

// =============================================================================
// REPORTING
// =============================================================================

// FormatIssues renders issues one per line.
func FormatIssues(issues []*Issue) string {
	if len(issues) == 0 {
		return "No validation issues."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d validation issue(s):\n", len(issues))
	for i, issue := range issues {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, issue.Error())
	}
	return sb.String()
}

// WriteReport writes the issues of all results to a text file.
func WriteReport(results []*Result, filePath string) error {
	return utils.WriteFileAtomic(filePath, func(w io.Writer) error {
		for _, result := range results {
			status := "OK"
			if !result.IsValid {
				status = "INVALID"
			}
			if _, err := fmt.Fprintf(w, "%s: %s (%d checked, %d skipped, %d error(s), %d warning(s))\n",
				result.File, status, result.RowsChecked, result.RowsSkipped, result.ErrorCount, result.WarningCount); err != nil {
				return err
			}
			for _, issue := range result.Issues {
				if _, err := fmt.Fprintf(w, "  %s\n", issue.Error()); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
