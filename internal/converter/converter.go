// =============================================================================
// Repeater List Creator - Converter Module
// =============================================================================
//
// This module runs the conversion pipeline for a single listing file. It is
// the bridge between the parsed CSV table and the repeater row rules.
//
// PIPELINE:
//   1. Resolve the header (output frequency column, required columns)
//   2. Transform every row for the file's memory group
//   3. Report the kept rows with processing statistics
//
// Files are independent: the process command runs one Converter per file and
// merges the results afterwards.
//
// =============================================================================

package converter

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

// =============================================================================
// RESULT STRUCTURES
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// FilePath is the path to the input CSV file.
	FilePath string

	// Rows contains the converted rows in file order.
	Rows []repeater.OutputRow

	// Success indicates whether the conversion was successful.
	Success bool

	// Error contains the error if the conversion failed.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of non-blank data rows in the file.
	RowsRead int

	// RowsKept is the number of analog and D-STAR rows converted.
	RowsKept int

	// RowsDropped is the number of rows filtered out by mode.
	RowsDropped int

	// ProcessingTime is the time taken to convert the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Logger is the logging surface the converter needs. *logrus.Entry and
// *logrus.Logger satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Converter handles the conversion of a single listing file.
type Converter struct {
	data   *csvparser.CSVData
	meta   repeater.Metadata
	logger Logger
}

// New creates a new Converter for an already parsed file. A nil logger
// logs through the standard logrus logger.
func New(data *csvparser.CSVData, meta repeater.Metadata, logger Logger) *Converter {
	if logger == nil {
		logger = log.WithField("file", filepath.Base(data.SourceFile))
	}
	return &Converter{
		data:   data,
		meta:   meta,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		FilePath: c.data.SourceFile,
	}
	result.Stats.RowsRead = c.data.RowCount

	// =========================================================================
	// STEP 1: RESOLVE HEADER
	// =========================================================================

	transformer, err := repeater.NewTransformer(filepath.Base(c.data.SourceFile), c.data.Headers, c.meta)
	if err != nil {
		result.Error = errors.Wrap(err, "prepare transformer")
		return result
	}

	c.logger.Debugf("Using output frequency column %q", transformer.Columns().OutputFreq)

	// =========================================================================
	// STEP 2: TRANSFORM ROWS
	// =========================================================================

	rows, err := transformer.Transform(c.data.Rows)
	if err != nil {
		result.Error = errors.Wrap(err, "transform rows")
		return result
	}

	// =========================================================================
	// STEP 3: REPORT
	// =========================================================================

	result.Rows = rows
	result.Success = true
	result.Stats.RowsKept = len(rows)
	result.Stats.RowsDropped = c.data.RowCount - len(rows)
	result.Stats.ProcessingTime = time.Since(startTime)

	if result.Stats.RowsDropped > 0 {
		c.logger.Debugf("Dropped %d row(s) with unsupported modes", result.Stats.RowsDropped)
	}
	if result.Stats.RowsKept == 0 {
		c.logger.Warnf("No analog or D-STAR rows found")
	}
	c.logger.Infof("Converted %d of %d row(s) into group %d", result.Stats.RowsKept, result.Stats.RowsRead, c.meta.GroupNo)

	return result
}
