// =============================================================================
// Repeater List Creator - Row Types
// =============================================================================
//
// InputRow is one line of a repeater listing export. OutputRow is one line of
// the consolidated list in the column order expected by the radio
// programming software. The csv tags on OutputRow define that column order.
//
// =============================================================================

package repeater

import (
	"strings"
)

// =============================================================================
// INPUT
// =============================================================================

// Input column headers. The output-frequency column has no fixed name; it is
// discovered per file with OutputFreqPattern.
const (
	ColumnMode      = "Mode"
	ColumnTone      = "Tone"
	ColumnTSQ       = "TSQ"
	ColumnCall      = "Call"
	ColumnLocation  = "Location"
	ColumnInputFreq = "Input Freq"
	ColumnOffset    = "Offset"
	ColumnLatitude  = "lat"
	ColumnLongitude = "long"
)

// RequiredColumns lists the fixed-name columns every input file must carry.
var RequiredColumns = []string{
	ColumnMode,
	ColumnTone,
	ColumnTSQ,
	ColumnCall,
	ColumnLocation,
	ColumnInputFreq,
	ColumnOffset,
	ColumnLatitude,
	ColumnLongitude,
}

// InputRow holds the cells of one listing row that the rules read.
// Values are kept as the trimmed strings found in the file.
type InputRow struct {
	Mode       string
	Tone       string
	TSQ        string
	Call       string
	Location   string
	InputFreq  string
	Offset     string
	OutputFreq string
	Latitude   string
	Longitude  string
}

// =============================================================================
// MODES
// =============================================================================

// Normalized input modes and the names the output uses for them.
const (
	ModeAnalog  = "analog"
	ModeDSTR    = "DSTR"
	ModeFM      = "FM"
	ModeDV      = "DV"
	DupMinus    = "DUP-"
	DupPlus     = "DUP+"
	RPT1UseYes  = "Yes"
	PositionApx = "Approximate"
)

// =============================================================================
// GROUP METADATA
// =============================================================================

// NameSource selects the input column copied into OutputRow.Name.
type NameSource string

const (
	// NameFromLocation copies the Location column.
	NameFromLocation NameSource = "location"

	// NameFromFrequency copies the output frequency, rendered like the
	// Frequency column.
	NameFromFrequency NameSource = "frequency"
)

// Metadata is the per-file information the listing itself does not carry.
type Metadata struct {
	// GroupNo is the memory group number assigned to every row of the file.
	GroupNo int

	// GroupName is the memory group label.
	GroupName string

	// UTCOffset is the raw hour offset, e.g. "-6" or "5".
	UTCOffset string

	// NameSource selects what goes into the Name column.
	NameSource NameSource
}

// =============================================================================
// OUTPUT
// =============================================================================

// OutputRow is one entry of the consolidated repeater list.
type OutputRow struct {
	GroupNo          int    `csv:"Group No"`
	GroupName        string `csv:"Group Name"`
	Name             string `csv:"Name"`
	SubName          string `csv:"Sub Name"`
	RepeaterCallSign string `csv:"Repeater Call Sign"`
	GatewayCallSign  string `csv:"Gateway Call Sign"`
	Frequency        string `csv:"Frequency"`
	Dup              string `csv:"Dup"`
	Offset           string `csv:"Offset"`
	Mode             string `csv:"Mode"`
	Tone             string `csv:"TONE"`
	RepeaterTone     string `csv:"Repeater Tone"`
	RPT1Use          string `csv:"RPT1USE"`
	Position         string `csv:"Position"`
	Latitude         string `csv:"Latitude"`
	Longitude        string `csv:"Longitude"`
	UTCOffset        string `csv:"UTC Offset"`

	// FrequencyMHz is the parsed output frequency, used for ordering.
	FrequencyMHz float64 `csv:"-"`
}

// OutputHeader is the exact header line of the consolidated list.
var OutputHeader = []string{
	"Group No",
	"Group Name",
	"Name",
	"Sub Name",
	"Repeater Call Sign",
	"Gateway Call Sign",
	"Frequency",
	"Dup",
	"Offset",
	"Mode",
	"TONE",
	"Repeater Tone",
	"RPT1USE",
	"Position",
	"Latitude",
	"Longitude",
	"UTC Offset",
}

// Record returns the row's values in OutputHeader order.
func (r OutputRow) Record() []string {
	return []string{
		itoa(r.GroupNo),
		r.GroupName,
		r.Name,
		r.SubName,
		r.RepeaterCallSign,
		r.GatewayCallSign,
		r.Frequency,
		r.Dup,
		r.Offset,
		r.Mode,
		r.Tone,
		r.RepeaterTone,
		r.RPT1Use,
		r.Position,
		r.Latitude,
		r.Longitude,
		r.UTCOffset,
	}
}

// ParseNameSource interprets a Name-column choice. It accepts the keywords
// "location" and "frequency" in any case, the literal header "Location", and
// outputFreqColumn when it is non-empty.
func ParseNameSource(choice, outputFreqColumn string) (NameSource, bool) {
	choice = strings.TrimSpace(choice)
	switch {
	case choice == "":
		return "", false
	case strings.EqualFold(choice, string(NameFromLocation)):
		return NameFromLocation, true
	case strings.EqualFold(choice, string(NameFromFrequency)):
		return NameFromFrequency, true
	case outputFreqColumn != "" && choice == outputFreqColumn:
		return NameFromFrequency, true
	default:
		return "", false
	}
}
