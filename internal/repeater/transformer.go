// =============================================================================
// Repeater List Creator - Row Transformer
// =============================================================================
//
// The Transformer turns one listing table into OutputRows for one memory
// group. It is built once per file: the header is resolved up front so every
// row reads the output-frequency column by its bound name.
//
// PER-ROW STEPS:
//   1. Normalize the mode and drop rows that are neither analog nor DSTR
//   2. Parse the output and input frequencies
//   3. Apply the Dup, Offset, Tone and Callsign rules
//   4. Rename the mode and assemble the OutputRow with group constants
//
// =============================================================================

package repeater

import (
	"fmt"
)

// Transformer applies the row rules to the rows of one input file.
type Transformer struct {
	columns   Columns
	meta      Metadata
	utcOffset string
}

// NewTransformer resolves the header of one input file and validates the
// group metadata.
func NewTransformer(file string, headers []string, meta Metadata) (*Transformer, error) {
	columns, err := ResolveColumns(file, headers)
	if err != nil {
		return nil, err
	}

	utc, err := FormatUTCOffset(meta.UTCOffset)
	if err != nil {
		return nil, err
	}

	switch meta.NameSource {
	case NameFromLocation, NameFromFrequency:
	default:
		return nil, &ConfigurationError{
			File:   file,
			Column: string(meta.NameSource),
			Reason: fmt.Sprintf("name source must be %q or %q", NameFromLocation, NameFromFrequency),
		}
	}

	return &Transformer{
		columns:   columns,
		meta:      meta,
		utcOffset: utc,
	}, nil
}

// Columns returns the header binding resolved for the file.
func (t *Transformer) Columns() Columns {
	return t.columns
}

// InputRow picks the cells the rules need out of a header-keyed row.
func (t *Transformer) InputRow(fields map[string]string) InputRow {
	return InputRow{
		Mode:       fields[ColumnMode],
		Tone:       fields[ColumnTone],
		TSQ:        fields[ColumnTSQ],
		Call:       fields[ColumnCall],
		Location:   fields[ColumnLocation],
		InputFreq:  fields[ColumnInputFreq],
		Offset:     fields[ColumnOffset],
		OutputFreq: fields[t.columns.OutputFreq],
		Latitude:   fields[ColumnLatitude],
		Longitude:  fields[ColumnLongitude],
	}
}

// Transform converts every supported row. Rows with other modes are
// dropped; the first unparsable frequency aborts the whole table.
func (t *Transformer) Transform(rows []map[string]string) ([]OutputRow, error) {
	out := make([]OutputRow, 0, len(rows))
	for i, fields := range rows {
		row, ok, err := t.TransformRow(i+1, t.InputRow(fields))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// TransformRow converts a single row. rowNumber is the 1-based data row used
// in parse errors. The boolean is false when the row's mode is filtered out.
func (t *Transformer) TransformRow(rowNumber int, in InputRow) (OutputRow, bool, error) {
	mode := NormalizeMode(in.Mode)
	if !IsSupportedMode(mode) {
		return OutputRow{}, false, nil
	}

	outputFreq, err := ParseFrequency(rowNumber, t.columns.OutputFreq, in.OutputFreq)
	if err != nil {
		return OutputRow{}, false, err
	}
	inputFreq, err := ParseFrequency(rowNumber, ColumnInputFreq, in.InputFreq)
	if err != nil {
		return OutputRow{}, false, err
	}

	frequency := FormatDecimal(outputFreq)
	name := in.Location
	if t.meta.NameSource == NameFromFrequency {
		name = frequency
	}

	tone, repeaterTone := DeriveTone(mode, in.Tone, in.TSQ)
	repeaterCall, gatewayCall := DeriveCallsigns(mode, in.Call, outputFreq)

	return OutputRow{
		GroupNo:          t.meta.GroupNo,
		GroupName:        t.meta.GroupName,
		Name:             name,
		SubName:          "",
		RepeaterCallSign: repeaterCall,
		GatewayCallSign:  gatewayCall,
		Frequency:        frequency,
		Dup:              DeriveDup(in.Offset),
		Offset:           DeriveOffset(outputFreq, inputFreq),
		Mode:             RenameMode(mode),
		Tone:             tone,
		RepeaterTone:     repeaterTone,
		RPT1Use:          RPT1UseYes,
		Position:         PositionApx,
		Latitude:         in.Latitude,
		Longitude:        in.Longitude,
		UTCOffset:        t.utcOffset,
		FrequencyMHz:     outputFreq,
	}, true, nil
}
