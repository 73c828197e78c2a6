// =============================================================================
// Repeater List Creator - Row Rules
// =============================================================================
//
// Each rule derives one or two output fields from an InputRow. Rules are
// pure functions; the Transformer decides the order they run in.
//
// RULES:
//   NormalizeMode   : "  Analog/FM " -> "analog", anything else trimmed
//   DeriveDup       : "-" -> DUP-, anything else DUP+
//   DeriveOffset    : |output - input| rounded to 0.1 MHz
//   DeriveTone      : (TONE, Repeater Tone) pair
//   DeriveCallsigns : (Repeater Call Sign, Gateway Call Sign) pair
//   RenameMode      : analog -> FM, DSTR -> DV
//   FormatUTCOffset : "-6" -> "-06:00"
//
// =============================================================================

package repeater

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// MODE
// =============================================================================

// NormalizeMode trims the mode and folds every analog variant into
// ModeAnalog. Other values are returned trimmed but otherwise untouched.
func NormalizeMode(raw string) string {
	mode := strings.TrimSpace(raw)
	if strings.Contains(strings.ToLower(mode), ModeAnalog) {
		return ModeAnalog
	}
	return mode
}

// IsSupportedMode reports whether a normalized mode is kept in the list.
func IsSupportedMode(mode string) bool {
	return mode == ModeAnalog || mode == ModeDSTR
}

// RenameMode maps a supported normalized mode to its output name.
func RenameMode(mode string) string {
	if mode == ModeAnalog {
		return ModeFM
	}
	return ModeDV
}

// =============================================================================
// DUPLEX AND OFFSET
// =============================================================================

// DeriveDup turns the listing's offset sign marker into a duplex direction.
func DeriveDup(sign string) string {
	if sign == "-" {
		return DupMinus
	}
	return DupPlus
}

// DeriveOffset returns the absolute split between output and input
// frequency, rounded to one decimal and rendered with one decimal digit.
func DeriveOffset(output, input float64) string {
	offset := math.Round(math.Abs(output-input)*10) / 10
	return strconv.FormatFloat(offset, 'f', 1, 64)
}

// =============================================================================
// TONE
// =============================================================================

// Tone categories written to the TONE column.
const (
	ToneCategory = "Tone"
	TSQLCategory = "TSQL"
	OffCategory  = "OFF"

	// DefaultDigitalTone is the Repeater Tone written for D-STAR rows that
	// carry neither a tone nor a squelch code.
	DefaultDigitalTone = "82.5Hz"
)

// DeriveTone returns the TONE category and the Repeater Tone value.
//
// PRIORITY:
//   1. Tone only          -> ("Tone", <Tone>Hz)
//   2. Tone and TSQ       -> ("TSQL", <TSQ>Hz)
//   3. D-STAR, no match   -> ("OFF", "82.5Hz")
//   4. anything else      -> ("", "")
//
// A TSQ without a Tone does not select TSQL.
func DeriveTone(mode, tone, tsq string) (string, string) {
	tone = strings.TrimSpace(tone)
	tsq = strings.TrimSpace(tsq)

	switch {
	case tone != "" && tsq == "":
		return ToneCategory, formatTone(tone)
	case tone != "" && tsq != "":
		return TSQLCategory, formatTone(tsq)
	case mode == ModeDSTR:
		return OffCategory, DefaultDigitalTone
	default:
		return "", ""
	}
}

// formatTone renders a tone with at least one decimal place and the Hz unit.
func formatTone(value string) string {
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return FormatDecimal(f) + "Hz"
	}
	if !strings.Contains(value, ".") {
		value += ".0"
	}
	return value + "Hz"
}

// FormatDecimal renders f in its shortest form, always with a decimal point:
// 88 -> "88.0", 88.50 -> "88.5", 146.94 -> "146.94".
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// =============================================================================
// CALLSIGNS
// =============================================================================

// Band edges in MHz, inclusive.
const (
	vhfLow  = 144.0
	vhfHigh = 148.0
	uhfLow  = 420.0
	uhfHigh = 450.0

	// CallsignWidth is the width D-STAR expects before the module letter.
	CallsignWidth = 7
)

// D-STAR module suffixes.
const (
	ModuleVHF     = "C"
	ModuleUHF     = "B"
	ModuleGateway = "G"
)

// DeriveCallsigns returns the repeater and gateway callsigns for a row.
//
// Analog rows use the callsign as listed and have no gateway. D-STAR rows
// pad the callsign to seven characters and append the module letter for the
// band. Outside both bands the repeater callsign is left unpadded while the
// gateway is still padded.
func DeriveCallsigns(mode, call string, frequency float64) (string, string) {
	if mode == ModeAnalog {
		return call, ""
	}

	padded := PadCallsign(call)
	gateway := padded + ModuleGateway

	if module := BandModule(frequency); module != "" {
		return padded + module, gateway
	}
	return call, gateway
}

// BandModule returns the D-STAR module letter for a frequency in MHz, or ""
// outside the 2 m and 70 cm bands.
func BandModule(frequency float64) string {
	switch {
	case frequency >= vhfLow && frequency <= vhfHigh:
		return ModuleVHF
	case frequency >= uhfLow && frequency <= uhfHigh:
		return ModuleUHF
	default:
		return ""
	}
}

// PadCallsign left-justifies call to seven characters with trailing spaces.
// Longer callsigns are returned unchanged.
func PadCallsign(call string) string {
	return fmt.Sprintf("%-*s", CallsignWidth, call)
}

// =============================================================================
// UTC OFFSET
// =============================================================================

// FormatUTCOffset renders an integer hour offset as a signed two-digit hour
// with zero minutes: "-6" -> "-06:00", "5" -> "+05:00".
func FormatUTCOffset(raw string) (string, error) {
	hours, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", &ParseError{Column: "UTC Offset", Value: raw, Err: err}
	}
	return fmt.Sprintf("%+03d:00", hours), nil
}

// =============================================================================
// NUMBERS
// =============================================================================

// ParseFrequency parses a frequency cell in MHz.
func ParseFrequency(row int, column, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &ParseError{Row: row, Column: column, Value: value, Err: err}
	}
	return f, nil
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
