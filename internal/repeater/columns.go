package repeater

import (
	"regexp"
)

// OutputFreqPattern matches the output-frequency header, which listing
// exports prefix with a band or count, e.g. "2Output Freq".
var OutputFreqPattern = regexp.MustCompile(`^\d+Output Freq$`)

// Columns is the header binding resolved for one input file.
type Columns struct {
	// OutputFreq is the name of the discovered output-frequency column.
	OutputFreq string
}

// ResolveColumns checks headers for every required column and binds the
// output-frequency column. file is used only in error messages.
func ResolveColumns(file string, headers []string) (Columns, error) {
	present := make(map[string]bool, len(headers))
	var matches []string
	for _, h := range headers {
		present[h] = true
		if OutputFreqPattern.MatchString(h) {
			matches = append(matches, h)
		}
	}

	switch len(matches) {
	case 0:
		return Columns{}, &ConfigurationError{
			File:   file,
			Column: OutputFreqPattern.String(),
			Reason: "no output frequency column found",
		}
	case 1:
	default:
		return Columns{}, &ConfigurationError{
			File:   file,
			Column: OutputFreqPattern.String(),
			Reason: "more than one output frequency column found",
		}
	}

	for _, name := range RequiredColumns {
		if !present[name] {
			return Columns{}, &ConfigurationError{
				File:   file,
				Column: name,
				Reason: "required column missing",
			}
		}
	}

	return Columns{OutputFreq: matches[0]}, nil
}

// FindOutputFreqColumn returns the output-frequency header or an empty
// string when there is not exactly one.
func FindOutputFreqColumn(headers []string) string {
	found := ""
	for _, h := range headers {
		if OutputFreqPattern.MatchString(h) {
			if found != "" {
				return ""
			}
			found = h
		}
	}
	return found
}
