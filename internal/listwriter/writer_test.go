package listwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

func row(group int, freq float64, name string) repeater.OutputRow {
	return repeater.OutputRow{
		GroupNo:      group,
		GroupName:    "G",
		Name:         name,
		Frequency:    repeater.FormatDecimal(freq),
		FrequencyMHz: freq,
		Mode:         repeater.ModeFM,
		Dup:          repeater.DupPlus,
		Offset:       "0.6",
		RPT1Use:      repeater.RPT1UseYes,
		Position:     repeater.PositionApx,
		UTCOffset:    "-06:00",
	}
}

func names(rows []repeater.OutputRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestMergeSortsByGroupThenFrequency(t *testing.T) {
	second := []repeater.OutputRow{row(2, 446.0, "d"), row(2, 145.0, "c")}
	first := []repeater.OutputRow{row(1, 449.0, "b"), row(1, 146.0, "a")}
	tenth := []repeater.OutputRow{row(10, 144.5, "e")}

	merged := Merge(tenth, second, first)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names(merged))
}

func TestSortIsStable(t *testing.T) {
	rows := []repeater.OutputRow{row(1, 146.0, "first"), row(1, 146.0, "second"), row(1, 145.0, "low")}
	Sort(rows)
	assert.Equal(t, []string{"low", "first", "second"}, names(rows))
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	r := row(1, 146.0, "Hill")
	r.RepeaterCallSign = "W1ABC  C"
	r.GatewayCallSign = "W1ABC  G"
	require.NoError(t, EncodeCSV(&buf, []repeater.OutputRow{r}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, repeater.OutputHeader, records[0])
	assert.Equal(t, r.Record(), records[1])
}

func TestEncodeCSVEmptyWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, nil))
	assert.Equal(t, strings.Join(repeater.OutputHeader, ",")+"\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.csv")
	require.NoError(t, WriteCSV(path, []repeater.OutputRow{row(1, 146.0, "Hill")}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "1,G,Hill,,"))
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.xlsx")
	rows := []repeater.OutputRow{row(1, 146.0, "Hill"), row(2, 442.5, "Peak")}
	require.NoError(t, WriteXLSX(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, repeater.OutputHeader, got[0])
	assert.Equal(t, "Peak", got[2][2])
	assert.Equal(t, "2", got[2][0])
	assert.Equal(t, "442.5", got[2][6])
}
