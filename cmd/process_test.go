package cmd

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
	"github.com/ginjaninja78/repeater-list-creator/internal/prompt"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
	"github.com/ginjaninja78/repeater-list-creator/internal/validation"
	"github.com/ginjaninja78/repeater-list-creator/pkg/utils"
)

const header = "Mode,Tone,TSQ,Call,Location,Input Freq,Offset,146Output Freq,lat,long\n"

const northListing = header +
	"DSTR,,,W1ABC,North Peak,446.5,+,441.5,45.1,-93.2\n" +
	"Analog/FM,88,,W1FM,North Hill,147.6,+,147.0,45.2,-93.3\n" +
	"DMR,,,W1DMR,North Dale,442.0,+,447.0,45.3,-93.4\n"

const southListing = header +
	"analog,100,,K0UHF,South Ridge,449.1,-,444.1,39.7,-104.9\n" +
	"DSTR,,,K0DS,South Park,146.0,-,146.6,39.8,-105.0\n"

func writeListings(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_north.csv"), []byte(northListing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_south.csv"), []byte(southListing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	return dir
}

func testConfig(inputDir, output string) *config.MainConfig {
	return &config.MainConfig{
		InputDir:    inputDir,
		OutputFile:  output,
		LogLevel:    "info",
		PreviewRows: 5,
		CSV:         config.CSVSettings{Delimiter: ","},
	}
}

func readOutput(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRunProcessInteractive(t *testing.T) {
	inputDir := writeListings(t)
	outDir := t.TempDir()

	answers := strings.Join([]string{
		inputDir,
		filepath.Join(outDir, "merged"),
		// a_north.csv
		"2", "North", "-6", "Location",
		// b_south.csv
		"1", "South", "-7", "146Output Freq",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := runProcess(testConfig("", ""), prompt.New(strings.NewReader(answers), &out))
	require.NoError(t, err)

	outputFile := filepath.Join(outDir, "merged.csv")
	assert.Contains(t, out.String(), "Processing file: a_north.csv")
	assert.Contains(t, out.String(), "Output CSV saved to "+outputFile)

	records := readOutput(t, outputFile)
	require.Len(t, records, 5)
	assert.Equal(t, repeater.OutputHeader, records[0])

	// Group 1 first, by frequency; then group 2 by frequency.
	assert.Equal(t, []string{"1", "South", "146.6", "", "K0DS   C", "K0DS   G", "146.6", "DUP-", "0.6", "DV", "OFF", "82.5Hz", "Yes", "Approximate", "39.8", "-105.0", "-07:00"}, records[1])
	assert.Equal(t, []string{"1", "South", "444.1", "", "K0UHF", "", "444.1", "DUP-", "5.0", "FM", "Tone", "100.0Hz", "Yes", "Approximate", "39.7", "-104.9", "-07:00"}, records[2])
	assert.Equal(t, []string{"2", "North", "North Hill", "", "W1FM", "", "147.0", "DUP+", "0.6", "FM", "Tone", "88.0Hz", "Yes", "Approximate", "45.2", "-93.3", "-06:00"}, records[3])
	assert.Equal(t, []string{"2", "North", "North Peak", "", "W1ABC  B", "W1ABC  G", "441.5", "DUP+", "5.0", "DV", "OFF", "82.5Hz", "Yes", "Approximate", "45.1", "-93.2", "-06:00"}, records[4])
}

func TestRunProcessGroupsFile(t *testing.T) {
	inputDir := writeListings(t)
	outDir := t.TempDir()
	groupsFile := filepath.Join(outDir, "groups.yaml")
	require.NoError(t, os.WriteFile(groupsFile, []byte(`groups:
  - file: a_north.csv
    group_no: 1
    group_name: North
    utc_offset: -6
  - file: b_south.csv
    group_no: 2
    group_name: South
    utc_offset: 5
    name_column: frequency
`), 0o644))

	cfg := testConfig(inputDir, filepath.Join(outDir, "list.csv"))
	cfg.GroupsFile = groupsFile
	cfg.XLSX = true

	var out bytes.Buffer
	require.NoError(t, runProcess(cfg, prompt.New(strings.NewReader(""), &out)))

	records := readOutput(t, cfg.OutputFile)
	require.Len(t, records, 5)
	assert.Equal(t, []string{"1", "1", "2", "2"}, []string{records[1][0], records[2][0], records[3][0], records[4][0]})
	assert.Equal(t, "147.0", records[1][6])
	assert.Equal(t, "441.5", records[2][6])
	assert.Equal(t, "146.6", records[3][2])
	assert.Equal(t, "+05:00", records[4][16])

	assert.True(t, utils.FileExists(filepath.Join(outDir, "list.xlsx")))
}

func TestRunProcessMissingGroupEntry(t *testing.T) {
	inputDir := writeListings(t)
	outDir := t.TempDir()
	groupsFile := filepath.Join(outDir, "groups.yaml")
	require.NoError(t, os.WriteFile(groupsFile, []byte("groups:\n  - file: a_north.csv\n    group_no: 1\n"), 0o644))

	cfg := testConfig(inputDir, filepath.Join(outDir, "list.csv"))
	cfg.GroupsFile = groupsFile

	err := runProcess(cfg, prompt.New(strings.NewReader(""), &bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b_south.csv")
	assert.False(t, utils.FileExists(cfg.OutputFile))
}

func TestRunProcessInvalidExtension(t *testing.T) {
	inputDir := writeListings(t)
	outDir := t.TempDir()

	var out bytes.Buffer
	err := runProcess(testConfig(inputDir, filepath.Join(outDir, "list.txt")), prompt.New(strings.NewReader(""), &out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Filename entry must either have no extension or end with '.csv'")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunProcessMissingDirectory(t *testing.T) {
	outDir := t.TempDir()
	missing := filepath.Join(outDir, "nowhere")

	var out bytes.Buffer
	err := runProcess(testConfig(missing, filepath.Join(outDir, "list")), prompt.New(strings.NewReader(""), &out))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "The directory '"+missing+"' does not exist")
	assert.False(t, utils.FileExists(filepath.Join(outDir, "list.csv")))
}

func TestRunProcessParseErrorWritesNothing(t *testing.T) {
	inputDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "bad.csv"),
		[]byte(header+"analog,,,W1X,X,abc,+,146.0,0,0\n"), 0o644))

	cfg := testConfig(inputDir, filepath.Join(outDir, "list.csv"))
	err := runProcess(cfg, prompt.New(strings.NewReader("1\nBad\n0\nLocation\n"), &bytes.Buffer{}))

	var parseErr *repeater.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.False(t, utils.FileExists(cfg.OutputFile))
}

func TestRunProcessDryRun(t *testing.T) {
	inputDir := writeListings(t)
	outDir := t.TempDir()

	cfg := testConfig(inputDir, filepath.Join(outDir, "list.csv"))
	cfg.DryRun = true

	var out bytes.Buffer
	answers := "1\nNorth\n-6\nLocation\n2\nSouth\n-6\nLocation\n"
	require.NoError(t, runProcess(cfg, prompt.New(strings.NewReader(answers), &out)))

	assert.Contains(t, out.String(), "Dry run: 4 repeater(s) from 2 file(s)")
	assert.False(t, utils.FileExists(cfg.OutputFile))
}

func TestRunProcessEmptyDirectory(t *testing.T) {
	cfg := testConfig(t.TempDir(), filepath.Join(t.TempDir(), "list.csv"))
	err := runProcess(cfg, prompt.New(strings.NewReader(""), &bytes.Buffer{}))
	assert.Error(t, err)
}

func TestRunValidate(t *testing.T) {
	inputDir := writeListings(t)
	require.NoError(t, os.WriteFile(filepath.Join(inputDir, "c_bad.csv"),
		[]byte(header+"DSTR,,,W1BAD,Nowhere,446.0,+,oops,0,0\n"), 0o644))

	results, err := runValidate(testConfig(inputDir, ""), validation.Options{})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "a_north.csv", results[0].File)
	assert.True(t, results[0].IsValid)
	assert.Equal(t, 2, results[0].RowsChecked)
	assert.Equal(t, 1, results[0].RowsSkipped)
	assert.True(t, results[1].IsValid)
	assert.False(t, results[2].IsValid)
	assert.Equal(t, 1, results[2].ErrorCount)
}

func TestRunValidateMissingDirectory(t *testing.T) {
	_, err := runValidate(testConfig(filepath.Join(t.TempDir(), "nowhere"), ""), validation.Options{})
	assert.Error(t, err)

	_, err = runValidate(testConfig("", ""), validation.Options{})
	assert.Error(t, err)
}
