package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

const listing = `Mode,Tone,TSQ,Call,Location,Input Freq,Offset,146Output Freq,lat,long
analog,100,,W0ABC,Denver,146.34,-,146.94,39.7,-104.9
DSTR,,,W0DS,Golden,442.975,+,447.975,39.7,-105.2
`

func parse(t *testing.T, content string) *csvparser.CSVData {
	t.Helper()
	data, err := csvparser.ParseReader(strings.NewReader(content), config.CSVSettings{})
	require.NoError(t, err)
	return data
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  ./listings  \nlast"), &out)

	answer, err := p.Ask("Directory")
	require.NoError(t, err)
	assert.Equal(t, "./listings", answer)
	assert.Contains(t, out.String(), "Directory: ")

	answer, err = p.Ask("Unterminated")
	require.NoError(t, err)
	assert.Equal(t, "last", answer)

	_, err = p.Ask("Nothing left")
	assert.True(t, errors.Is(err, ErrNoInput))
}

func TestAskIntRetries(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("one\n-6\n"), &out)

	n, err := p.AskInt("Offset")
	require.NoError(t, err)
	assert.Equal(t, -6, n)
	assert.Contains(t, out.String(), `Invalid number "one"`)
}

func TestGroupMetadata(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("2\nDenver Metro\n-7\nCall\n146Output Freq\n"), &out)

	meta, err := p.GroupMetadata("denver.csv", parse(t, listing), 5)
	require.NoError(t, err)

	assert.Equal(t, repeater.Metadata{
		GroupNo:    2,
		GroupName:  "Denver Metro",
		UTCOffset:  "-7",
		NameSource: repeater.NameFromFrequency,
	}, meta)

	printed := out.String()
	assert.Contains(t, printed, "First few values from Location column of denver.csv:")
	assert.Contains(t, printed, "Golden")
	assert.Contains(t, printed, "447.975")
	assert.Contains(t, printed, "Invalid choice. Please enter 'Location' or '146Output Freq'.")
}

func TestGroupMetadataLocation(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("1\nSprings\n5\nLocation\n"), &out)

	meta, err := p.GroupMetadata("springs.csv", parse(t, listing), 1)
	require.NoError(t, err)
	assert.Equal(t, repeater.NameFromLocation, meta.NameSource)
	assert.Equal(t, "5", meta.UTCOffset)
	assert.NotContains(t, out.String(), "Golden")
}

func TestGroupMetadataEndOfInput(t *testing.T) {
	p := New(strings.NewReader("1\nSprings\n"), &bytes.Buffer{})

	_, err := p.GroupMetadata("springs.csv", parse(t, listing), 5)
	assert.True(t, errors.Is(err, ErrNoInput))
}
