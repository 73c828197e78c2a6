// Package prompt asks the process command's questions on a terminal.
//
// Every question reads one line. Answers are trimmed. Questions that need a
// specific form (numbers, a column choice) repeat until they get one; end of
// input aborts with an error instead of looping.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

// ErrNoInput is returned when input ends before a question is answered.
var ErrNoInput = errors.New("no more input")

type styles struct {
	heading lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	problem lipgloss.Style
	success lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Faint(true),
		value:   r.NewStyle().PaddingLeft(2),
		problem: r.NewStyle().Foreground(lipgloss.Color("9")),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Prompter reads answers from in and writes questions to out.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles styles
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(out),
	}
}

// Ask prints question and returns the trimmed answer.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		if err == io.EOF {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		return "", errors.Wrap(err, "read answer")
	}

	return strings.TrimSpace(line), nil
}

// AskInt asks until the answer is a whole number.
func (p *Prompter) AskInt(question string) (int, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err == nil {
			return n, nil
		}
		p.Problem("Invalid number %q. Please enter a whole number.", answer)
	}
}

// Heading prints a highlighted line preceded by a blank line.
func (p *Prompter) Heading(format string, args ...interface{}) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.heading.Render(fmt.Sprintf(format, args...)))
}

// Problem prints an error or retry message.
func (p *Prompter) Problem(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.problem.Render(fmt.Sprintf(format, args...)))
}

// Success prints a completion message.
func (p *Prompter) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.styles.success.Render(fmt.Sprintf(format, args...)))
}

// Preview prints a label followed by one indented line per value.
func (p *Prompter) Preview(label string, values []string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.styles.label.Render(label))
	for _, v := range values {
		fmt.Fprintln(p.out, p.styles.value.Render(v))
	}
}

// GroupMetadata asks for the group number, group name and UTC offset of one
// listing file, previews the candidate Name columns, and asks which one to
// use until the choice is valid.
func (p *Prompter) GroupMetadata(fileName string, data *csvparser.CSVData, previewRows int) (repeater.Metadata, error) {
	var meta repeater.Metadata
	var err error

	if meta.GroupNo, err = p.AskInt(fmt.Sprintf("Enter group number for %s", fileName)); err != nil {
		return meta, err
	}
	if meta.GroupName, err = p.Ask(fmt.Sprintf("Enter group name for %s", fileName)); err != nil {
		return meta, err
	}

	utc, err := p.AskInt(fmt.Sprintf("Enter UTC offset for %s (e.g., -6)", fileName))
	if err != nil {
		return meta, err
	}
	meta.UTCOffset = strconv.Itoa(utc)

	freqColumn := repeater.FindOutputFreqColumn(data.Headers)
	if freqColumn == "" {
		// Let the transformer report the exact header problem.
		meta.NameSource = repeater.NameFromLocation
		return meta, nil
	}

	p.Preview(fmt.Sprintf("First few values from %s column of %s:", repeater.ColumnLocation, fileName),
		data.Head(repeater.ColumnLocation, previewRows))
	p.Preview(fmt.Sprintf("First few values from %s column of %s:", freqColumn, fileName),
		data.Head(freqColumn, previewRows))

	for {
		choice, err := p.Ask(fmt.Sprintf("Enter column to use for Name (%s or %s) for %s",
			repeater.ColumnLocation, freqColumn, fileName))
		if err != nil {
			return meta, err
		}
		if source, ok := repeater.ParseNameSource(choice, freqColumn); ok {
			meta.NameSource = source
			return meta, nil
		}
		p.Problem("Invalid choice. Please enter '%s' or '%s'.", repeater.ColumnLocation, freqColumn)
	}
}
