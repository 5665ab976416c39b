package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/artified/mosaic/internal/core/model"
	"github.com/artified/mosaic/internal/util"
)

// TableFormatter renders the day totals as aligned text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new instance of TableFormatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Format prints the timeline lines followed by ranked surface and
// activity totals.
func (f *TableFormatter) Format(w io.Writer, artifact *model.TimelineArtifact) error {
	width := terminalWidth()

	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintf(w, "Timeline for %s (%s)\n", artifact.DateLocal, artifact.Timezone)
	fmt.Fprintf(w, "Capture interval: %.1f min, context switches: %d\n",
		artifact.CaptureIntervalMinutes, artifact.Totals.ContextSwitchCount)
	fmt.Fprintln(w, strings.Repeat("=", width))
	fmt.Fprintln(w)

	for _, line := range artifact.TimelineHumanReadable {
		fmt.Fprintln(w, line)
	}

	if len(artifact.TimelineHumanReadable) > 0 {
		fmt.Fprintln(w)
	}

	f.printRanking(w, "By surface", artifact.Totals.BySurfaceMinutes)
	f.printRanking(w, "By activity", artifact.Totals.ByActivityMinutes)

	for _, warning := range artifact.Warnings {
		fmt.Fprintf(w, "warning (%s): %s\n", warning.Kind, warning.Message)
	}
	return nil
}

// printRanking prints one ranked minutes table with width-aware padding,
// so labels containing emoji or CJK text still line up.
func (f *TableFormatter) printRanking(w io.Writer, title string, rows []model.KeyMinutes) {
	if len(rows) == 0 {
		return
	}

	keyWidth := runewidth.StringWidth(title)
	for _, row := range rows {
		if kw := runewidth.StringWidth(row.Key); kw > keyWidth {
			keyWidth = kw
		}
	}

	fmt.Fprintf(w, "%s\n", title)
	fmt.Fprintln(w, strings.Repeat("-", keyWidth+12))
	for _, row := range rows {
		fmt.Fprintf(w, "%s  %s\n", padRight(row.Key, keyWidth), util.FormatMinutes(row.Minutes))
	}
	fmt.Fprintln(w)
}

func padRight(s string, width int) string {
	actual := runewidth.StringWidth(s)
	if actual >= width {
		return s
	}
	return s + strings.Repeat(" ", width-actual)
}

func terminalWidth() int {
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth < 40 {
		return 60
	}
	if termWidth > 100 {
		return 100
	}
	return termWidth
}
