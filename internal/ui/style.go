package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// SetColor forces colored output on or off for the whole process.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Heading writes a cyan title with a double underline of matching width.
func Heading(w io.Writer, icon, title string) {
	fmt.Fprintf(w, "%s %s\n", icon, BoldCyan(title))
	underline := make([]rune, len([]rune(title))+3)
	for i := range underline {
		underline[i] = '═'
	}
	fmt.Fprintln(w, Cyan(string(underline)))
}

// CriticalMark returns the lightning marker for critical tasks, or padding.
func CriticalMark(critical bool) string {
	if critical {
		return BoldYellow("⚡")
	}
	return " "
}

// Slack colors a slack value: red at zero, yellow when small, green otherwise.
func Slack(slack int, width int) string {
	s := fmt.Sprintf("%*d", width, slack)
	switch {
	case slack == 0:
		return BoldRed(s)
	case slack <= 2:
		return Yellow(s)
	default:
		return Green(s)
	}
}

// TaskID returns a padded, colored task id. Critical ids are highlighted.
func TaskID(id string, width int, critical bool) string {
	s := fmt.Sprintf("%-*s", width, id)
	if critical {
		return BoldYellow(s)
	}
	return BoldMagenta(s)
}
