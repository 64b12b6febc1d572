// Package style provides consistent terminal styling using Lipgloss.
package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("10")). // Green
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")). // Yellow
		Bold(true)

	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")). // Red
		Bold(true)

	Info = lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")) // Blue

	Dim = lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")) // Gray

	Bold = lipgloss.NewStyle().
		Bold(true)

	SuccessPrefix = Success.Render("✓")
	WarningPrefix = Warning.Render("⚠")
	ErrorPrefix   = Error.Render("✗")
	ArrowPrefix   = Info.Render("→")
)

// Successf prints a green checkmark notice.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", SuccessPrefix, fmt.Sprintf(format, args...))
}

func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", WarningPrefix, fmt.Sprintf(format, args...))
}

// Errorf prints a red cross notice. The message itself stays unstyled so it
// can be copied.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", ErrorPrefix, fmt.Sprintf(format, args...))
}

func Infof(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", ArrowPrefix, fmt.Sprintf(format, args...))
}

// Heading renders a bold section title.
func Heading(title string) string {
	return Bold.Render(title)
}

// Status colors a task status.
func Status(status string) string {
	switch status {
	case "open":
		return Info.Render(status)
	case "accepted":
		return Warning.Render(status)
	case "completed":
		return Success.Render(status)
	default:
		return Dim.Render(status)
	}
}

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
