package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by status lines, the config listing and the icon picker.
var (
	colorAccent = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders picker headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	// StyleHighlight renders icon names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)

	// StyleDim renders comments and hints.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue renders paths and setting values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning renders warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// statusKind selects the marker in front of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusWarn
	statusNote
	statusFile
)

type marker struct {
	glyph string
	style lipgloss.Style
}

var markers = map[statusKind]marker{
	statusOK:   {"✓", lipgloss.NewStyle().Foreground(colorGreen)},
	statusWarn: {"!", lipgloss.NewStyle().Foreground(colorYellow)},
	statusNote: {"›", lipgloss.NewStyle().Foreground(colorGray)},
	statusFile: {"  →", StyleDim},
}

// statusOut receives status lines. Stdout carries markup only.
var statusOut io.Writer = os.Stderr

func status(kind statusKind, msg string) {
	m := markers[kind]
	fmt.Fprintln(statusOut, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(statusOK, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(statusWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(statusNote, fmt.Sprintf(format, args...))
}

// printFile reports a written output file.
func printFile(path string) {
	status(statusFile, StyleValue.Render(path))
}
