package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ANSI-256 palette. The verdict colors double as the general status colors:
// green for auspicious/success, amber for neutral/warning, red for
// inauspicious/error.
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by the command output code.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
	StyleDanger    = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	// styleRetro marks retrograde motion in the chart table.
	styleRetro = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconActive  = "●"
	iconRetro   = "℞"
)

// statusLine prints an icon followed by a formatted message.
func statusLine(icon string, iconStyle lipgloss.Style, format string, args ...any) {
	fmt.Println(iconStyle.Render(icon) + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) {
	statusLine(iconSuccess, styleIconSuccess, format, args...)
}

func printError(format string, args ...any) {
	statusLine(iconError, styleIconError, format, args...)
}

func printWarning(format string, args ...any) {
	statusLine(iconWarning, styleIconWarning, "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	statusLine(iconInfo, styleIconInfo, format, args...)
}

// printDetail prints an indented muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile reports a written output file.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a label column (fixed width, so consecutive rows
// align) followed by the value.
func printKeyValue(key, value string) {
	label := lipgloss.NewStyle().Foreground(colorGray).Width(12).Render(key)
	fmt.Println(label + " " + StyleValue.Render(value))
}

// verdictStyle picks the style for a panchang verdict.
func verdictStyle(verdict string) lipgloss.Style {
	switch verdict {
	case "auspicious":
		return StyleSuccess
	case "inauspicious":
		return StyleDanger
	default:
		return StyleWarning
	}
}

func printNewline() { fmt.Println() }
