package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Valid placements and covered attacks
	colorOK = color.New(color.FgGreen)

	// Conflicts and uncovered attacks
	colorBad = color.New(color.FgRed, color.Bold)

	// Magical damage
	colorMagical = color.New(color.FgMagenta)

	// Physical damage
	colorPhysical = color.New(color.FgYellow)

	// Insight/results: cyan to make it pop
	colorInsight = color.New(color.FgCyan)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatBad(s string) string {
	return colorBad.Sprint(s)
}

// formatAttackType colors an attack type label.
func formatAttackType(kind string) string {
	switch kind {
	case "magical":
		return colorMagical.Sprint(kind)
	case "physical":
		return colorPhysical.Sprint(kind)
	default:
		return kind
	}
}

func formatInsight(s string) string {
	return colorInsight.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
