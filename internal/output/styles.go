package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used in the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: message types, packages, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorMagenta is used for field type tokens.
	ColorMagenta = lipgloss.Color("176")

	// ColorGreen is used for the "added" status and literal defaults.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "changed" status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "removed" status.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (message types, packages, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleType styles field type tokens.
	StyleType = lipgloss.NewStyle().Foreground(ColorMagenta)

	// StyleLiteral styles literal default values.
	StyleLiteral = lipgloss.NewStyle().Foreground(ColorGreen)

	// StyleDim styles structural chrome (prefixes, separators, fingerprints).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by multi-part renderers.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   StyleDim,
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// Type status constants used when comparing against a snapshot.
const (
	StatusAdded     = "added"
	StatusChanged   = "changed"
	StatusUnchanged = "unchanged"
	StatusRemoved   = "removed"
)

// StatusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAdded:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusChanged:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusUnchanged:
		return lipgloss.NewStyle().Faint(true)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minTypeColumnWidth is the minimum width of the type name column before the
// status suffix, so status words line up.
const minTypeColumnWidth = 48

// FormatTypeLine renders a message type with a right-aligned, color-coded
// status suffix.
//
// Format: t:<package/Type>  <status>
func FormatTypeLine(typeName, status string) string {
	padding := minTypeColumnWidth - len(typeName)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("t:")
	styledName := StyleNoun.Render(typeName)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledName + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCount renders "<n> <noun>" with a naive plural.
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
