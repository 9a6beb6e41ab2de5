package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/balancecoach/pkg/composition"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - tipped beam
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleBalanced = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleTipped   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Messages
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

var styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Composition Display
// =============================================================================

// statusStyle colors a balance status.
func statusStyle(status composition.Status) lipgloss.Style {
	if status == composition.StatusBalanced {
		return styleBalanced
	}
	return styleTipped
}

// printBalance prints the moments, tilt and status of a balance reading.
func printBalance(b composition.Balance) {
	printKeyValue("Left", fmt.Sprintf("%.0f", b.Moments.Left))
	printKeyValue("Right", fmt.Sprintf("%.0f", b.Moments.Right))
	printKeyValue("Tilt", fmt.Sprintf("%.2f°", b.Tilt))
	fmt.Println(styleKey.Render("Status") + " " + statusStyle(b.Status).Render(string(b.Status)))
}

// shapeTable renders shapes as a bordered table, marking the selection.
func shapeTable(shapes []composition.Shape, fulcrum float64, selected string) string {
	rows := make([][]string, 0, len(shapes))
	for _, s := range shapes {
		mark := ""
		switch {
		case s.ID == selected:
			mark = "▸"
		case s.Challenge:
			mark = "◇"
		case s.Mirrored():
			mark = "↔"
		}
		side := "R"
		if s.Rect().CenterX() < fulcrum {
			side = "L"
		}
		rows = append(rows, []string{
			mark,
			s.ID,
			string(s.Kind),
			fmt.Sprintf("%gx%g", s.Width, s.Height),
			fmt.Sprintf("%g,%g", s.X, s.Y),
			composition.ShadeName(s.Shade),
			strconv.FormatFloat(s.Weight, 'f', -1, 64),
			side,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Size", "Pos", "Shade", "Weight", "Side").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 || col == 7 {
				return StyleHighlight
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
