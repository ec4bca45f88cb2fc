package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/inventaworks/inventa/pkg/model"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
	SpaceMD = 3
)

// Adaptive colors for light and dark terminals. Light mode colors tuned
// for contrast on white backgrounds.
var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}

	ColorPrimary = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}
	ColorDanger  = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}

	// Item type badge backgrounds (saturated, white text)
	ColorTypeBadgeText = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ColorTypeFGBg      = lipgloss.AdaptiveColor{Light: "#36B37E", Dark: "#36B37E"} // Green
	ColorTypeSFBg      = lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"} // Blue
	ColorTypeMODBg     = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#904EE2"} // Purple
	ColorTypePTBg      = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#D9822B"} // Orange
	ColorTypeRMBg      = lipgloss.AdaptiveColor{Light: "#6B778C", Dark: "#6B778C"} // Gray
)

// Panel styles for the grid and tree layouts.
var (
	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorBgSubtle)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorBgHighlight)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorSubtext)

	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	ErrorStyle  = lipgloss.NewStyle().Foreground(ColorDanger).Bold(true)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorPrimary)
)

var typeBadgeStyles = map[model.ItemType]lipgloss.Style{
	model.TypeFinishedGood: lipgloss.NewStyle().Foreground(ColorTypeBadgeText).Background(ColorTypeFGBg).Padding(0, 1),
	model.TypeSemiFinished: lipgloss.NewStyle().Foreground(ColorTypeBadgeText).Background(ColorTypeSFBg).Padding(0, 1),
	model.TypeModule:       lipgloss.NewStyle().Foreground(ColorTypeBadgeText).Background(ColorTypeMODBg).Padding(0, 1),
	model.TypePart:         lipgloss.NewStyle().Foreground(ColorTypeBadgeText).Background(ColorTypePTBg).Padding(0, 1),
	model.TypeRawMaterial:  lipgloss.NewStyle().Foreground(ColorTypeBadgeText).Background(ColorTypeRMBg).Padding(0, 1),
}

// TypeBadge renders an item type as a colored badge.
func TypeBadge(t model.ItemType) string {
	if style, ok := typeBadgeStyles[t]; ok {
		return style.Render(string(t))
	}
	return string(t)
}
