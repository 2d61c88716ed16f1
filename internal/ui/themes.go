package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	// Status line colors, one per status kind
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
	DropIdle  lipgloss.AdaptiveColor
	DropHover lipgloss.AdaptiveColor
}

// buildTheme creates a theme from [light, dark] color pairs
func buildTheme(name string, primary, secondary, success, warning, errorColor, info, border, muted, selected, dropIdle, dropHover [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Info:      lipgloss.AdaptiveColor{Light: info[0], Dark: info[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		DropIdle:  lipgloss.AdaptiveColor{Light: dropIdle[0], Dark: dropIdle[1]},
		DropHover: lipgloss.AdaptiveColor{Light: dropHover[0], Dark: dropHover[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"}, [2]string{"#DC2626", "#EF4444"},
		[2]string{"#0891B2", "#06B6D4"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#DBEAFE", "#1E3A8A"}, [2]string{"#9CA3AF", "#4B5563"}, [2]string{"#2563EB", "#60A5FA"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#CCCCCC", "#333333"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#FFFF00"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#EDF2F7", "#2D3748"}, [2]string{"#CBD5E0", "#4A5568"}, [2]string{"#4A5568", "#E2E8F0"})
)

// ThemeByName returns the named theme
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return Theme{}, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title     lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	Success    lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	Info       lipgloss.Style
	Processing lipgloss.Style

	Focused lipgloss.Style
	Panel   lipgloss.Style

	DropIdle  lipgloss.Style
	DropHover lipgloss.Style

	Link   lipgloss.Style
	Button lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
}

// NewStyles builds styles for theme. With color disabled every style is plain
// apart from borders.
func NewStyles(theme Theme, color bool) *Styles {
	s := &Styles{
		Theme: theme,

		Title:     lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Subheader: lipgloss.NewStyle().Bold(true),
		Body:      lipgloss.NewStyle(),
		Muted:     lipgloss.NewStyle(),

		Success:    lipgloss.NewStyle().Bold(true),
		Warning:    lipgloss.NewStyle().Bold(true),
		Error:      lipgloss.NewStyle().Bold(true),
		Info:       lipgloss.NewStyle(),
		Processing: lipgloss.NewStyle().Bold(true),

		Focused: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Panel:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),

		DropIdle:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		DropHover: lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2),

		Link:   lipgloss.NewStyle().Underline(true),
		Button: lipgloss.NewStyle().Bold(true).Padding(0, 1),

		ListItem:     lipgloss.NewStyle().Padding(0, 1),
		ListSelected: lipgloss.NewStyle().Padding(0, 1).Bold(true),
	}

	if !color {
		return s
	}

	s.Title = s.Title.Foreground(theme.Primary)
	s.Subheader = s.Subheader.Foreground(theme.Secondary)
	s.Muted = s.Muted.Foreground(theme.Muted)
	s.Success = s.Success.Foreground(theme.Success)
	s.Warning = s.Warning.Foreground(theme.Warning)
	s.Error = s.Error.Foreground(theme.Error)
	s.Info = s.Info.Foreground(theme.Info)
	s.Processing = s.Processing.Foreground(theme.Warning)
	s.Focused = s.Focused.BorderForeground(theme.Primary)
	s.Panel = s.Panel.BorderForeground(theme.Border)
	s.DropIdle = s.DropIdle.BorderForeground(theme.DropIdle)
	s.DropHover = s.DropHover.BorderForeground(theme.DropHover)
	s.Link = s.Link.Foreground(theme.Info)
	s.Button = s.Button.Foreground(theme.Primary).Background(theme.Selected)
	s.ListSelected = s.ListSelected.Foreground(theme.Primary).Background(theme.Selected)

	return s
}
