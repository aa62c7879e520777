// Package ui holds the terminal building blocks shared by every page: the
// color theme, huh-based forms and confirmations, the headless fallback used
// when stdin is not a terminal, and the loading spinner.
package ui

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Brand colors (dark background variants).
const (
	ColorPrimary   = "#E07A5F"
	ColorSecondary = "#8B5CF6"
	ColorSuccess   = "#10B981"
	ColorError     = "#EF4444"
	ColorInfo      = "#3B82F6"
	ColorText      = "#F3F4F6"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// ThemeConfig selects the theme variant.
type ThemeConfig struct {
	NoColor bool
	// Mode is "dark" or "light"; anything else follows the terminal.
	Mode string
}

// Colors is the resolved palette.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Info      string
	Text      string
	Muted     string
	Border    string
}

// Theme carries the palette and derived lipgloss styles.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Tag     lipgloss.Style
	Card    lipgloss.Style
	Link    lipgloss.Style
}

// NewTheme builds a Theme. With NoColor every style is plain.
func NewTheme(cfg ThemeConfig) *Theme {
	c := Colors{
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Success:   ColorSuccess,
		Error:     ColorError,
		Info:      ColorInfo,
		Text:      ColorText,
		Muted:     ColorMuted,
		Border:    ColorBorder,
	}
	if cfg.Mode == "light" {
		c.Primary = "#C45A3C"
		c.Secondary = "#5B21B6"
		c.Success = "#059669"
		c.Error = "#DC2626"
		c.Info = "#1D4ED8"
		c.Text = "#111827"
		c.Muted = "#9CA3AF"
		c.Border = "#D1D5DB"
	}

	t := &Theme{NoColor: cfg.NoColor, Colors: c}
	if cfg.NoColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Muted, t.Success, t.Error, t.Info, t.Link = plain, plain, plain, plain, plain, plain
		t.Tag = plain.MarginRight(1)
		t.Card = plain.PaddingLeft(2)
		return t
	}

	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Primary))
	t.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Muted))
	t.Success = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Success))
	t.Error = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Error))
	t.Info = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Info))
	t.Link = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color(c.Secondary))
	t.Tag = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Text)).
		Background(lipgloss.Color(c.Secondary)).
		Padding(0, 1).
		MarginRight(1)
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Border)).
		Padding(0, 1)
	return t
}

// HuhTheme maps the palette onto a huh form theme.
func (t *Theme) HuhTheme() *huh.Theme {
	if t.NoColor {
		return huh.ThemeBase()
	}
	h := huh.ThemeBase()

	primary := lipgloss.Color(t.Colors.Primary)
	secondary := lipgloss.Color(t.Colors.Secondary)
	green := lipgloss.Color(t.Colors.Success)
	red := lipgloss.Color(t.Colors.Error)
	muted := lipgloss.Color(t.Colors.Muted)
	border := lipgloss.Color(t.Colors.Border)

	h.Focused.Base = h.Focused.Base.BorderForeground(border)
	h.Focused.Card = h.Focused.Base
	h.Focused.Title = h.Focused.Title.Foreground(primary).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(muted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(red)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(red)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(green)
	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(primary)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(muted)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(secondary)
	h.Focused.FocusedButton = h.Focused.FocusedButton.Foreground(lipgloss.Color("#FFFFFF")).Background(primary)
	h.Focused.Next = h.Focused.FocusedButton

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Blurred.Card = h.Blurred.Base

	h.Group.Title = h.Focused.Title
	h.Group.Description = h.Focused.Description
	return h
}
