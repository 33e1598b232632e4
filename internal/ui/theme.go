package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color theme for the header, the focused pane border and selections.
type Theme struct {
	Name     string
	HeaderBG lipgloss.Color
	HeaderFG lipgloss.Color
	Accent   lipgloss.Color
}

// Themes lists the available themes in cycling order.
var Themes = []Theme{
	{Name: "Teal", HeaderBG: "30", HeaderFG: "230", Accent: "37"},
	{Name: "Purple", HeaderBG: "54", HeaderFG: "230", Accent: "99"},
	{Name: "Blue", HeaderBG: "25", HeaderFG: "230", Accent: "33"},
	{Name: "Orange", HeaderBG: "130", HeaderFG: "230", Accent: "172"},
	{Name: "Burnt", HeaderBG: "94", HeaderFG: "230", Accent: "136"},
	{Name: "Slate", HeaderBG: "240", HeaderFG: "252", Accent: "246"},
	{Name: "Forest", HeaderBG: "22", HeaderFG: "230", Accent: "35"},
	{Name: "Mauve", HeaderBG: "96", HeaderFG: "230", Accent: "139"},
}

// ThemeManager tracks the current theme.
type ThemeManager struct {
	CurrentIndex int
	Current      Theme
}

// NewThemeManager starts at the theme called name, or the first theme when no
// theme has that name. Matching ignores case.
func NewThemeManager(name string) *ThemeManager {
	tm := &ThemeManager{Current: Themes[0]}
	for i, t := range Themes {
		if strings.EqualFold(t.Name, name) {
			tm.CurrentIndex = i
			tm.Current = t
			break
		}
	}
	return tm
}

// NextTheme cycles to the next theme
func (tm *ThemeManager) NextTheme() {
	tm.CurrentIndex = (tm.CurrentIndex + 1) % len(Themes)
	tm.Current = Themes[tm.CurrentIndex]
}

// PreviousTheme cycles to the previous theme
func (tm *ThemeManager) PreviousTheme() {
	tm.CurrentIndex--
	if tm.CurrentIndex < 0 {
		tm.CurrentIndex = len(Themes) - 1
	}
	tm.Current = Themes[tm.CurrentIndex]
}

// HeaderStyle creates a header style with the current theme
func (tm *ThemeManager) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(tm.Current.HeaderBG).
		Foreground(tm.Current.HeaderFG).
		Bold(true).
		Padding(0, 1)
}

// SelectionStyle highlights the selected sidebar entry.
func (tm *ThemeManager) SelectionStyle(focused bool) lipgloss.Style {
	if !focused {
		return lipgloss.NewStyle().Underline(true)
	}
	return lipgloss.NewStyle().
		Background(tm.Current.Accent).
		Foreground(tm.Current.HeaderFG)
}

// PaneStyle draws the border of a pane, accented when it has focus.
func (tm *ThemeManager) PaneStyle(focused bool) lipgloss.Style {
	border := lipgloss.Color("238")
	if focused {
		border = tm.Current.Accent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border)
}
