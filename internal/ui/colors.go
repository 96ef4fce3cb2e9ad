package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/lyrix/internal/formatter"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title  lipgloss.Style
	ok     lipgloss.Style
	err    lipgloss.Style
	warn   lipgloss.Style
	help   lipgloss.Style
	info   lipgloss.Style
	pane   lipgloss.Style
	active lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:  NewBold(t).MarginBottom(1),
		ok:     NewBold(s),
		err:    NewBold(e),
		warn:   NewStyle(w),
		help:   NewEm(h),
		info:   NewStyle(t),
		pane:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)),
		active: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(t)),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// lineStyles returns the preview styles for the first and second line of each pair.
func lineStyles(s formatter.Style) (first, second lipgloss.Style) {
	first = lipgloss.NewStyle().Bold(s.FirstBold).Italic(s.FirstItalic)
	second = NewStyle("#A0A0A0").Bold(s.SecondBold).Italic(s.SecondItalic)
	return first, second
}
