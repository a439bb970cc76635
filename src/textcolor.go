package crcverify

// Colours for the report outcome column.

import "github.com/charmbracelet/lipgloss"

type dw_color_e int

const (
	DW_COLOR_INFO  dw_color_e = iota /* default */
	DW_COLOR_ERROR                   /* red */
	DW_COLOR_OK                      /* green */
	DW_COLOR_DEBUG                   /* dark grey */
)

var _text_color_level int

var text_color_styles = map[int]map[dw_color_e]lipgloss.Style{
	1: {
		DW_COLOR_INFO:  lipgloss.NewStyle(),
		DW_COLOR_ERROR: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		DW_COLOR_OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		DW_COLOR_DEBUG: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	},
	// Bright variants, for dark terminals that make 1 and 2 hard to read.
	2: {
		DW_COLOR_INFO:  lipgloss.NewStyle(),
		DW_COLOR_ERROR: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		DW_COLOR_OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DW_COLOR_DEBUG: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	},
}

// text_color_init selects a colour scheme.  0 disables colour, unknown
// levels fall back to 1.
func text_color_init(level int) {
	_text_color_level = level
}

func text_color_render(c dw_color_e, s string) string {
	if _text_color_level == 0 {
		return s
	}

	var styles, ok = text_color_styles[_text_color_level]
	if !ok {
		styles = text_color_styles[1]
	}

	return styles[c].Render(s)
}
