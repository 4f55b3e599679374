package ui

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"
)

// Theme defines the colors of the grid view.
type Theme struct {
	TitleFG       color.Color // Title line
	HeaderFG      color.Color // Column keys
	LabelFG       color.Color // Row index labels
	ValueFG       color.Color // Enabled cell text
	DisabledFG    color.Color // Disabled cell text
	FocusFG       color.Color // Focused cell
	FocusBG       color.Color
	RangeFG       color.Color // Cells inside the selected range
	AnchorFG      color.Color // Pending range anchor
	SelectedFG    color.Color // Cells matching the selected value
	StatusColor   color.Color
	StatusError   color.Color
	StatusSuccess color.Color
	FooterFG      color.Color
	HelpKey       color.Color
	HelpValue     color.Color
}

// DefaultTheme returns the dark palette.
func DefaultTheme() Theme {
	return Theme{
		TitleFG:       lipgloss.Color("81"),  // cyan title
		HeaderFG:      lipgloss.Color("81"),  // cyan keys for contrast
		LabelFG:       lipgloss.Color("244"), // muted row labels
		ValueFG:       lipgloss.Color("246"), // muted gray values
		DisabledFG:    lipgloss.Color("238"),
		FocusFG:       lipgloss.Color("250"),
		FocusBG:       lipgloss.Color("24"), // deep teal selection
		RangeFG:       lipgloss.Color("114"),
		AnchorFG:      lipgloss.Color("214"),
		SelectedFG:    lipgloss.Color("114"),
		StatusColor:   lipgloss.Color("81"),
		StatusError:   lipgloss.Color("203"), // softer red for errors
		StatusSuccess: lipgloss.Color("114"),
		FooterFG:      lipgloss.Color("244"),
		HelpKey:       lipgloss.Color("81"),
		HelpValue:     lipgloss.Color("245"),
	}
}

// styles are the lipgloss styles derived from a Theme. With noColor every
// style renders plain text.
type styles struct {
	title     lipgloss.Style
	header    lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	disabled  lipgloss.Style
	focus     lipgloss.Style
	inRange   lipgloss.Style
	anchor    lipgloss.Style
	selected  lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	statusOK  lipgloss.Style
	footer    lipgloss.Style
	heading   lipgloss.Style
	code      lipgloss.Style
	help      help.Styles
}

func newStyles(t Theme, noColor bool) styles {
	plain := lipgloss.NewStyle()
	if noColor {
		return styles{
			title: plain, header: plain, label: plain, value: plain,
			disabled: plain, focus: plain, inRange: plain, anchor: plain,
			selected: plain, status: plain, statusErr: plain, statusOK: plain,
			footer: plain, heading: plain, code: plain,
		}
	}

	keyStyle := plain.Foreground(t.HelpKey)
	descStyle := plain.Foreground(t.HelpValue)
	sepStyle := plain.Foreground(t.FooterFG)
	return styles{
		title:     plain.Foreground(t.TitleFG).Bold(true),
		header:    plain.Foreground(t.HeaderFG),
		label:     plain.Foreground(t.LabelFG),
		value:     plain.Foreground(t.ValueFG),
		disabled:  plain.Foreground(t.DisabledFG).Faint(true),
		focus:     plain.Foreground(t.FocusFG).Background(t.FocusBG).Bold(true),
		inRange:   plain.Foreground(t.RangeFG),
		anchor:    plain.Foreground(t.AnchorFG).Bold(true),
		selected:  plain.Foreground(t.SelectedFG).Underline(true),
		status:    plain.Foreground(t.StatusColor),
		statusErr: plain.Foreground(t.StatusError),
		statusOK:  plain.Foreground(t.StatusSuccess),
		footer:    plain.Foreground(t.FooterFG),
		heading:   plain.Foreground(t.HelpKey).Bold(true),
		code:      plain.Foreground(t.HelpKey),
		help: help.Styles{
			ShortKey:       keyStyle,
			ShortDesc:      descStyle,
			ShortSeparator: sepStyle,
			Ellipsis:       sepStyle,
			FullKey:        keyStyle,
			FullDesc:       descStyle,
			FullSeparator:  sepStyle,
		},
	}
}
