package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	// Main styles
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7D56F4")).
		Background(lipgloss.Color("#000000")).
		Padding(1, 2).
		Align(lipgloss.Center)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#874BFD")).
		Padding(1, 2).
		MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EE6FF8")).
		Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA"))

	DisabledStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666"))

	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(0, 1)

	InfoStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(lipgloss.Color("#874BFD"))

	// Row drag states
	GrabbedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#EE6FF8")).
		Bold(true)

	TargetStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EE6FF8")).
		Underline(true)

	SettleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")).
		Bold(true)

	HandleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#874BFD")).
		Bold(true)

	BadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575"))

	// Data display styles
	ValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA"))

	PositiveStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#04B575")).
		Bold(true)

	NegativeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF5F87")).
		Bold(true)

	LoadingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFA500")).
		Bold(true)

	PriceStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFA500")).
		Bold(true)
)

func FormatMoney(value decimal.Decimal) string {
	abs := value.Abs()
	var s string
	switch {
	case abs.LessThan(decimal.New(1, 0)):
		s = abs.StringFixed(8)
	case abs.LessThan(decimal.New(10, 0)):
		s = abs.StringFixed(4)
	default:
		s = abs.StringFixed(2)
	}
	if value.Sign() < 0 {
		return NegativeStyle.Render("-$" + s)
	}
	return ValueStyle.Render("$" + s)
}

func FormatSignedMoney(value decimal.Decimal) string {
	if value.Sign() < 0 {
		return NegativeStyle.Render("-$" + value.Abs().StringFixed(2))
	}
	return PositiveStyle.Render("+$" + value.StringFixed(2))
}

func FormatPercent(value decimal.Decimal) string {
	if value.Sign() < 0 {
		return NegativeStyle.Render(value.StringFixed(2) + "%")
	}
	return PositiveStyle.Render("+" + value.StringFixed(2) + "%")
}

func FormatPrice(value decimal.Decimal) string {
	switch {
	case value.LessThan(decimal.New(1, 0)):
		return PriceStyle.Render("$" + value.StringFixed(8))
	case value.LessThan(decimal.New(10, 0)):
		return PriceStyle.Render("$" + value.StringFixed(4))
	default:
		return PriceStyle.Render("$" + value.StringFixed(2))
	}
}

func FormatCompact(value decimal.Decimal) string {
	f, _ := value.Float64()
	switch {
	case f >= 1e9:
		return ValueStyle.Render(fmt.Sprintf("$%.1fB", f/1e9))
	case f >= 1e6:
		return ValueStyle.Render(fmt.Sprintf("$%.1fM", f/1e6))
	case f >= 1e3:
		return ValueStyle.Render(fmt.Sprintf("$%.1fK", f/1e3))
	}
	return ValueStyle.Render(fmt.Sprintf("$%.0f", f))
}
