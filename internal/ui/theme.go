package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Hearth theme (CLI + TUI).
// Kept small: reusable styles and a few emojis.

const (
	IconHearth   = "🔥"
	IconTree     = "🌳"
	IconTrophy   = "🏆"
	IconCalendar = "📅"
	IconNote     = "📝"
	IconChart    = "📊"
	IconPantry   = "🥫"
	IconBox      = "📦"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTrash    = "🗑️"
	IconBroom    = "🧹"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconExpired  = "🚨"
	IconError    = "🧨"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("130") // bark
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	TabActive   = lipgloss.NewStyle().Bold(true).Foreground(cGold).Underline(true)
	TabInactive = lipgloss.NewStyle().Foreground(cMuted)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// ExpiryText renders a pantry expiry status ("expired", "expiring soon",
// anything else is shown muted).
func ExpiryText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "expired":
		return Bad.Render(IconExpired + " expired")
	case "expiring soon":
		return Warn.Render(IconWarn + " expiring soon")
	default:
		return ""
	}
}

// Chip renders a compact "icon value" badge.
func Chip(icon string, value int) string {
	return Muted.Render(fmt.Sprintf("%s %d", icon, value))
}

// Medal marks the top three places.
func Medal(rank int) string {
	switch rank {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "  "
	}
}

// Bar draws a fixed-width ASCII progress bar.
func Bar(value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := int(value / total * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
