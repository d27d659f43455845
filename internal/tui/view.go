package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"hearth/internal/score"
	"hearth/internal/ui"
)

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	var sidebar, main string
	if m.tab == tabScores {
		sidebar, main = m.renderScoresSidebar(), m.renderGames()
	} else {
		sidebar, main = m.renderPantrySidebar(), m.renderItems()
	}
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := len(linesLeft)
	if len(linesRight) > rows {
		rows = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	tabs := []string{"Pantry", "Scores"}
	for i, t := range tabs {
		if tab(i) == m.tab {
			tabs[i] = ui.TabActive.Render(t)
		} else {
			tabs[i] = ui.TabInactive.Render(t)
		}
	}
	return ui.Heading(ui.IconHearth, "Hearth") + "  " + strings.Join(tabs, " | ")
}

func (m boardModel) renderPantrySidebar() string {
	lines := []string{
		"Inventory",
		fmt.Sprintf("- total: %d", m.counts.Total),
		fmt.Sprintf("- expiring soon: %d", m.counts.ExpiringSoon),
		fmt.Sprintf("- expired: %d", m.counts.Expired),
		"",
		"View",
		"- category: " + string(categoryChoices[m.category]),
		"- location: " + string(locationChoices[m.location]),
		"- expiry: " + m.expiry.String(),
		"- sort: " + string(m.sortKey()),
		"",
	}
	return strings.Join(append(lines, helpLines(m.keys.pantryHelp())...), "\n")
}

func (m boardModel) renderScoresSidebar() string {
	lines := []string{"Stats"}
	if m.stats.Empty() {
		lines = append(lines, "(no games yet)")
	} else {
		lines = append(lines,
			fmt.Sprintf("- games: %d", m.stats.TotalGames),
			fmt.Sprintf("- best: %d (%s)", m.stats.HighestScore, m.stats.HighestScorePlayer),
		)
		for _, p := range m.stats.Players {
			lines = append(lines, fmt.Sprintf("- %s %d/%d %s", p.Name, p.Wins, p.Games, ui.Bar(p.WinRate(), 100, 10)))
		}
	}
	lines = append(lines, "")
	return strings.Join(append(lines, helpLines(m.keys.scoresHelp())...), "\n")
}

func helpLines(bindings []key.Binding) []string {
	out := []string{"Keys"}
	for _, b := range bindings {
		h := b.Help()
		out = append(out, fmt.Sprintf("- %s: %s", h.Key, h.Desc))
	}
	return out
}

func (m boardModel) renderItems() string {
	if m.loading {
		return "Loading…"
	}
	out := []string{"Items"}
	if len(m.items) == 0 {
		return strings.Join(append(out, "(nothing here)"), "\n")
	}
	for i, it := range m.items {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s x%d%s", cursor, it.Category.Label().Emoji, it.Name, it.Quantity, unitSuffix(it.Unit))
		line += "  " + it.Location.Label().Emoji
		if it.Expiration != nil {
			line += " " + ui.IconCalendar + " " + it.Expiration.String()
		}
		if badge := ui.ExpiryText(it.Status(m.today).String()); badge != "" {
			line += " " + badge
		}
		if i == m.selected {
			line = ui.SelectedRow.Render(line)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func unitSuffix(unit string) string {
	if unit == "" {
		return ""
	}
	return " " + unit
}

func (m boardModel) renderGames() string {
	out := []string{"History"}
	if len(m.games) == 0 {
		return strings.Join(append(out, ui.IconTree+" No games recorded yet."), "\n")
	}
	for i, g := range m.games {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		head := fmt.Sprintf("%s%s %s", cursor, ui.IconCalendar, g.Date.Local().Format("Mon Jan 2 2006 15:04"))
		if i == m.selected {
			head = ui.SelectedRow.Render(head)
		}
		out = append(out, head)
		for rank, p := range g.Players {
			out = append(out, "    "+playerLine(rank, p))
		}
		if g.Notes != nil {
			out = append(out, "    "+ui.IconNote+" "+*g.Notes)
		}
	}
	return strings.Join(out, "\n")
}

func playerLine(rank int, p score.PlayerResult) string {
	season := p.Season
	if season == "" {
		season = score.DefaultSeason
	}
	parts := []string{ui.Medal(rank), p.Name, season.Info().Icon, fmt.Sprint(p.TotalScore)}
	for _, c := range score.Chips(p.Breakdown) {
		parts = append(parts, ui.Chip(c.Category.Info().Icon, c.Points))
	}
	return strings.Join(parts, " ")
}

func (m boardModel) renderFooter() string {
	if m.pending != nil {
		return "\n" + ui.Warn.Render(m.pending.message) + " [y/n]"
	}
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
