package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"hearth/internal/pantry"
	"hearth/internal/prompt"
	"hearth/internal/score"
)

type tab int

const (
	tabPantry tab = iota
	tabScores
)

type expiryMode int

const (
	expiryAll expiryMode = iota
	expirySoon
	expiryPast
)

func (e expiryMode) String() string {
	switch e {
	case expirySoon:
		return "expiring soon"
	case expiryPast:
		return "expired"
	default:
		return "all"
	}
}

// confirmation is a pending y/n question; cmd runs only on "y".
type confirmation struct {
	message string
	cmd     tea.Cmd
}

type boardModel struct {
	ctx    context.Context
	pantry *pantry.Service
	scores *score.Service
	keys   keyMap

	width  int
	height int
	tab    tab

	items    []pantry.Item
	counts   pantry.Counts
	today    pantry.Date
	category int // index into categoryChoices
	location int // index into locationChoices
	expiry   expiryMode
	sortIdx  int

	games []score.Game
	stats score.Stats

	selected int
	pending  *confirmation

	lastLog string
	loading bool
	err     error
}

var (
	categoryChoices = append([]pantry.Category{pantry.Any}, pantry.Categories...)
	locationChoices = append([]pantry.Location{pantry.Any}, pantry.Locations...)
)

type pantryLoadedMsg struct {
	items  []pantry.Item
	counts pantry.Counts
	today  pantry.Date
	err    error
}

type scoresLoadedMsg struct {
	games []score.Game
	stats score.Stats
	err   error
}

// actionMsg reports a finished mutation; the board reloads after it.
type actionMsg struct {
	log string
	err error
}

func newBoardModel(ctx context.Context, pantrySvc *pantry.Service, scoreSvc *score.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		pantry:  pantrySvc,
		scores:  scoreSvc,
		keys:    defaultKeyMap(),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadPantryCmd(), m.loadScoresCmd())
}

func (m boardModel) filter() pantry.Filter {
	return pantry.Filter{
		Category:     categoryChoices[m.category],
		Location:     locationChoices[m.location],
		ExpiringSoon: m.expiry == expirySoon,
		Expired:      m.expiry == expiryPast,
	}
}

func (m boardModel) sortKey() pantry.SortKey {
	return pantry.SortKeys[m.sortIdx]
}

func (m boardModel) loadPantryCmd() tea.Cmd {
	f, sk := m.filter(), m.sortKey()
	return func() tea.Msg {
		items, err := m.pantry.Query(m.ctx, f, sk)
		if err != nil {
			return pantryLoadedMsg{err: err}
		}
		counts, err := m.pantry.Counts(m.ctx)
		if err != nil {
			return pantryLoadedMsg{err: err}
		}
		return pantryLoadedMsg{items: items, counts: counts, today: m.pantry.Today()}
	}
}

func (m boardModel) loadScoresCmd() tea.Cmd {
	return func() tea.Msg {
		games, err := m.scores.Games(m.ctx)
		if err != nil {
			return scoresLoadedMsg{err: err}
		}
		return scoresLoadedMsg{games: games, stats: score.Summarize(games)}
	}
}

func (m boardModel) useCmd(it pantry.Item, c prompt.Confirmer) tea.Cmd {
	return func() tea.Msg {
		res, err := m.pantry.UseOne(m.ctx, it.ID, c)
		switch {
		case err != nil:
			return actionMsg{err: err}
		case res.Removed:
			return actionMsg{log: fmt.Sprintf("Used the last %s; removed.", it.Name)}
		case !res.Found:
			return actionMsg{log: "Item not found."}
		default:
			return actionMsg{log: fmt.Sprintf("Used one %s, %d left.", it.Name, res.Remaining)}
		}
	}
}

func (m boardModel) deleteItemCmd(it pantry.Item) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.pantry.Delete(m.ctx, it.ID, prompt.Always)
		if err != nil {
			return actionMsg{err: err}
		}
		if !ok {
			return actionMsg{log: "Item not found."}
		}
		return actionMsg{log: "Deleted " + it.Name + "."}
	}
}

func (m boardModel) deleteGameCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ok, err := m.scores.DeleteGame(m.ctx, id, prompt.Always)
		if err != nil {
			return actionMsg{err: err}
		}
		if !ok {
			return actionMsg{log: "Game not found."}
		}
		return actionMsg{log: fmt.Sprintf("Deleted game %d.", id)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case pantryLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.items, m.counts, m.today = msg.items, msg.counts, msg.today
		m.clampSelection()
		return m, nil
	case scoresLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.games, m.stats = msg.games, msg.stats
		m.clampSelection()
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, tea.Batch(m.loadPantryCmd(), m.loadScoresCmd())
	case tea.KeyMsg:
		if m.pending != nil {
			return m.updateConfirm(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m boardModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		cmd := m.pending.cmd
		m.pending = nil
		return m, cmd
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Quit):
		m.pending = nil
		m.lastLog = "Cancelled."
		return m, nil
	}
	return m, nil
}

func (m boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, tea.Batch(m.loadPantryCmd(), m.loadScoresCmd())
	case key.Matches(msg, m.keys.Tab):
		if m.tab == tabPantry {
			m.tab = tabScores
		} else {
			m.tab = tabPantry
		}
		m.selected = 0
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.selected < m.rowCount()-1 {
			m.selected++
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		return m.askDelete()
	}

	if m.tab != tabPantry {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Use):
		it := m.selectedItem()
		if it == nil {
			return m, nil
		}
		if it.Quantity > 1 {
			return m, m.useCmd(*it, prompt.Never)
		}
		m.pending = &confirmation{message: pantry.ConfirmLastOne, cmd: m.useCmd(*it, prompt.Always)}
		return m, nil
	case key.Matches(msg, m.keys.Category):
		m.category = (m.category + 1) % len(categoryChoices)
	case key.Matches(msg, m.keys.Location):
		m.location = (m.location + 1) % len(locationChoices)
	case key.Matches(msg, m.keys.Expiry):
		m.expiry = (m.expiry + 1) % 3
	case key.Matches(msg, m.keys.Sort):
		m.sortIdx = (m.sortIdx + 1) % len(pantry.SortKeys)
	default:
		return m, nil
	}
	m.selected = 0
	return m, m.loadPantryCmd()
}

func (m boardModel) askDelete() (tea.Model, tea.Cmd) {
	switch m.tab {
	case tabPantry:
		if it := m.selectedItem(); it != nil {
			m.pending = &confirmation{message: pantry.ConfirmDelete, cmd: m.deleteItemCmd(*it)}
		}
	case tabScores:
		if m.selected >= 0 && m.selected < len(m.games) {
			m.pending = &confirmation{message: score.ConfirmDeleteGame, cmd: m.deleteGameCmd(m.games[m.selected].ID)}
		}
	}
	return m, nil
}

func (m boardModel) rowCount() int {
	if m.tab == tabScores {
		return len(m.games)
	}
	return len(m.items)
}

func (m *boardModel) clampSelection() {
	if n := m.rowCount(); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) selectedItem() *pantry.Item {
	if m.tab != tabPantry || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	it := m.items[m.selected]
	return &it
}
