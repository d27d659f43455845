package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"hearth/internal/pantry"
	"hearth/internal/score"
)

// RunBoard opens the interactive pantry and score board.
func RunBoard(ctx context.Context, pantrySvc *pantry.Service, scoreSvc *score.Service, out io.Writer) error {
	m := newBoardModel(ctx, pantrySvc, scoreSvc)
	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
