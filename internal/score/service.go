package score

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"hearth/internal/prompt"
	"hearth/internal/storage"
)

// StorageKey is the key the saved games live under.
const StorageKey = "everdellGames"

const (
	ConfirmDeleteGame = "🗑️ Delete this game?"
	ConfirmClearAll   = "⚠️ Are you sure you want to delete ALL game data? This cannot be undone!"
	ConfirmClearAgain = "Really sure? This will delete everything!"
)

// GameStore is the narrow persistence surface the service needs. The whole
// collection is read and written at once.
type GameStore interface {
	Load(ctx context.Context) ([]Game, error)
	Save(ctx context.Context, games []Game) error
	Update(ctx context.Context, fn func(games []Game) ([]Game, error)) error
	Clear(ctx context.Context) error
}

// NewStore returns the SQLite-backed game collection.
func NewStore(db *sql.DB) *storage.Collection[Game] {
	return storage.NewCollection[Game](storage.NewKVRepo(db), StorageKey)
}

type Service struct {
	games  GameStore
	logger *slog.Logger
	now    func() time.Time
}

func NewService(games GameStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		games:  games,
		logger: logger.With("app", "score"),
		now:    time.Now,
	}
}

// WithClock replaces the time source used to stamp new games.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Games returns every saved game, newest first. Games from older versions
// are migrated first and, if anything changed, written back.
func (s *Service) Games(ctx context.Context) ([]Game, error) {
	stored, err := s.games.Load(ctx)
	if err != nil {
		return nil, err
	}
	games, changed := MigrateAll(stored)
	if changed {
		if err := s.games.Save(ctx, games); err != nil {
			return nil, fmt.Errorf("save migrated games: %w", err)
		}
		s.logger.Info("migrated saved games", "version", CurrentVersion, "games", len(games))
	}
	return games, nil
}

// SaveGame finalizes the draft and stores it as the newest game.
func (s *Service) SaveGame(ctx context.Context, d *Draft) (*Game, error) {
	game, err := d.Finalize(s.now())
	if err != nil {
		return nil, err
	}
	err = s.games.Update(ctx, func(games []Game) ([]Game, error) {
		games, _ = MigrateAll(games)
		return append([]Game{game}, games...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	s.logger.Debug("game saved", "id", game.ID, "players", len(game.Players), "winner", game.Players[0].Name)
	return &game, nil
}

// DeleteGame removes one game after confirmation. An unknown id is a
// no-op and is not confirmed. deleted is false when nothing was removed.
func (s *Service) DeleteGame(ctx context.Context, id int64, c prompt.Confirmer) (bool, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return false, err
	}
	if indexOfGame(games, id) < 0 {
		return false, nil
	}
	ok, err := c.Confirm(ConfirmDeleteGame)
	if err != nil || !ok {
		return false, err
	}

	deleted := false
	err = s.games.Update(ctx, func(games []Game) ([]Game, error) {
		i := indexOfGame(games, id)
		if i < 0 {
			return games, nil
		}
		deleted = true
		return append(games[:i], games[i+1:]...), nil
	})
	if err != nil {
		return false, fmt.Errorf("delete game: %w", err)
	}
	if deleted {
		s.logger.Debug("game deleted", "id", id)
	}
	return deleted, nil
}

// ClearAll wipes every saved game after two separate confirmations.
func (s *Service) ClearAll(ctx context.Context, c prompt.Confirmer) (bool, error) {
	ok, err := prompt.Twice(c, ConfirmClearAll, ConfirmClearAgain)
	if err != nil || !ok {
		return false, err
	}
	if err := s.games.Clear(ctx); err != nil {
		return false, fmt.Errorf("clear games: %w", err)
	}
	s.logger.Info("all game data cleared")
	return true, nil
}

// Export writes every game as an indented JSON array and returns how many
// were written.
func (s *Service) Export(ctx context.Context, w io.Writer) (int, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(games, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("encode games: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return 0, err
	}
	return len(games), nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	games, err := s.Games(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Summarize(games), nil
}

func indexOfGame(games []Game, id int64) int {
	for i := range games {
		if games[i].ID == id {
			return i
		}
	}
	return -1
}
