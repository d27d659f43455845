package pantry

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"hearth/internal/prompt"
	"hearth/internal/storage"
)

// StorageKey is the key the inventory lives under.
const StorageKey = "pantry-inventory"

const (
	ConfirmDelete     = "Are you sure you want to delete this item?"
	ConfirmLastOne    = "This is the last one. Remove from inventory?"
	ConfirmClearAll   = "⚠️ WARNING: This will delete ALL inventory data. This cannot be undone. Are you sure?"
	ConfirmClearAgain = "Really delete everything? Consider exporting first."
)

// ConfirmImport is the question asked before an import replaces everything.
func ConfirmImport(n int) string {
	return fmt.Sprintf("Import %d items? This will replace your current inventory.", n)
}

// ItemStore is the narrow persistence surface the service needs.
type ItemStore interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
	Update(ctx context.Context, fn func(items []Item) ([]Item, error)) error
	Clear(ctx context.Context) error
}

// NewStore returns the SQLite-backed inventory collection.
func NewStore(db *sql.DB) *storage.Collection[Item] {
	return storage.NewCollection[Item](storage.NewKVRepo(db), StorageKey)
}

type Service struct {
	items  ItemStore
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

func NewService(items ItemStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		items:  items,
		logger: logger.With("app", "pantry"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock replaces the time source used for "today" and creation stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() Date { return Today(s.now()) }

func (s *Service) Items(ctx context.Context) ([]Item, error) {
	return s.items.Load(ctx)
}

// Get returns the item with id, or nil if there is none.
func (s *Service) Get(ctx context.Context, id string) (*Item, error) {
	items, err := s.items.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOfItem(items, id); i >= 0 {
		return &items[i], nil
	}
	return nil, nil
}

// Query filters then sorts the inventory.
func (s *Service) Query(ctx context.Context, f Filter, key SortKey) ([]Item, error) {
	items, err := s.items.Load(ctx)
	if err != nil {
		return nil, err
	}
	return SortItems(FilterItems(items, f, s.Today()), key), nil
}

func (s *Service) Counts(ctx context.Context) (Counts, error) {
	items, err := s.items.Load(ctx)
	if err != nil {
		return Counts{}, err
	}
	return CountItems(items, s.Today()), nil
}

func (s *Service) newItem(d Draft) (Item, error) {
	if err := d.Validate(); err != nil {
		return Item{}, err
	}
	it := Item{
		ID:         s.newID(),
		Name:       strings.TrimSpace(d.Name),
		Quantity:   d.Quantity,
		Unit:       strings.TrimSpace(d.Unit),
		Category:   d.Category,
		Location:   d.Location,
		Expiration: d.Expiration,
		AddedDate:  s.now().UnixMilli(),
	}
	if n := strings.TrimSpace(d.Notes); n != "" {
		it.Notes = &n
	}
	return it, nil
}

func (s *Service) Add(ctx context.Context, d Draft) (*Item, error) {
	it, err := s.newItem(d)
	if err != nil {
		return nil, err
	}
	err = s.items.Update(ctx, func(items []Item) ([]Item, error) {
		return append(items, it), nil
	})
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	s.logger.Debug("item added", "id", it.ID, "name", it.Name)
	return &it, nil
}

type UseResult struct {
	Found     bool
	Removed   bool
	Remaining int
}

// UseOne takes one unit. Above one the quantity drops by one; at exactly
// one the user is asked whether to remove the item, and it is deleted
// rather than left at zero.
func (s *Service) UseOne(ctx context.Context, id string, c prompt.Confirmer) (UseResult, error) {
	it, err := s.Get(ctx, id)
	if err != nil || it == nil {
		return UseResult{}, err
	}

	if it.Quantity > 1 {
		var res UseResult
		err := s.items.Update(ctx, func(items []Item) ([]Item, error) {
			i := indexOfItem(items, id)
			if i < 0 {
				return items, nil
			}
			items[i].Quantity--
			res = UseResult{Found: true, Remaining: items[i].Quantity}
			return items, nil
		})
		if err != nil {
			return UseResult{}, fmt.Errorf("use item: %w", err)
		}
		return res, nil
	}

	ok, err := c.Confirm(ConfirmLastOne)
	if err != nil {
		return UseResult{}, err
	}
	if !ok {
		return UseResult{Found: true, Remaining: it.Quantity}, nil
	}
	removed, err := s.remove(ctx, id)
	if err != nil {
		return UseResult{}, err
	}
	return UseResult{Found: true, Removed: removed}, nil
}

// Delete removes an item after confirmation. Unknown ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string, c prompt.Confirmer) (bool, error) {
	it, err := s.Get(ctx, id)
	if err != nil || it == nil {
		return false, err
	}
	ok, err := c.Confirm(ConfirmDelete)
	if err != nil || !ok {
		return false, err
	}
	return s.remove(ctx, id)
}

func (s *Service) remove(ctx context.Context, id string) (bool, error) {
	removed := false
	err := s.items.Update(ctx, func(items []Item) ([]Item, error) {
		i := indexOfItem(items, id)
		if i < 0 {
			return items, nil
		}
		removed = true
		return append(items[:i], items[i+1:]...), nil
	})
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}
	if removed {
		s.logger.Debug("item deleted", "id", id)
	}
	return removed, nil
}

// Replace edits an item by deleting it and creating a new one from d in the
// same write. The new item gets a fresh id and creation time. A missing id
// is a no-op returning nil.
func (s *Service) Replace(ctx context.Context, id string, d Draft) (*Item, error) {
	it, err := s.newItem(d)
	if err != nil {
		return nil, err
	}
	found := false
	err = s.items.Update(ctx, func(items []Item) ([]Item, error) {
		i := indexOfItem(items, id)
		if i < 0 {
			return items, nil
		}
		found = true
		items = append(items[:i], items[i+1:]...)
		return append(items, it), nil
	})
	if err != nil {
		return nil, fmt.Errorf("edit item: %w", err)
	}
	if !found {
		return nil, nil
	}
	s.logger.Debug("item replaced", "old_id", id, "id", it.ID)
	return &it, nil
}

// Export writes every item and returns how many were written.
func (s *Service) Export(ctx context.Context, w io.Writer, compressed bool) (int, error) {
	items, err := s.items.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := WriteExport(w, items, compressed); err != nil {
		return 0, err
	}
	s.logger.Info("inventory exported", "items", len(items), "zstd", compressed)
	return len(items), nil
}

// Import replaces the whole inventory with the items in data after
// confirmation. Malformed input returns an error and changes nothing.
func (s *Service) Import(ctx context.Context, data []byte, c prompt.Confirmer) (int, bool, error) {
	items, err := DecodeImport(data)
	if err != nil {
		return 0, false, err
	}
	ok, err := c.Confirm(ConfirmImport(len(items)))
	if err != nil || !ok {
		return len(items), false, err
	}
	if err := s.items.Save(ctx, items); err != nil {
		return 0, false, fmt.Errorf("import: %w", err)
	}
	s.logger.Info("inventory imported", "items", len(items))
	return len(items), true, nil
}

// ClearAll wipes the inventory after two separate confirmations.
func (s *Service) ClearAll(ctx context.Context, c prompt.Confirmer) (bool, error) {
	ok, err := prompt.Twice(c, ConfirmClearAll, ConfirmClearAgain)
	if err != nil || !ok {
		return false, err
	}
	if err := s.items.Clear(ctx); err != nil {
		return false, fmt.Errorf("clear inventory: %w", err)
	}
	s.logger.Info("inventory cleared")
	return true, nil
}

func indexOfItem(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
