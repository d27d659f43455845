package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

type note struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

func newTestRepo(t *testing.T) *KVRepo {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "nested", "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewKVRepo(db)
}

func TestMigrateIsRepeatable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestCollectionMissingKeyIsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	c := NewCollection[note](repo, "notes")

	got, err := c.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("load=%v, want empty non-nil slice", got)
	}
}

func TestCollectionSaveReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	c := NewCollection[note](repo, "notes")

	if err := c.Save(ctx, []note{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Save(ctx, []note{{ID: 3, Text: "c"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("load=%v, want only id 3", got)
	}

	raw, ok, err := repo.Get(ctx, "notes")
	if err != nil || !ok {
		t.Fatalf("get raw: ok=%v err=%v", ok, err)
	}
	if string(raw) != `[{"id":3,"text":"c"}]` {
		t.Fatalf("raw=%s", raw)
	}
}

func TestCollectionClear(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	c := NewCollection[note](repo, "notes")

	if err := c.Save(ctx, []note{{ID: 1}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := repo.Get(ctx, "notes"); ok {
		t.Fatalf("key still present after clear")
	}
}

func TestCollectionCorruptValue(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if err := repo.Put(ctx, "notes", []byte(`{not json`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	c := NewCollection[note](repo, "notes")
	if _, err := c.Load(ctx); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("load err=%v, want ErrCorrupt", err)
	}

	// A failed update must not touch the stored bytes.
	err := c.Update(ctx, func(items []note) ([]note, error) { return items, nil })
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("update err=%v, want ErrCorrupt", err)
	}
	raw, _, _ := repo.Get(ctx, "notes")
	if string(raw) != `{not json` {
		t.Fatalf("raw=%s, want original bytes", raw)
	}
}

func TestCollectionUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	c := NewCollection[note](repo, "notes")
	if err := c.Save(ctx, []note{{ID: 1, Text: "keep"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	boom := errors.New("boom")
	err := c.Update(ctx, func(items []note) ([]note, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("update err=%v, want boom", err)
	}

	got, err := c.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Text != "keep" {
		t.Fatalf("load=%v, want unchanged", got)
	}
}

func TestKVList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	if err := repo.Put(ctx, "b", []byte("[]")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "a", []byte("[1]")); err != nil {
		t.Fatalf("put: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "a" || list[0].Size != 3 {
		t.Fatalf("list=%+v", list)
	}
}

func TestResolveDBPath(t *testing.T) {
	if got, _ := ResolveDBPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Fatalf("configured path ignored: %s", got)
	}
	t.Setenv(EnvDBPath, "/tmp/env.db")
	if got, _ := ResolveDBPath(""); got != "/tmp/env.db" {
		t.Fatalf("env path ignored: %s", got)
	}
}
