package root

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hearth/internal/pantry"
	"hearth/internal/storage"
)

type testEnv struct {
	dir string
	db  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(storage.EnvDBPath, "")
	return &testEnv{dir: dir, db: filepath.Join(dir, "hearth.db")}
}

// run executes one CLI invocation against the env's database, feeding
// stdin to any confirmation.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", e.db}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) items(t *testing.T) []pantry.Item {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, e.db)
	require.NoError(t, err)
	defer db.Close()
	items, err := pantry.NewService(pantry.NewStore(db), nil).Items(ctx)
	require.NoError(t, err)
	return items
}

func TestScoreSaveHistoryStats(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "score", "save",
		"Tyler,cards=30,tokens=4,purple=6,journey=3,events=1",
		"Hanna,season=spring,cards=20,special=Festival:2",
		"--notes", "close one")
	require.NoError(t, err)
	assert.Contains(t, out, "Game saved! Tyler won with 46 points!")

	out, err = env.run(t, "", "score", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Tyler")
	assert.Contains(t, out, "🌸")
	assert.Contains(t, out, "close one")
	assert.Contains(t, out, "🏠 30")

	out, err = env.run(t, "", "score", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total games: 1")
	assert.Contains(t, out, "46 (Tyler)")
	assert.Contains(t, out, "Where Points Come From")
}

func TestScoreSaveUsesDefaultPlayers(t *testing.T) {
	env := newTestEnv(t)

	// Hanna is seated from the defaults and recorded with zero.
	out, err := env.run(t, "", "score", "save", "Tyler,cards=12")
	require.NoError(t, err)
	assert.Contains(t, out, "Hanna")

	_, err = env.run(t, "", "score", "save", "--players", "", "Solo,cards=3")
	assert.Error(t, err)

	_, err = env.run(t, "", "score", "save", "Tyler", "Hanna")
	assert.ErrorContains(t, err, "please enter some scores")
}

func TestScoreTotalDoesNotSave(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "score", "total", "Tyler,cards=10,events=9", "Hanna,journey=3+4,j2=2")
	require.NoError(t, err)
	assert.Contains(t, out, "Tyler 🍁 22")
	assert.Contains(t, out, "Hanna 🍁 11")

	out, err = env.run(t, "", "score", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No games recorded yet.")
}

func TestScoreClearAsksTwice(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "score", "save", "Tyler,cards=1", "Hanna,cards=2")
	require.NoError(t, err)

	out, err := env.run(t, "y\nn\n", "score", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing cleared.")

	out, err = env.run(t, "y\ny\n", "score", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All data cleared!")

	out, err = env.run(t, "", "score", "export")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestPantryAddListUse(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "pantry", "add", "Milk", "-q", "2", "-u", "gallon", "-c", "dairy", "-l", "fridge", "-e", "2099-01-01")
	require.NoError(t, err)
	_, err = env.run(t, "", "pantry", "add", "Rice")
	require.NoError(t, err)

	_, err = env.run(t, "", "pantry", "add", "Ghost", "-q", "0")
	assert.ErrorContains(t, err, "quantity")
	_, err = env.run(t, "", "pantry", "add", "Ghost", "-c", "toys")
	assert.Error(t, err)

	out, err := env.run(t, "", "pantry", "list", "--category", "dairy")
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.NotContains(t, out, "Rice")

	out, err = env.run(t, "", "pantry", "list", "--sort", "name-desc")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Rice"), strings.Index(out, "Milk"))

	items := env.items(t)
	require.Len(t, items, 2)
	milk := items[0]

	out, err = env.run(t, "", "pantry", "use", milk.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "1 left")

	out, err = env.run(t, "n\n", "pantry", "use", milk.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Kept Milk.")
	assert.Contains(t, out, pantry.ConfirmLastOne)
	assert.Len(t, env.items(t), 2)

	out, err = env.run(t, "", "--yes", "pantry", "use", milk.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "removed from inventory")
	assert.Len(t, env.items(t), 1)

	out, err = env.run(t, "", "pantry", "use", "does-not-exist")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to use.")
}

func TestPantryEditReplaces(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "pantry", "add", "Peas", "-c", "frozen", "-l", "fridge", "-e", "2099-05-01", "--notes", "garden")
	require.NoError(t, err)
	before := env.items(t)[0]

	_, err = env.run(t, "", "pantry", "edit", before.ID, "-l", "freezer", "--no-expiry")
	require.NoError(t, err)

	items := env.items(t)
	require.Len(t, items, 1)
	after := items[0]
	assert.NotEqual(t, before.ID, after.ID)
	assert.Equal(t, pantry.LocationFreezer, after.Location)
	assert.Equal(t, pantry.CategoryFrozen, after.Category)
	assert.Nil(t, after.Expiration)
	require.NotNil(t, after.Notes)
	assert.Equal(t, "garden", *after.Notes)
}

func TestPantryExportImport(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "pantry", "add", "Flour", "-c", "baking", "-l", "cabinet")
	require.NoError(t, err)

	exportDir := filepath.Join(env.dir, "exports")
	out, err := env.run(t, "", "pantry", "export", "--zstd", "--dir", exportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 items")

	files, err := filepath.Glob(filepath.Join(exportDir, "pantry-inventory-*.json.zst"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	_, err = env.run(t, "y\ny\n", "pantry", "clear")
	require.NoError(t, err)
	assert.Empty(t, env.items(t))

	out, err = env.run(t, "y\n", "pantry", "import", files[0])
	require.NoError(t, err)
	assert.Contains(t, out, "Import successful! 1 items.")
	items := env.items(t)
	require.Len(t, items, 1)
	assert.Equal(t, "Flour", items[0].Name)

	bad := filepath.Join(env.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not": "an array"}`), 0o644))
	_, err = env.run(t, "", "--yes", "pantry", "import", bad)
	assert.ErrorIs(t, err, pantry.ErrInvalidFormat)
	assert.Len(t, env.items(t), 1)
}

func TestPantryStats(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "pantry", "add", "Old bread", "-e", "2000-01-01")
	require.NoError(t, err)

	out, err := env.run(t, "", "pantry", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total items: 1")
	assert.Contains(t, out, "Expired: 1")

	out, err = env.run(t, "", "pantry", "list", "--expired")
	require.NoError(t, err)
	assert.Contains(t, out, "Old bread")
	assert.Contains(t, out, "expired")
}

func TestConfigShowAndStore(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv(storage.EnvDBPath, "/env/hearth.db")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "show"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "path: /env/hearth.db")
	assert.Contains(t, out.String(), "- Tyler")

	t.Setenv(storage.EnvDBPath, "")
	_, err := env.run(t, "", "pantry", "add", "Salt", "-c", "condiments")
	require.NoError(t, err)
	storeOut, err := env.run(t, "", "store")
	require.NoError(t, err)
	assert.Contains(t, storeOut, env.db)
	assert.Contains(t, storeOut, pantry.StorageKey)
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created")
	_, err = os.Stat(filepath.Join(env.dir, ".config", "hearth", "config.yaml"))
	require.NoError(t, err)

	out, err = env.run(t, "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Already exists")
}
