package preferences

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/takeaway/internal/models"
)

// fakePool stands in for a pgx pool, keeping rows in a map.
type fakePool struct {
	rows    map[string][]string
	execErr error
	execs   int
}

type fakeRow struct {
	value []string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]string) = r.value
	return nil
}

func (p *fakePool) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	p.execs++
	if p.execErr != nil {
		return pgconn.CommandTag{}, p.execErr
	}
	if len(args) == 2 {
		p.rows[args[0].(string)] = args[1].([]string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (p *fakePool) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	value, ok := p.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: value}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := OpenSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory":   NewMemoryStore(),
		"file":     NewFileStore(filepath.Join(t.TempDir(), "nested", "preferences.yaml")),
		"sqlite":   sqlite,
		"postgres": NewPostgresStore(&fakePool{rows: map[string][]string{}}),
	}
}

func TestStores_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get(ctx, "favourite_restaurants")
			require.NoError(t, err)
			assert.False(t, ok, "unset key should report missing")

			require.NoError(t, store.Set(ctx, "favourite_restaurants", []string{"Royal Thai", "Sushi One"}))
			value, ok, err := store.Get(ctx, "favourite_restaurants")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []string{"Royal Thai", "Sushi One"}, value)

			require.NoError(t, store.Set(ctx, "favourite_restaurants", []string{"Sushi One"}))
			value, _, err = store.Get(ctx, "favourite_restaurants")
			require.NoError(t, err)
			assert.Equal(t, []string{"Sushi One"}, value)
		})
	}
}

func TestStores_EmptyValueIsPresent(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "k", nil))
			value, ok, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Empty(t, value)
		})
	}
}

func TestStores_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Set(ctx, "a", []string{"1"}))
			require.NoError(t, store.Set(ctx, "b", []string{"2"}))

			a, _, err := store.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, []string{"1"}, a)
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	in := []string{"A"}
	require.NoError(t, store.Set(ctx, "k", in))
	in[0] = "mutated"

	out, _, _ := store.Get(ctx, "k")
	assert.Equal(t, []string{"A"}, out)
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "preferences.yaml")

	require.NoError(t, NewFileStore(path).Set(ctx, "favourite_restaurants", []string{"Mama Mia"}))

	value, ok, err := NewFileStore(path).Get(ctx, "favourite_restaurants")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"Mama Mia"}, value)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.yaml")
	require.NoError(t, os.WriteFile(path, []byte("favourite_restaurants: {broken\n"), 0o644))

	_, _, err := NewFileStore(path).Get(context.Background(), "favourite_restaurants")
	assert.Error(t, err)
}

func TestPostgresStore_WrapsErrors(t *testing.T) {
	pool := &fakePool{rows: map[string][]string{}, execErr: errors.New("connection reset")}
	store := NewPostgresStore(pool)

	err := store.Set(context.Background(), "k", []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	err = store.Migrate(context.Background())
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, models.StoreConfig{Backend: models.StoreBackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, models.StoreConfig{Backend: models.StoreBackendFile, Path: filepath.Join(t.TempDir(), "p.yaml")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	store, err = Open(ctx, models.StoreConfig{Backend: models.StoreBackendSQLite, Path: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, store.Close())

	_, err = Open(ctx, models.StoreConfig{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
