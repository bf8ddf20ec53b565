package memory

import (
	"context"
	"sort"
	"sync"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type tables struct {
	seq          map[string]uint64
	users        map[world.UserID]world.User
	doors        map[uint64]world.Door
	visits       []world.Visit
	decor        map[uint64]world.Decor
	inventory    map[uint64]world.InventoryItem
	packages     map[uint64]world.Package
	packageItems map[uint64]world.PackageItem
	interactions []world.Interaction
	credentials  map[world.UserID]ports.PlayerCredentialRecord
}

func newTables() *tables {
	return &tables{
		seq:          map[string]uint64{},
		users:        map[world.UserID]world.User{},
		doors:        map[uint64]world.Door{},
		decor:        map[uint64]world.Decor{},
		inventory:    map[uint64]world.InventoryItem{},
		packages:     map[uint64]world.Package{},
		packageItems: map[uint64]world.PackageItem{},
		credentials:  map[world.UserID]ports.PlayerCredentialRecord{},
	}
}

func (t *tables) clone() *tables {
	out := &tables{
		seq:          cloneMap(t.seq),
		users:        cloneMap(t.users),
		doors:        cloneMap(t.doors),
		visits:       append([]world.Visit(nil), t.visits...),
		decor:        cloneMap(t.decor),
		inventory:    cloneMap(t.inventory),
		packages:     cloneMap(t.packages),
		packageItems: cloneMap(t.packageItems),
		interactions: append([]world.Interaction(nil), t.interactions...),
		credentials:  cloneMap(t.credentials),
	}
	return out
}

func (t *tables) nextID(table string) uint64 {
	t.seq[table]++
	return t.seq[table]
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedByID[T any](rows []T, id func(T) uint64) []T {
	sort.Slice(rows, func(i, j int) bool { return id(rows[i]) < id(rows[j]) })
	return rows
}

// Store keeps every table in memory. Transactions work on a private copy of the tables
// that replaces the committed copy only when the transaction body succeeds; the store
// mutex is held for the whole transaction, so transactions are serial.
type Store struct {
	mu   sync.Mutex
	data *tables
}

func NewStore() *Store {
	return &Store{data: newTables()}
}

type txKeyType struct{}

type txState struct {
	store *Store
	data  *tables
}

func (s *Store) fromTx(ctx context.Context) (*tables, bool) {
	st, ok := ctx.Value(txKeyType{}).(*txState)
	if !ok || st.store != s {
		return nil, false
	}
	return st.data, true
}

// with runs fn against the transaction's tables, or against the committed tables
// (auto-commit) when ctx carries no transaction of this store.
func (s *Store) with(ctx context.Context, fn func(t *tables) error) error {
	if t, ok := s.fromTx(ctx); ok {
		return fn(t)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// NewRepositories wires every repository against store.
func NewRepositories(store *Store) ports.Repositories {
	return ports.Repositories{
		Users:        NewUserRepo(store),
		Doors:        NewDoorRepo(store),
		Visits:       NewVisitRepo(store),
		Decor:        NewDecorRepo(store),
		Inventory:    NewInventoryRepo(store),
		Packages:     NewPackageRepo(store),
		PackageItems: NewPackageItemRepo(store),
		Interactions: NewInteractionRepo(store),
		Credentials:  NewCredentialRepo(store),
	}
}
