package memory

import (
	"context"
	"time"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type DecorRepo struct {
	store *Store
}

func NewDecorRepo(store *Store) DecorRepo {
	return DecorRepo{store: store}
}

func (r DecorRepo) Insert(ctx context.Context, decor world.Decor) (world.Decor, error) {
	err := r.store.with(ctx, func(t *tables) error {
		decor.ID = t.nextID("decor")
		t.decor[decor.ID] = decor
		return nil
	})
	return decor, err
}

func (r DecorRepo) Get(ctx context.Context, id uint64) (world.Decor, error) {
	var out world.Decor
	err := r.store.with(ctx, func(t *tables) error {
		d, ok := t.decor[id]
		if !ok || d.Deleted() {
			return ports.ErrNotFound
		}
		out = d
		return nil
	})
	return out, err
}

func (r DecorRepo) ListByDoor(ctx context.Context, doorID uint64) ([]world.Decor, error) {
	var out []world.Decor
	err := r.store.with(ctx, func(t *tables) error {
		for _, d := range t.decor {
			if d.DoorID == doorID && !d.Deleted() {
				out = append(out, d)
			}
		}
		return nil
	})
	return sortedByID(out, func(d world.Decor) uint64 { return d.ID }), err
}

func (r DecorRepo) Update(ctx context.Context, decor world.Decor) error {
	return r.store.with(ctx, func(t *tables) error {
		current, ok := t.decor[decor.ID]
		if !ok || current.Deleted() {
			return ports.ErrNotFound
		}
		decor.DeletedAt = nil
		t.decor[decor.ID] = decor
		return nil
	})
}

func (r DecorRepo) Delete(ctx context.Context, id uint64, at time.Time) error {
	return r.store.with(ctx, func(t *tables) error {
		d, ok := t.decor[id]
		if !ok || d.Deleted() {
			return ports.ErrNotFound
		}
		d.DeletedAt = &at
		t.decor[id] = d
		return nil
	})
}
