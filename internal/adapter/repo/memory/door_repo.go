package memory

import (
	"context"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type DoorRepo struct {
	store *Store
}

func NewDoorRepo(store *Store) DoorRepo {
	return DoorRepo{store: store}
}

func (r DoorRepo) Insert(ctx context.Context, door world.Door) (world.Door, error) {
	err := r.store.with(ctx, func(t *tables) error {
		door.ID = t.nextID("doors")
		door.Version = 1
		t.doors[door.ID] = door
		return nil
	})
	return door, err
}

func (r DoorRepo) Get(ctx context.Context, id uint64) (world.Door, error) {
	var out world.Door
	err := r.store.with(ctx, func(t *tables) error {
		d, ok := t.doors[id]
		if !ok {
			return ports.ErrNotFound
		}
		out = d
		return nil
	})
	return out, err
}

func (r DoorRepo) ListByOccupant(ctx context.Context, occupant world.UserID) ([]world.Door, error) {
	return r.list(ctx, func(d world.Door) bool { return d.OccupiedBy(occupant) })
}

func (r DoorRepo) ListVacant(ctx context.Context) ([]world.Door, error) {
	return r.list(ctx, world.Door.Vacant)
}

func (r DoorRepo) list(ctx context.Context, match func(world.Door) bool) ([]world.Door, error) {
	var out []world.Door
	err := r.store.with(ctx, func(t *tables) error {
		for _, d := range t.doors {
			if match(d) {
				out = append(out, d)
			}
		}
		return nil
	})
	return sortedByID(out, func(d world.Door) uint64 { return d.ID }), err
}

func (r DoorRepo) Update(ctx context.Context, door world.Door) (world.Door, error) {
	err := r.store.with(ctx, func(t *tables) error {
		current, ok := t.doors[door.ID]
		if !ok {
			return ports.ErrNotFound
		}
		if current.Version != door.Version {
			return ports.ErrConflict
		}
		door.Version++
		t.doors[door.ID] = door
		return nil
	})
	return door, err
}
