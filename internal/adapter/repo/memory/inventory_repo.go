package memory

import (
	"context"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type InventoryRepo struct {
	store *Store
}

func NewInventoryRepo(store *Store) InventoryRepo {
	return InventoryRepo{store: store}
}

func (r InventoryRepo) Insert(ctx context.Context, item world.InventoryItem) (world.InventoryItem, error) {
	err := r.store.with(ctx, func(t *tables) error {
		item.ID = t.nextID("inventory")
		t.inventory[item.ID] = item
		return nil
	})
	return item, err
}

func (r InventoryRepo) Get(ctx context.Context, id uint64) (world.InventoryItem, error) {
	var out world.InventoryItem
	err := r.store.with(ctx, func(t *tables) error {
		item, ok := t.inventory[id]
		if !ok {
			return ports.ErrNotFound
		}
		out = item
		return nil
	})
	return out, err
}

func (r InventoryRepo) ListByOwner(ctx context.Context, owner world.UserID) ([]world.InventoryItem, error) {
	var out []world.InventoryItem
	err := r.store.with(ctx, func(t *tables) error {
		for _, item := range t.inventory {
			if item.Owner == owner {
				out = append(out, item)
			}
		}
		return nil
	})
	return sortedByID(out, func(i world.InventoryItem) uint64 { return i.ID }), err
}

func (r InventoryRepo) Delete(ctx context.Context, id uint64) error {
	return r.store.with(ctx, func(t *tables) error {
		if _, ok := t.inventory[id]; !ok {
			return ports.ErrNotFound
		}
		delete(t.inventory, id)
		return nil
	})
}
