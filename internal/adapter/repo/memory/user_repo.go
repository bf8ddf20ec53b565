package memory

import (
	"context"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type UserRepo struct {
	store *Store
}

func NewUserRepo(store *Store) UserRepo {
	return UserRepo{store: store}
}

func (r UserRepo) Get(ctx context.Context, id world.UserID) (world.User, error) {
	var out world.User
	err := r.store.with(ctx, func(t *tables) error {
		u, ok := t.users[id]
		if !ok {
			return ports.ErrNotFound
		}
		out = u
		return nil
	})
	return out, err
}

func (r UserRepo) Insert(ctx context.Context, user world.User) (world.User, error) {
	err := r.store.with(ctx, func(t *tables) error {
		if _, exists := t.users[user.ID]; exists {
			return ports.ErrConflict
		}
		user.Version = 1
		t.users[user.ID] = user
		return nil
	})
	return user, err
}

func (r UserRepo) Update(ctx context.Context, user world.User) (world.User, error) {
	err := r.store.with(ctx, func(t *tables) error {
		current, ok := t.users[user.ID]
		if !ok {
			return ports.ErrNotFound
		}
		if current.Version != user.Version {
			return ports.ErrConflict
		}
		user.Version++
		t.users[user.ID] = user
		return nil
	})
	return user, err
}
