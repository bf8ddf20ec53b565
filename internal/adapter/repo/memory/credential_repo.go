package memory

import (
	"context"

	"doorhop/internal/app/ports"
	"doorhop/internal/domain/world"
)

type CredentialRepo struct {
	store *Store
}

func NewCredentialRepo(store *Store) CredentialRepo {
	return CredentialRepo{store: store}
}

func (r CredentialRepo) Create(ctx context.Context, credential ports.PlayerCredentialRecord) error {
	return r.store.with(ctx, func(t *tables) error {
		if _, exists := t.credentials[credential.PlayerID]; exists {
			return ports.ErrConflict
		}
		t.credentials[credential.PlayerID] = credential
		return nil
	})
}

func (r CredentialRepo) GetByPlayerID(ctx context.Context, playerID world.UserID) (ports.PlayerCredentialRecord, error) {
	var out ports.PlayerCredentialRecord
	err := r.store.with(ctx, func(t *tables) error {
		c, ok := t.credentials[playerID]
		if !ok {
			return ports.ErrNotFound
		}
		out = c
		return nil
	})
	return out, err
}
