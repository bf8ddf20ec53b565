package memory

import (
	"context"

	"doorhop/internal/domain/world"
)

type InteractionRepo struct {
	store *Store
}

func NewInteractionRepo(store *Store) InteractionRepo {
	return InteractionRepo{store: store}
}

func (r InteractionRepo) Append(ctx context.Context, interaction world.Interaction) (world.Interaction, error) {
	err := r.store.with(ctx, func(t *tables) error {
		interaction.ID = t.nextID("interactions")
		t.interactions = append(t.interactions, interaction)
		return nil
	})
	return interaction, err
}

func (r InteractionRepo) CountByTarget(ctx context.Context, target world.UserID) (int, error) {
	n := 0
	err := r.store.with(ctx, func(t *tables) error {
		for _, i := range t.interactions {
			if i.Target == target {
				n++
			}
		}
		return nil
	})
	return n, err
}
