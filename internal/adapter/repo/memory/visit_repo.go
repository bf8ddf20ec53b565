package memory

import (
	"context"

	"doorhop/internal/domain/world"
)

type VisitRepo struct {
	store *Store
}

func NewVisitRepo(store *Store) VisitRepo {
	return VisitRepo{store: store}
}

func (r VisitRepo) Append(ctx context.Context, visit world.Visit) error {
	return r.store.with(ctx, func(t *tables) error {
		t.visits = append(t.visits, visit)
		return nil
	})
}

func (r VisitRepo) ListByVisitor(ctx context.Context, visitor world.UserID) ([]world.Visit, error) {
	var out []world.Visit
	err := r.store.with(ctx, func(t *tables) error {
		for _, v := range t.visits {
			if v.Visitor == visitor {
				out = append(out, v)
			}
		}
		return nil
	})
	return out, err
}
