package memory

import "context"

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := t.store.fromTx(ctx); ok {
		return fn(ctx)
	}

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	work := t.store.data.clone()
	if err := fn(context.WithValue(ctx, txKeyType{}, &txState{store: t.store, data: work})); err != nil {
		return err
	}
	t.store.data = work
	return nil
}
