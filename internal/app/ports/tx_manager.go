package ports

import "context"

// TxManager runs fn as one atomic unit: every write made through repositories using the
// context handed to fn is committed together, or discarded when fn returns an error.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
