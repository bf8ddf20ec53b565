package txrun

import (
	"context"
	"errors"

	"doorhop/internal/app/ports"
)

// Runner is the per-handler unit of work: the body runs inside one transaction and is
// replayed from scratch when the store reports a write conflict.
type Runner struct {
	Tx       ports.TxManager
	Metrics  ports.HandlerMetrics
	Attempts int
}

func (r Runner) Run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	attempts := r.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		err = r.Tx.RunInTx(ctx, fn)
		if !errors.Is(err, ports.ErrConflict) {
			break
		}
	}

	if r.Metrics != nil {
		switch {
		case err == nil:
			r.Metrics.RecordSuccess(op)
		case errors.Is(err, ports.ErrConflict):
			r.Metrics.RecordConflict(op)
		default:
			r.Metrics.RecordFailure(op)
		}
	}
	return err
}
