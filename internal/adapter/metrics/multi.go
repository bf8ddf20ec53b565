package metrics

import "doorhop/internal/app/ports"

// Multi fans every record out to each recorder in order.
type Multi []ports.HandlerMetrics

func (m Multi) RecordSuccess(op string) {
	for _, r := range m {
		r.RecordSuccess(op)
	}
}

func (m Multi) RecordConflict(op string) {
	for _, r := range m {
		r.RecordConflict(op)
	}
}

func (m Multi) RecordFailure(op string) {
	for _, r := range m {
		r.RecordFailure(op)
	}
}
