package inmemory

import (
	"sync"
)

type OpCounts struct {
	Success  uint64 `json:"success"`
	Conflict uint64 `json:"conflict"`
	Failure  uint64 `json:"failure"`
}

type Snapshot struct {
	HandlerTotal    uint64              `json:"handler_total"`
	HandlerSuccess  uint64              `json:"handler_success"`
	HandlerConflict uint64              `json:"handler_conflict"`
	HandlerFailure  uint64              `json:"handler_failure"`
	ByOp            map[string]OpCounts `json:"by_op"`
}

// Recorder keeps per-operation handler outcome counts for the /ops/kpi endpoint.
type Recorder struct {
	mu   sync.Mutex
	byOp map[string]OpCounts
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOp: map[string]OpCounts{},
	}
}

func (r *Recorder) RecordSuccess(op string) {
	r.bump(op, func(c *OpCounts) { c.Success++ })
}

func (r *Recorder) RecordConflict(op string) {
	r.bump(op, func(c *OpCounts) { c.Conflict++ })
}

func (r *Recorder) RecordFailure(op string) {
	r.bump(op, func(c *OpCounts) { c.Failure++ })
}

func (r *Recorder) bump(op string, fn func(*OpCounts)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.byOp[op]
	fn(&c)
	r.byOp[op] = c
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{ByOp: make(map[string]OpCounts, len(r.byOp))}
	for op, c := range r.byOp {
		out.ByOp[op] = c
		out.HandlerSuccess += c.Success
		out.HandlerConflict += c.Conflict
		out.HandlerFailure += c.Failure
	}
	out.HandlerTotal = out.HandlerSuccess + out.HandlerConflict + out.HandlerFailure
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
