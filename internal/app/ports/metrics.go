package ports

type HandlerMetrics interface {
	RecordSuccess(op string)
	RecordConflict(op string)
	RecordFailure(op string)
}
