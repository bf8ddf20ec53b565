package ports

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrInvalidState         = errors.New("invalid state")
	ErrInsufficientResource = errors.New("insufficient resource")
	ErrInternal             = errors.New("internal error")
)

// Failure carries a caller-facing message while still matching its kind under errors.Is.
type Failure struct {
	Kind    error
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Kind
}

func Fail(kind error, message string) error {
	return &Failure{Kind: kind, Message: message}
}

// NotFoundAs rewrites a repository ErrNotFound into a Failure with message; other errors pass through.
func NotFoundAs(err error, message string) error {
	if errors.Is(err, ErrNotFound) {
		return Fail(ErrNotFound, message)
	}
	return err
}
