package plot

import "errors"

// Usage errors. They are fatal: the plotter reports them through the error
// operation and is left terminated.
var (
	ErrNotInitialized     = errors.New("plot: plotter not initialized")
	ErrAlreadyInitialized = errors.New("plot: plotter already initialized")
	ErrTerminated         = errors.New("plot: plotter terminated")
	ErrNoPage             = errors.New("plot: no page open")
	ErrPageOpen           = errors.New("plot: page already open")
	ErrSinglePage         = errors.New("plot: backend supports a single page only")
)

// Registry errors.
var (
	ErrUnknownBackend   = errors.New("plot: unknown backend")
	ErrDuplicateBackend = errors.New("plot: backend already registered")
	ErrUnboundOp        = errors.New("plot: operation has no binding")
	ErrAmbiguousOp      = errors.New("plot: operation bound twice")
)

// UsageError describes an operation invoked in the wrong lifecycle phase.
type UsageError struct {
	Op  string
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error() + " (in " + e.Op + ")"
}

func (e *UsageError) Unwrap() error { return e.Err }

// IsUsage reports whether err is a usage error.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
