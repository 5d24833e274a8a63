package async

import "errors"

// ErrPanicked wraps a panic recovered from an async computation.
var ErrPanicked = errors.New("async: computation panicked")
