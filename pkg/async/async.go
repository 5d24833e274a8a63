package async

import (
	"context"
	"fmt"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Await waits for the computation to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for completion or for ctx to be done, whichever comes
// first. Giving up on the wait does not stop the computation.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the result is available.
func (f *Future[U]) Done() <-chan struct{} {
	return f.done
}

// IsComplete checks if the computation is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in a new goroutine and returns a Future for its result.
// If ctx is already done, fn is not called and the Future holds ctx.Err().
// A panic in fn completes the Future with ErrPanicked.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				var zero U
				f.result, f.err = zero, fmt.Errorf("%w: %v", ErrPanicked, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns an already completed Future.
func Resolved[U any](result U, err error) *Future[U] {
	f := &Future[U]{result: result, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}
