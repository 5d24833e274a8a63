// Package async runs a computation in its own goroutine and hands back a
// Future for its result.
//
//	future := async.Async(ctx, params, deliver)
//	// ... do other work
//	res, err := future.Await()
//
// AwaitContext bounds the wait without cancelling the computation, which
// suits work that must not be interrupted once issued. Resolved wraps a
// value that is already known so callers can return a Future on every path.
package async
