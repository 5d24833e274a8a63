// Package statemachine implements a small generic finite state machine.
//
// States and events are any comparable types, usually string-based enums:
//
//	type phase string
//	type event string
//
//	m := statemachine.New[phase, event]("idle",
//		statemachine.WithTransition[phase, event]("idle", "running", "start"),
//		statemachine.WithTransition[phase, event]("running", "idle", "stop",
//			statemachine.WithGuard(func(ctx context.Context, from phase, e event, data any) bool {
//				return data != nil
//			}),
//		),
//	)
//	next, err := m.Fire(ctx, "start", nil)
//
// Guards select between transitions sharing a (state, event) pair; actions
// run under the machine lock before the state changes and abort the
// transition on error. Keep actions short and never block in them.
package statemachine
