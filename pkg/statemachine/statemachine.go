package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// Guard decides at fire time whether a transition may be taken.
type Guard[S, E comparable] func(ctx context.Context, from S, event E, data any) bool

// Action runs while a transition is taken, before the state changes.
// Returning an error aborts the transition.
type Action[S, E comparable] func(ctx context.Context, from, to S, event E, data any) error

// Transition moves the machine from From to To when Event fires.
type Transition[S, E comparable] struct {
	From    S
	To      S
	Event   E
	Guards  []Guard[S, E]  // all must pass
	Actions []Action[S, E] // run in order
}

// Machine is a thread-safe finite state machine over comparable state and
// event types. Transitions are looked up by (state, event); when several
// share a key, the first whose guards pass wins.
type Machine[S, E comparable] struct {
	mu          sync.RWMutex
	initial     S
	current     S
	transitions map[S]map[E][]Transition[S, E]
}

// AddTransition registers t.
func (m *Machine[S, E]) AddTransition(t Transition[S, E]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.transitions[t.From] == nil {
		m.transitions[t.From] = make(map[E][]Transition[S, E])
	}
	m.transitions[t.From][t.Event] = append(m.transitions[t.From][t.Event], t)
}

// Current returns the current state.
func (m *Machine[S, E]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the current state is one of states.
func (m *Machine[S, E]) Is(states ...S) bool {
	cur := m.Current()
	for _, s := range states {
		if s == cur {
			return true
		}
	}
	return false
}

// Fire takes the first permitted transition for event and returns the new state.
func (m *Machine[S, E]) Fire(ctx context.Context, event E, data any) (S, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.find(ctx, event, data)
	if err != nil {
		return m.current, err
	}

	for _, action := range t.Actions {
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return m.current, fmt.Errorf("action failed: %w", err)
		}
	}

	m.current = t.To
	return m.current, nil
}

// CanFire reports whether Fire(ctx, event, data) would find a transition.
// Actions are not run, so Fire may still fail.
func (m *Machine[S, E]) CanFire(ctx context.Context, event E, data any) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.find(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state.
func (m *Machine[S, E]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
}

func (m *Machine[S, E]) find(ctx context.Context, event E, data any) (*Transition[S, E], error) {
	candidates := m.transitions[m.current][event]
	if len(candidates) == 0 {
		return nil, &NoTransitionError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
	}

	for i := range candidates {
		if passes(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}
	return nil, &RejectedError{State: fmt.Sprint(m.current), Event: fmt.Sprint(event)}
}

func passes[S, E comparable](ctx context.Context, guards []Guard[S, E], from S, event E, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
