package statemachine

// Option configures a machine during construction.
type Option[S, E comparable] func(*Machine[S, E])

// TransitionOption configures a single transition.
type TransitionOption[S, E comparable] func(*Transition[S, E])

// New creates a machine in the initial state.
func New[S, E comparable](initial S, opts ...Option[S, E]) *Machine[S, E] {
	m := &Machine[S, E]{
		initial:     initial,
		current:     initial,
		transitions: make(map[S]map[E][]Transition[S, E]),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// WithTransition adds a transition from -> to on event.
func WithTransition[S, E comparable](from, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		t := Transition[S, E]{From: from, To: to, Event: event}
		for _, opt := range opts {
			opt(&t)
		}
		m.AddTransition(t)
	}
}

// WithTransitionFrom adds the same event -> to transition from several states.
func WithTransitionFrom[S, E comparable](from []S, to S, event E, opts ...TransitionOption[S, E]) Option[S, E] {
	return func(m *Machine[S, E]) {
		for _, f := range from {
			WithTransition(f, to, event, opts...)(m)
		}
	}
}

// WithGuard adds a guard to a transition. Nil guards are ignored.
func WithGuard[S, E comparable](g Guard[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if g != nil {
			t.Guards = append(t.Guards, g)
		}
	}
}

// WithAction adds an action to a transition. Nil actions are ignored.
func WithAction[S, E comparable](a Action[S, E]) TransitionOption[S, E] {
	return func(t *Transition[S, E]) {
		if a != nil {
			t.Actions = append(t.Actions, a)
		}
	}
}
