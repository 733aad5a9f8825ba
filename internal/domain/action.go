package domain

import "strings"

// NoopPrefix marks a synthesized no-op action. The Planner driver filters
// these out of the final plan; the builder uses the prefix to reject a
// caller-supplied action whose name would collide with a synthesized
// no-op.
const NoopPrefix = "noop_"

// Action is an immutable transition from a set of required propositions
// to a set of effect propositions, with negation carried on the
// Proposition itself rather than in a second delete-effects field.
type Action struct {
	Name         string
	Requirements PropositionSet
	Effects      PropositionSet
}

// NewAction constructs an Action, defaulting nil sets to empty ones so
// callers can omit Requirements/Effects for no-precondition or no-effect
// actions without a nil-map panic.
func NewAction(name string, requirements, effects PropositionSet) Action {
	if requirements == nil {
		requirements = NewPropositionSet()
	}
	if effects == nil {
		effects = NewPropositionSet()
	}
	return Action{Name: name, Requirements: requirements, Effects: effects}
}

// IsNoop reports whether this action is a synthesized carry-forward
// no-op, identified by its name prefix.
func (a Action) IsNoop() bool {
	return strings.HasPrefix(a.Name, NoopPrefix)
}

// NewNoop synthesizes the no-op action for proposition p: exactly
// {name: "noop_"+p, requirements: {p}, effects: {p}}.
func NewNoop(p Proposition) Action {
	name := NoopPrefix + p.String()
	return Action{
		Name:         name,
		Requirements: NewPropositionSet(p),
		Effects:      NewPropositionSet(p),
	}
}

// RequirementsMet reports whether every requirement of a holds in props.
func (a Action) RequirementsMet(props PropositionSet) bool {
	return a.Requirements.Subset(props)
}

// key is the structural, hashable identity of an Action — equality over
// (name, requirements, effects) — used as a map key wherever actions
// must be compared or deduplicated. PropositionSet (a Go map) is not
// itself hashable, so Key snapshots its members into a sorted,
// comparable representation.
type key struct {
	name         string
	requirements string
	effects      string
}

// Key returns a's comparable identity, suitable for use as a Go map key.
func (a Action) Key() any {
	return key{
		name:         a.Name,
		requirements: joinSorted(a.Requirements),
		effects:      joinSorted(a.Effects),
	}
}

func joinSorted(s PropositionSet) string {
	var b strings.Builder
	for _, p := range s.Sorted() {
		b.WriteString(p.String())
		b.WriteByte(';')
	}
	return b.String()
}

// ActionSet is an unordered set of actions, keyed by structural identity
// so actions are hashable despite containing map-valued fields.
type ActionSet map[any]Action

// NewActionSet builds an ActionSet from a variadic list.
func NewActionSet(actions ...Action) ActionSet {
	s := make(ActionSet, len(actions))
	for _, a := range actions {
		s[a.Key()] = a
	}
	return s
}

// Add inserts a into the set.
func (s ActionSet) Add(a Action) {
	s[a.Key()] = a
}

// Has reports whether a is a member, compared structurally.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a.Key()]
	return ok
}

// Slice returns the members as a slice; order is unspecified.
func (s ActionSet) Slice() []Action {
	out := make([]Action, 0, len(s))
	for _, a := range s {
		out = append(out, a)
	}
	return out
}
