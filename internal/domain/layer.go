package domain

// ActionMutex is a symmetric binary relation over actions, keyed by
// structural action identity.
type ActionMutex map[any]ActionSet

// Add records a and b as mutex in both directions.
func (m ActionMutex) Add(a, b Action) {
	if m[a.Key()] == nil {
		m[a.Key()] = NewActionSet()
	}
	if m[b.Key()] == nil {
		m[b.Key()] = NewActionSet()
	}
	m[a.Key()].Add(b)
	m[b.Key()].Add(a)
}

// Are reports whether a and b are recorded as mutex.
func (m ActionMutex) Are(a, b Action) bool {
	peers, ok := m[a.Key()]
	if !ok {
		return false
	}
	return peers.Has(b)
}

// PropositionMutex is a symmetric binary relation over propositions.
type PropositionMutex map[Proposition]PropositionSet

// Add records p and q as mutex in both directions.
func (m PropositionMutex) Add(p, q Proposition) {
	if m[p] == nil {
		m[p] = NewPropositionSet()
	}
	if m[q] == nil {
		m[q] = NewPropositionSet()
	}
	m[p].Add(q)
	m[q].Add(p)
}

// Are reports whether p and q are recorded as mutex.
func (m PropositionMutex) Are(p, q Proposition) bool {
	peers, ok := m[p]
	if !ok {
		return false
	}
	return peers.Has(q)
}

// AnyMutexWithin reports whether any two distinct members of props are
// mutex under m — used by the solver's goal-reachability check: no pair
// of goal propositions may be mutex with each other.
func (m PropositionMutex) AnyMutexWithin(props PropositionSet) bool {
	list := props.Sorted()
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			if m.Are(list[i], list[j]) {
				return true
			}
		}
	}
	return false
}

// Layer is a snapshot of the planning graph at a single depth. Layer 0
// is synthetic: Actions is empty and Propositions holds the initial
// state.
type Layer struct {
	Actions           []Action
	Propositions      PropositionSet
	MutexActions      ActionMutex
	MutexPropositions PropositionMutex
}

// NewInitialLayer builds the synthetic layer 0 carrying only the initial
// propositions.
func NewInitialLayer(initial PropositionSet) Layer {
	return Layer{
		Actions:           nil,
		Propositions:      initial.Clone(),
		MutexActions:      ActionMutex{},
		MutexPropositions: PropositionMutex{},
	}
}

// Equal compares all four fields of two layers structurally. Two
// successive equal layers signal the graph has reached a fix-point.
func (l Layer) Equal(other Layer) bool {
	if !l.Propositions.Equal(other.Propositions) {
		return false
	}
	if !actionsEqual(l.Actions, other.Actions) {
		return false
	}
	if !actionMutexEqual(l.MutexActions, other.MutexActions) {
		return false
	}
	if !propMutexEqual(l.MutexPropositions, other.MutexPropositions) {
		return false
	}
	return true
}

func actionsEqual(a, b []Action) bool {
	if len(a) != len(b) {
		return false
	}
	left := NewActionSet(a...)
	right := NewActionSet(b...)
	if len(left) != len(right) {
		return false
	}
	for k := range left {
		if _, ok := right[k]; !ok {
			return false
		}
	}
	return true
}

func actionMutexEqual(a, b ActionMutex) bool {
	if len(a) != len(b) {
		return false
	}
	for k, peers := range a {
		otherPeers, ok := b[k]
		if !ok || len(peers) != len(otherPeers) {
			return false
		}
		for pk := range peers {
			if _, ok := otherPeers[pk]; !ok {
				return false
			}
		}
	}
	return true
}

func propMutexEqual(a, b PropositionMutex) bool {
	if len(a) != len(b) {
		return false
	}
	for p, peers := range a {
		otherPeers, ok := b[p]
		if !ok || !peers.Equal(otherPeers) {
			return false
		}
	}
	return true
}

// Producers returns the actions in l.Actions whose Effects contain p, in
// the order they appear in l.Actions (the order the builder inserted
// them: no-ops first, then the caller's domain actions).
func (l Layer) Producers(p Proposition) []Action {
	var out []Action
	for _, a := range l.Actions {
		if a.Effects.Has(p) {
			out = append(out, a)
		}
	}
	return out
}
