// Package graphplan re-exports the planning-core types under a stable,
// import-root-level API and wraps internal/planner.Planner as Planner,
// one facade type over the internal implementation packages.
package graphplan

import (
	"reflect"

	"github.com/mguryev/graph-plan/internal/domain"
	"github.com/mguryev/graph-plan/internal/planner"
)

// Proposition is an atomic boolean fact, either asserted or negated.
type Proposition = domain.Proposition

// PropositionSet is an unordered set of propositions, used for both
// world states and goals.
type PropositionSet = domain.PropositionSet

// Action is a named transition from a set of required propositions to a
// set of effect propositions.
type Action = domain.Action

// ErrPlanNotPossible is returned by Plan / PlanStateUpdate when the
// planning graph has leveled off before the goal became reachable. Test
// it with errors.Is, not equality, since the returned error wraps
// call-specific context.
var ErrPlanNotPossible = domain.ErrPlanNotPossible

// ErrInvalidAction is returned when a caller-supplied action's name
// collides with the synthesized no-op naming convention.
var ErrInvalidAction = domain.ErrInvalidAction

// Prop builds a positive (asserted) proposition.
func Prop(name string) Proposition { return domain.Prop(name) }

// NegProp builds a negative (unset) proposition.
func NegProp(name string) Proposition { return domain.NegProp(name) }

// NewPropositionSet builds a PropositionSet from a variadic list.
func NewPropositionSet(props ...Proposition) PropositionSet {
	return domain.NewPropositionSet(props...)
}

// NewAction constructs an Action. Nil requirements/effects default to
// empty sets.
func NewAction(name string, requirements, effects PropositionSet) Action {
	return domain.NewAction(name, requirements, effects)
}

// Planner searches for a totally-ordered action sequence carrying an
// initial state to a goal state. Each call builds and discards its own
// planning graph, so a *Planner is safe to reuse (and to call
// concurrently from multiple goroutines) across unrelated requests.
type Planner struct {
	core *planner.Planner
}

// New constructs a ready-to-use Planner.
func New() *Planner {
	return &Planner{core: planner.New()}
}

// Plan returns a sequence of actions that carries state to a state
// entailing goal, or ErrPlanNotPossible if no such sequence exists.
func (p *Planner) Plan(state, goal PropositionSet, actions []Action) ([]Action, error) {
	return p.core.Plan(state, goal, actions)
}

// PlanStateUpdate plans a recovery sequence after update is applied
// directly to state (bypassing the action set), restoring whatever
// update invalidated.
func (p *Planner) PlanStateUpdate(state, update PropositionSet, actions []Action) ([]Action, error) {
	return p.core.PlanStateUpdate(state, update, actions)
}

// StateFromWorld converts an arbitrary world snapshot into a
// PropositionSet using truthy semantics: a key is asserted if its value
// is non-nil, non-zero, non-empty and not a false bool; otherwise it is
// negated.
func StateFromWorld(world map[string]any) PropositionSet {
	out := domain.NewPropositionSet()
	for k, v := range world {
		if truthy(v) {
			out.Add(domain.Prop(k))
		} else {
			out.Add(domain.NegProp(k))
		}
	}
	return out
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		rv := reflect.ValueOf(x)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64:
			return !rv.IsZero()
		case reflect.String, reflect.Slice, reflect.Map:
			return rv.Len() > 0
		}
		return true
	}
}
