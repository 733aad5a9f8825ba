// Package graphsolver implements the backward goal-regression search:
// given a stack of planning-graph layers and a goal, search backward for
// a plan, distinguishing "not yet found, expand further" from "provably
// impossible".
package graphsolver

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mguryev/graph-plan/internal/domain"
)

// errNotFound is the internal, recoverable search signal. The Planner
// driver catches it to decide whether to extend the graph; it is a
// control signal, not an error condition, and must never escape
// Solver.SearchForSolution's caller chain beyond this package and
// internal/planner.
var errNotFound = errors.New("graphsolver: plan not found at this depth")

// IsNotFound reports whether err is the internal not-found signal.
func IsNotFound(err error) bool {
	return errors.Is(err, errNotFound)
}

// Solver searches a layer stack for a plan achieving a goal.
type Solver struct {
	logger zerolog.Logger
}

// New returns a Solver logging through the package-global zerolog
// logger, mirroring graphbuilder.New.
func New() *Solver {
	return &Solver{logger: log.With().Str("component", "graphsolver").Logger()}
}

// SearchForSolution runs pre-checks, then a Cartesian-product search
// over goal-proposition producers, recursing on the shrinking
// layer-stack prefix layers[:len(layers)-1].
//
// layers is read-only; SearchForSolution never mutates or appends to it
// and only ever narrows the slice it recurses on.
func (s *Solver) SearchForSolution(layers []domain.Layer, goal domain.PropositionSet) ([]domain.Action, error) {
	if len(goal) == 0 {
		s.logger.Debug().Msg("goal is empty, vacuous success")
		return nil, nil
	}

	if len(layers) >= 2 && layers[len(layers)-1].Equal(layers[len(layers)-2]) {
		s.logger.Info().Msg("graph has leveled off, goal is not reachable")
		return nil, domain.NewPlanNotPossible("two consecutive layers are identical; graph has leveled off")
	}

	current := layers[len(layers)-1]

	if !planGoalReached(current, goal) {
		return nil, errNotFound
	}

	if len(current.Actions) == 0 {
		// Synthetic layer 0 with the goal already present: return
		// immediately rather than taking the Cartesian product over
		// empty producer lists.
		return nil, nil
	}

	for _, candidate := range s.candidateActionSets(current, goal) {
		subgoal := subgoalFor(candidate)

		subPlan, err := s.SearchForSolution(layers[:len(layers)-1], subgoal)
		if err != nil {
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}

		return append(subPlan, candidate...), nil
	}

	return nil, errNotFound
}

// planGoalReached reports whether every goal proposition holds in the
// layer, and no pair of goal propositions is proposition-mutex.
func planGoalReached(layer domain.Layer, goal domain.PropositionSet) bool {
	if !goal.Subset(layer.Propositions) {
		return false
	}
	if layer.MutexPropositions.AnyMutexWithin(goal) {
		return false
	}
	return true
}

// candidateActionSets enumerates the deduplicated candidate action sets:
// the Cartesian product of each goal proposition's producer list (goal
// iterated in sorted order for determinism), with internally
// action-mutex candidates rejected.
func (s *Solver) candidateActionSets(layer domain.Layer, goal domain.PropositionSet) [][]domain.Action {
	sortedGoal := goal.Sorted()
	producerLists := make([][]domain.Action, len(sortedGoal))
	for i, g := range sortedGoal {
		producerLists[i] = layer.Producers(g)
	}

	var out [][]domain.Action
	cartesianProduct(producerLists, nil, func(tuple []domain.Action) {
		set := domain.NewActionSet(tuple...)
		deduped := set.Slice()
		if isInternallyMutex(layer.MutexActions, deduped) {
			return
		}
		out = append(out, deduped)
	})

	s.logger.Debug().Int("candidates", len(out)).Msg("candidate action sets enumerated")
	return out
}

// cartesianProduct calls emit once per combination drawn from lists,
// choosing one element from each list in order. An empty list anywhere
// in lists yields no combinations, matching itertools.product semantics.
func cartesianProduct(lists [][]domain.Action, prefix []domain.Action, emit func([]domain.Action)) {
	if len(lists) == 0 {
		tuple := make([]domain.Action, len(prefix))
		copy(tuple, prefix)
		emit(tuple)
		return
	}
	for _, a := range lists[0] {
		cartesianProduct(lists[1:], append(prefix, a), emit)
	}
}

// isInternallyMutex reports whether any two distinct members of actions
// are recorded as mutex in mutexActions.
func isInternallyMutex(mutexActions domain.ActionMutex, actions []domain.Action) bool {
	for i := range actions {
		for j := i + 1; j < len(actions); j++ {
			if mutexActions.Are(actions[i], actions[j]) {
				return true
			}
		}
	}
	return false
}

// subgoalFor computes the union of requirements of every action in the
// candidate set — the subgoal the recursion must reach at the prior
// layer.
func subgoalFor(candidate []domain.Action) domain.PropositionSet {
	out := domain.NewPropositionSet()
	for _, a := range candidate {
		out = out.Union(a.Requirements)
	}
	return out
}
