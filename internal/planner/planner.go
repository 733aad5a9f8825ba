// Package planner implements the top-level planning driver: it owns the
// layer stack, repeatedly asks the builder to extend it and the solver
// to search it, and exposes a PlanStateUpdate convenience entry point.
package planner

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mguryev/graph-plan/internal/domain"
	"github.com/mguryev/graph-plan/internal/graphbuilder"
	"github.com/mguryev/graph-plan/internal/graphsolver"
)

// Planner searches for a totally-ordered action sequence that carries an
// initial state to a goal state, over a planning graph it builds and
// discards within a single call.
type Planner struct {
	builder *graphbuilder.Builder
	solver  *graphsolver.Solver
	logger  zerolog.Logger
}

// New constructs a Planner with its own builder and solver.
func New() *Planner {
	return &Planner{
		builder: graphbuilder.New(),
		solver:  graphsolver.New(),
		logger:  log.With().Str("component", "planner").Logger(),
	}
}

// Plan seeds a synthetic layer 0 from state, then loops extending the
// layer stack and searching it until the solver succeeds or the graph
// levels off. The returned plan has every synthesized no-op action
// filtered out.
//
// Each call owns its layer stack exclusively; it is safe to call Plan
// concurrently from multiple goroutines on the same *Planner, provided
// the actions passed in are treated as immutable.
func (p *Planner) Plan(state, goal domain.PropositionSet, actions []domain.Action) ([]domain.Action, error) {
	planID := uuid.New()
	logger := p.logger.With().Str("plan_id", planID.String()).Logger()
	logger.Info().Int("state_size", len(state)).Int("goal_size", len(goal)).Msg("starting plan search")

	layers := []domain.Layer{domain.NewInitialLayer(state)}

	for {
		next, err := p.builder.CalculateNextLayer(layers[len(layers)-1], actions)
		if err != nil {
			return nil, err
		}
		layers = append(layers, next)

		result, err := p.solver.SearchForSolution(layers, goal)
		if err == nil {
			logger.Info().Int("depth", len(layers)-1).Int("plan_length", len(result)).Msg("plan found")
			return filterNoops(result), nil
		}
		if graphsolver.IsNotFound(err) {
			logger.Debug().Int("depth", len(layers)-1).Msg("not found at this depth, extending graph")
			continue
		}
		logger.Info().Int("depth", len(layers)-1).Msg("plan is not possible")
		return nil, err
	}
}

// PlanStateUpdate invalidates update and the effects of every action
// whose requirements it touches, then asks Plan to restore everything
// that was retained in the original, plan-relevant subset of state
// (propositions not invalidated are retained via no-ops rather than
// rebuilt).
func (p *Planner) PlanStateUpdate(state, update domain.PropositionSet, actions []domain.Action) ([]domain.Action, error) {
	planProps := domain.NewPropositionSet()
	for _, a := range actions {
		planProps = planProps.Union(a.Requirements).Union(a.Effects)
	}

	originalState := domain.NewPropositionSet()
	for prop := range state {
		if planProps.Has(prop) {
			originalState.Add(prop)
		}
	}

	dependentEffects := domain.NewPropositionSet()
	for _, a := range actions {
		if a.Requirements.Intersects(update) {
			dependentEffects = dependentEffects.Union(a.Effects)
		}
	}

	invalidated := update.Union(dependentEffects)
	invalidatedNames := make(map[string]struct{}, len(invalidated))
	for prop := range invalidated {
		invalidatedNames[prop.Name] = struct{}{}
	}

	// A name is invalidated regardless of which polarity originalState
	// held for it: update asserts the new truth value for that fact, so
	// the stale polarity must not be carried forward as something to
	// restore.
	newState := domain.NewPropositionSet()
	for prop := range originalState {
		if _, ok := invalidatedNames[prop.Name]; !ok {
			newState.Add(prop)
		}
	}

	p.logger.Debug().
		Int("original_state", len(originalState)).
		Int("invalidated", len(invalidated)).
		Int("new_state", len(newState)).
		Msg("state update computed")

	return p.Plan(newState, originalState, actions)
}

// filterNoops removes every synthesized no-op action from a plan.
func filterNoops(plan []domain.Action) []domain.Action {
	out := make([]domain.Action, 0, len(plan))
	for _, a := range plan {
		if a.IsNoop() {
			continue
		}
		out = append(out, a)
	}
	return out
}
