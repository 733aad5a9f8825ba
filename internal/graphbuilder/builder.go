// Package graphbuilder implements planning-graph layer expansion: given
// a layer, produce the next layer's admissible actions, resulting
// propositions, and both mutex relations.
//
// The package shape — a small type with one public entry point, logging
// every phase at Debug/Info — mirrors the rest of the planning-graph
// implementation in this module.
package graphbuilder

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mguryev/graph-plan/internal/domain"
)

// Builder computes the next planning-graph layer from the previous one.
// It holds no mutable state between calls; a zero-value Builder is ready
// to use.
type Builder struct {
	logger zerolog.Logger
}

// New returns a Builder that logs through the package-global zerolog
// logger rather than threading one through every call.
func New() *Builder {
	return &Builder{logger: log.With().Str("component", "graphbuilder").Logger()}
}

// CalculateNextLayer produces the next layer from prev and the caller's
// domain actions in four phases: action selection, action-mutex
// computation, proposition generation, and proposition-mutex
// computation. It returns domain.ErrInvalidAction if available contains
// an action whose name collides with the synthesized no-op prefix,
// which would violate the one-no-op-per-proposition invariant.
func (b *Builder) CalculateNextLayer(prev domain.Layer, available []domain.Action) (domain.Layer, error) {
	for _, a := range available {
		if a.IsNoop() {
			return domain.Layer{}, domain.NewInvalidAction(
				"caller-supplied action \"" + a.Name + "\" collides with the noop_ naming convention")
		}
	}

	actions := b.calculateActions(prev, available)
	mutexActions := b.calculateActionMutex(prev, actions)
	propositions := calculatePropositions(actions)
	mutexPropositions := b.calculatePropositionMutex(actions, mutexActions)

	b.logger.Info().
		Int("actions", len(actions)).
		Int("propositions", len(propositions)).
		Msg("layer expanded")

	return domain.Layer{
		Actions:           actions,
		Propositions:      propositions,
		MutexActions:      mutexActions,
		MutexPropositions: mutexPropositions,
	}, nil
}

// calculateActions implements phase (a): one no-op per proposition in
// prev.Propositions, plus every domain action whose requirements are a
// subset of prev.Propositions.
func (b *Builder) calculateActions(prev domain.Layer, available []domain.Action) []domain.Action {
	actions := make([]domain.Action, 0, len(prev.Propositions)+len(available))

	for _, p := range prev.Propositions.Sorted() {
		actions = append(actions, domain.NewNoop(p))
	}

	for _, a := range available {
		if a.RequirementsMet(prev.Propositions) {
			actions = append(actions, a)
		}
	}

	b.logger.Debug().Int("noop_actions", len(prev.Propositions)).Int("total_actions", len(actions)).Msg("actions selected")
	return actions
}

// calculateActionMutex implements phase (b): rules 1-3 below, evaluated
// over every ordered pair so the resulting relation is symmetric by
// construction.
func (b *Builder) calculateActionMutex(prev domain.Layer, actions []domain.Action) domain.ActionMutex {
	mutex := domain.ActionMutex{}

	for i := range actions {
		for j := range actions {
			if i == j {
				continue
			}
			a, other := actions[i], actions[j]
			if mutex.Are(a, other) {
				continue
			}
			if isActionMutex(prev.MutexPropositions, a, other) {
				b.logger.Debug().Str("a", a.Name).Str("b", other.Name).Msg("actions are mutex")
				mutex.Add(a, other)
			}
		}
	}

	return mutex
}

// isActionMutex evaluates the three directional mutex rules for the
// ordered pair (a, other).
func isActionMutex(prevMutexProps domain.PropositionMutex, a, other domain.Action) bool {
	// Rule 1: inconsistent effects — a deletes an effect of other.
	if deletedEffects(a).Intersects(other.Effects) {
		return true
	}
	// Rule 2: interference — a deletes a precondition of other.
	if deletedEffects(a).Intersects(other.Requirements) {
		return true
	}
	// Rule 3: competing needs — a requirement of a is mutex with a
	// requirement of other, under the previous layer's proposition mutex.
	for p := range a.Requirements {
		for q := range other.Requirements {
			if prevMutexProps.Are(p, q) {
				return true
			}
		}
	}
	return false
}

// deletedEffects returns delete(a.Effects) = { opposite(e) | e in a.Effects }.
func deletedEffects(a domain.Action) domain.PropositionSet {
	out := domain.NewPropositionSet()
	for e := range a.Effects {
		out.Add(e.Opposite())
	}
	return out
}

// calculatePropositions implements phase (c): the union of every new
// action's effects.
func calculatePropositions(actions []domain.Action) domain.PropositionSet {
	out := domain.NewPropositionSet()
	for _, a := range actions {
		out = out.Union(a.Effects)
	}
	return out
}

// calculatePropositionMutex implements phase (d): p and q are mutex iff
// every producer of p is action-mutex with every producer of q. A
// proposition with a single producer that is also q's single producer
// is, by construction, not mutex with itself.
func (b *Builder) calculatePropositionMutex(actions []domain.Action, mutexActions domain.ActionMutex) domain.PropositionMutex {
	layer := domain.Layer{Actions: actions}
	propositions := calculatePropositions(actions).Sorted()
	mutex := domain.PropositionMutex{}

	for i := range propositions {
		for j := i + 1; j < len(propositions); j++ {
			p, q := propositions[i], propositions[j]
			if allProducersMutex(layer, mutexActions, p, q) {
				b.logger.Debug().Stringer("p", p).Stringer("q", q).Msg("propositions are mutex")
				mutex.Add(p, q)
			}
		}
	}

	return mutex
}

// allProducersMutex reports whether every producer of p is action-mutex
// with every producer of q, excluding the degenerate case where p and q
// share their single producer (an action is never mutex with itself).
func allProducersMutex(layer domain.Layer, mutexActions domain.ActionMutex, p, q domain.Proposition) bool {
	producersP := layer.Producers(p)
	producersQ := layer.Producers(q)

	for _, a := range producersP {
		for _, c := range producersQ {
			if a.Key() == c.Key() {
				return false
			}
			if !mutexActions.Are(a, c) {
				return false
			}
		}
	}
	return true
}
