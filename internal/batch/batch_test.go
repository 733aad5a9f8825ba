package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mguryev/graph-plan/internal/domain"
)

func TestRunManyPlansEachRequestIndependently(t *testing.T) {
	addX := domain.NewAction("add_x", nil, domain.NewPropositionSet(domain.Prop("x")))

	requests := []Request{
		{
			State:   domain.NewPropositionSet(),
			Goal:    domain.NewPropositionSet(domain.Prop("x")),
			Actions: []domain.Action{addX},
		},
		{
			State:   domain.NewPropositionSet(),
			Goal:    domain.NewPropositionSet(domain.Prop("y")),
			Actions: []domain.Action{addX},
		},
	}

	results, err := RunMany(context.Background(), requests, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Err)
	assert.Len(t, results[0].Plan, 1)
	assert.Equal(t, "add_x", results[0].Plan[0].Name)

	assert.Error(t, results[1].Err)
	assert.ErrorIs(t, results[1].Err, domain.ErrPlanNotPossible)
}

func TestRunManyHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	requests := []Request{{
		State:   domain.NewPropositionSet(),
		Goal:    domain.NewPropositionSet(domain.Prop("x")),
		Actions: nil,
	}}

	_, err := RunMany(ctx, requests, 1)
	assert.Error(t, err)
}
