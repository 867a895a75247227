package search

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupmix/internal/model"
)

func TestScoreRequiresObjectives(t *testing.T) {
	p := model.Partition{groupOf("A", "B")}
	_, err := Score(p, nil)
	require.ErrorIs(t, err, model.ErrNoObjectives)
}

func TestScoreSingleDiversityObjective(t *testing.T) {
	p := model.Partition{
		groupOf("A", "A"),
		groupOf("B", "B"),
	}
	got, err := Score(p, []model.Objective{
		{Kind: model.ObjectiveDiversity, Column: 0, Weight: 1},
	})
	require.NoError(t, err)
	require.InDelta(t, 1.0, got, 1e-12)
}

func TestScoreAveragesWeightedObjectives(t *testing.T) {
	p := model.Partition{
		groupOf("1", "1"),
		groupOf("9", "9"),
	}
	// Diversity over the same column is 1.0 per group (single value each);
	// clustering is 0 (homogeneous groups). Mean of 2*1.0 and 1*0.0 is 1.0.
	got, err := Score(p, []model.Objective{
		{Kind: model.ObjectiveDiversity, Column: 0, Weight: 2},
		{Kind: model.ObjectiveClustering, Column: 0, Weight: 1},
	})
	require.NoError(t, err)
	require.InDelta(t, 1.0, got, 1e-12)
}

func TestScoreNegativeWeightInvertsDirection(t *testing.T) {
	p := model.Partition{
		groupOf("A", "A"),
		groupOf("B", "B"),
	}
	got, err := Score(p, []model.Objective{
		{Kind: model.ObjectiveDiversity, Column: 0, Weight: -1},
	})
	require.NoError(t, err)
	// Minimizing the negated metric rewards segregated groups.
	require.InDelta(t, -1.0, got, 1e-12)
}

func TestScoreUnknownKind(t *testing.T) {
	p := model.Partition{groupOf("A")}
	_, err := Score(p, []model.Objective{{Kind: "entropy", Column: 0, Weight: 1}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown kind")
}

func TestScorePropagatesMetricErrors(t *testing.T) {
	p := model.Partition{groupOf("1", "oops")}
	_, err := Score(p, []model.Objective{{Kind: model.ObjectiveClustering, Column: 0, Weight: 1}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "column 0")
}
