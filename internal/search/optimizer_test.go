package search

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"groupmix/internal/model"
)

// twoCategoryRoster builds the classic worst case: ten participants sorted by
// category, so a naive contiguous split fully segregates them.
func twoCategoryRoster() model.Roster {
	r := make(model.Roster, 0, 10)
	for i := 0; i < 5; i++ {
		r = append(r, model.Participant{strconv.Itoa(i), "A"})
	}
	for i := 5; i < 10; i++ {
		r = append(r, model.Participant{strconv.Itoa(i), "B"})
	}
	return r
}

func diversityConfig(iterations int, seed int64) Config {
	return Config{
		Groups:     2,
		Iterations: iterations,
		Objectives: []model.Objective{{Kind: model.ObjectiveDiversity, Column: 1, Weight: 1}},
		Seed:       seed,
	}
}

func TestNewOptimizerValidation(t *testing.T) {
	base := diversityConfig(100, 1)

	bad := base
	bad.Groups = 0
	_, err := NewOptimizer(bad)
	require.ErrorIs(t, err, model.ErrBadGroupCount)

	bad = base
	bad.Iterations = 0
	_, err = NewOptimizer(bad)
	require.Error(t, err)

	bad = base
	bad.Objectives = nil
	_, err = NewOptimizer(bad)
	require.ErrorIs(t, err, model.ErrNoObjectives)

	bad = base
	bad.Schedule = "linear"
	_, err = NewOptimizer(bad)
	require.Error(t, err)
}

func TestOptimizerFindsBalancedSplit(t *testing.T) {
	opt, err := NewOptimizer(diversityConfig(5000, 1))
	require.NoError(t, err)

	result, err := opt.Run(context.Background(), twoCategoryRoster())
	require.NoError(t, err)

	// Two groups of five drawn from a 5/5 category split can do no better
	// than a 3/2 majority in each group: dominance 0.6.
	require.InDelta(t, 0.6, result.BestScore, 1e-9)
	require.Less(t, result.BestScore, 1.0)

	require.Len(t, result.Best, 2)
	require.Len(t, result.Best[0], 5)
	require.Len(t, result.Best[1], 5)

	seen := []string{}
	for _, g := range result.Best {
		for _, p := range g {
			seen = append(seen, p[0])
		}
	}
	sort.Strings(seen)
	require.Equal(t, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, seen)
}

func TestOptimizerBestHistoryNeverRegresses(t *testing.T) {
	opt, err := NewOptimizer(diversityConfig(800, 42))
	require.NoError(t, err)

	result, err := opt.Run(context.Background(), twoCategoryRoster())
	require.NoError(t, err)
	require.Len(t, result.History, 800)

	for i := 1; i < len(result.History); i++ {
		require.LessOrEqual(t, result.History[i], result.History[i-1],
			"best score regressed at step %d", i)
	}
	require.Equal(t, result.BestScore, result.History[len(result.History)-1])
}

func TestOptimizerDeterministicForSeed(t *testing.T) {
	run := func() Result {
		opt, err := NewOptimizer(diversityConfig(300, 99))
		require.NoError(t, err)
		result, err := opt.Run(context.Background(), twoCategoryRoster())
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	require.Equal(t, first.BestScore, second.BestScore)
	require.Equal(t, first.History, second.History)
	require.Equal(t, first.Best, second.Best)
	require.Equal(t, first.Report, second.Report)
}

func TestOptimizerAnnealingSchedules(t *testing.T) {
	for _, schedule := range []Schedule{ScheduleForward, ScheduleCooling} {
		cfg := diversityConfig(1000, 7)
		cfg.Annealing = true
		cfg.Schedule = schedule

		opt, err := NewOptimizer(cfg)
		require.NoError(t, err)

		result, err := opt.Run(context.Background(), twoCategoryRoster())
		require.NoError(t, err)

		// Uphill acceptance moves the current state, never the best.
		for i := 1; i < len(result.History); i++ {
			require.LessOrEqual(t, result.History[i], result.History[i-1])
		}
		require.Equal(t, 10, result.Best.Size())
		require.LessOrEqual(t, result.Report.Uphill, result.Report.Accepted)
	}
}

func TestOptimizerReportCountsSteps(t *testing.T) {
	opt, err := NewOptimizer(diversityConfig(250, 3))
	require.NoError(t, err)

	result, err := opt.Run(context.Background(), twoCategoryRoster())
	require.NoError(t, err)
	require.Equal(t, 250, result.Report.Steps)
	require.GreaterOrEqual(t, result.Report.Accepted, result.Report.Uphill)
}

func TestOptimizerStopsOnCancelledContext(t *testing.T) {
	opt, err := NewOptimizer(diversityConfig(100, 1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = opt.Run(ctx, twoCategoryRoster())
	require.ErrorIs(t, err, context.Canceled)
}

func TestOptimizerScoringErrorsAbortTheRun(t *testing.T) {
	cfg := Config{
		Groups:     2,
		Iterations: 10,
		Objectives: []model.Objective{{Kind: model.ObjectiveClustering, Column: 1, Weight: 1}},
		Seed:       1,
	}
	opt, err := NewOptimizer(cfg)
	require.NoError(t, err)

	// Column 1 holds category labels, not numbers.
	_, err = opt.Run(context.Background(), twoCategoryRoster())
	require.Error(t, err)
}
