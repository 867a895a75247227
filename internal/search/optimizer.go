package search

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"groupmix/internal/model"
	"groupmix/internal/split"
)

// Schedule names a temperature curve for annealed acceptance.
type Schedule string

const (
	// ScheduleForward raises the temperature from near 0 to 1 over the run,
	// so uphill moves are admitted most freely in the late steps. This is
	// the historical behavior and the default.
	ScheduleForward Schedule = "forward"
	// ScheduleCooling lowers the temperature from 1 toward 0 over the run,
	// the conventional annealing direction.
	ScheduleCooling Schedule = "cooling"
)

type Config struct {
	Groups     int
	Iterations int
	Objectives []model.Objective
	Annealing  bool
	Schedule   Schedule
	Seed       int64
}

// Report summarizes acceptance behavior over one run.
type Report struct {
	Steps    int `json:"steps"`
	Accepted int `json:"accepted"`
	Uphill   int `json:"uphill"`
	Improved int `json:"improved"`
}

type Result struct {
	Best      model.Partition
	BestScore float64
	// History holds the best score seen after each step; it never increases.
	History []float64
	Report  Report
}

// Optimizer runs a stochastic local search over roster orderings: one swap
// per step, greedy acceptance, optional annealed acceptance of worse moves,
// with the best partition tracked independently of the current state.
type Optimizer struct {
	cfg Config
	rng *rand.Rand
}

func NewOptimizer(cfg Config) (*Optimizer, error) {
	if cfg.Groups <= 0 {
		return nil, fmt.Errorf("%w: got %d", model.ErrBadGroupCount, cfg.Groups)
	}
	if cfg.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be > 0, got %d", cfg.Iterations)
	}
	if len(cfg.Objectives) == 0 {
		return nil, model.ErrNoObjectives
	}
	switch cfg.Schedule {
	case "":
		cfg.Schedule = ScheduleForward
	case ScheduleForward, ScheduleCooling:
	default:
		return nil, fmt.Errorf("unknown schedule: %q", cfg.Schedule)
	}

	return &Optimizer{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

func (o *Optimizer) Run(ctx context.Context, roster model.Roster) (Result, error) {
	shuffle := &ShuffleMutator{Rand: o.rng}
	swap := &SwapMutator{Rand: o.rng}

	current, err := shuffle.Apply(roster)
	if err != nil {
		return Result{}, err
	}
	currentScore, bestScore, best, err := o.evaluate(current)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		History: make([]float64, 0, o.cfg.Iterations),
	}

	for step := 0; step < o.cfg.Iterations; step++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		candidate, err := swap.Apply(current)
		if err != nil {
			return Result{}, err
		}
		groups, err := split.Partition(candidate, o.cfg.Groups)
		if err != nil {
			return Result{}, err
		}
		score, err := Score(groups, o.cfg.Objectives)
		if err != nil {
			return Result{}, err
		}

		result.Report.Steps++
		switch {
		case score <= currentScore:
			current = candidate
			currentScore = score
			result.Report.Accepted++
		case o.cfg.Annealing:
			t := o.temperature(step)
			if o.rng.Float64() < math.Exp(-(score-currentScore)/t) {
				current = candidate
				currentScore = score
				result.Report.Accepted++
				result.Report.Uphill++
			}
		}

		// Best tracking is independent of whether the candidate was accepted.
		if score <= bestScore {
			best = groups.Clone()
			bestScore = score
			result.Report.Improved++
		}
		result.History = append(result.History, bestScore)
	}

	result.Best = best
	result.BestScore = bestScore
	return result, nil
}

func (o *Optimizer) evaluate(roster model.Roster) (score, bestScore float64, best model.Partition, err error) {
	groups, err := split.Partition(roster, o.cfg.Groups)
	if err != nil {
		return 0, 0, nil, err
	}
	s, err := Score(groups, o.cfg.Objectives)
	if err != nil {
		return 0, 0, nil, err
	}
	return s, s, groups.Clone(), nil
}

func (o *Optimizer) temperature(step int) float64 {
	n := float64(o.cfg.Iterations)
	if o.cfg.Schedule == ScheduleCooling {
		return (n - float64(step)) / n
	}
	return (float64(step) + 1) / n
}
