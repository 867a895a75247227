package search

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"groupmix/internal/model"
)

var (
	// ErrEmptyGroup is returned when a metric meets a group with no members.
	// Empty groups only arise when the requested group count exceeds the
	// roster size; neither metric is defined over zero members.
	ErrEmptyGroup = errors.New("metric undefined for empty group")

	// ErrZeroDeviation is returned when the clustering column has no spread
	// across the whole roster, which leaves nothing to normalize against.
	ErrZeroDeviation = errors.New("column has zero deviation across roster")

	ErrColumnRange = errors.New("column index out of range")
)

// Diversity measures how concentrated a categorical column is within groups.
// Per group it is the dominance ratio max(count)/sum(counts) of the most
// frequent value; the result is the mean ratio across groups, in (0, 1].
// 1 means every group is monocultural; lower means better mixed.
func Diversity(p model.Partition, column int) (float64, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("%w: partition has no groups", ErrEmptyGroup)
	}

	total := 0.0
	for gi, g := range p {
		if len(g) == 0 {
			return 0, fmt.Errorf("%w: group %d", ErrEmptyGroup, gi+1)
		}
		counts := make(map[string]int, len(g))
		for _, member := range g {
			v, err := field(member, column)
			if err != nil {
				return 0, fmt.Errorf("group %d: %w", gi+1, err)
			}
			counts[v]++
		}
		max := 0
		for _, c := range counts {
			if c > max {
				max = c
			}
		}
		total += float64(max) / float64(len(g))
	}
	return total / float64(len(p)), nil
}

// Clustering measures how spread a numeric column is within groups relative
// to the whole roster: the sum of per-group standard deviations, normalized
// by the roster-wide standard deviation and the group count. Near 0 means
// groups are internally homogeneous.
func Clustering(p model.Partition, column int) (float64, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("%w: partition has no groups", ErrEmptyGroup)
	}

	var all []float64
	sum := 0.0
	for gi, g := range p {
		if len(g) == 0 {
			return 0, fmt.Errorf("%w: group %d", ErrEmptyGroup, gi+1)
		}
		vals := make([]float64, 0, len(g))
		for _, member := range g {
			raw, err := field(member, column)
			if err != nil {
				return 0, fmt.Errorf("group %d: %w", gi+1, err)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return 0, fmt.Errorf("group %d, column %d: non-numeric value %q", gi+1, column, raw)
			}
			vals = append(vals, v)
		}
		all = append(all, vals...)
		sum += stddev(vals)
	}

	overall := stddev(all)
	if overall == 0 {
		return 0, fmt.Errorf("%w: column %d", ErrZeroDeviation, column)
	}
	return sum / overall / float64(len(p)), nil
}

func field(p model.Participant, column int) (string, error) {
	if column < 0 || column >= len(p) {
		return "", fmt.Errorf("%w: column %d, record has %d fields", ErrColumnRange, column, len(p))
	}
	return p[column], nil
}

// stddev is the population standard deviation.
func stddev(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return math.Sqrt(variance)
}
