package search

import (
	"fmt"

	"groupmix/internal/model"
)

// Score evaluates every objective against the partition and combines them
// into one scalar: the arithmetic mean of the weighted metric values. The
// optimizer minimizes this value. An empty objective set is a configuration
// error, not a zero score.
func Score(p model.Partition, objectives []model.Objective) (float64, error) {
	if len(objectives) == 0 {
		return 0, model.ErrNoObjectives
	}

	total := 0.0
	for i, obj := range objectives {
		var (
			value float64
			err   error
		)
		switch obj.Kind {
		case model.ObjectiveDiversity:
			value, err = Diversity(p, obj.Column)
		case model.ObjectiveClustering:
			value, err = Clustering(p, obj.Column)
		default:
			return 0, fmt.Errorf("objective %d: unknown kind %q", i, obj.Kind)
		}
		if err != nil {
			return 0, fmt.Errorf("objective %d (%s, column %d): %w", i, obj.Kind, obj.Column, err)
		}
		total += obj.Weight * value
	}
	return total / float64(len(objectives)), nil
}
