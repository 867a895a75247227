// Package split forms contiguous, near-equal groups from an ordered roster.
// It is fully deterministic; all randomness lives upstream in the mutators.
package split

import (
	"fmt"

	"groupmix/internal/model"
)

// Partition splits the roster into k contiguous groups whose sizes differ by
// at most one. With n = len(roster), the first n%k groups receive one extra
// member. k > n is permitted and yields trailing empty groups. The same
// roster order and k always produce the same boundaries.
func Partition(roster model.Roster, k int) (model.Partition, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", model.ErrBadGroupCount, k)
	}

	n := len(roster)
	per := n / k
	extra := n % k

	groups := make(model.Partition, 0, k)

	// Groups carrying one extra member come first.
	for i := 0; i < extra; i++ {
		start := i * (per + 1)
		groups = append(groups, model.Group(roster[start:start+per+1]))
	}
	for i := 0; i < k-extra; i++ {
		start := extra*(per+1) + i*per
		groups = append(groups, model.Group(roster[start:start+per]))
	}

	return groups, nil
}
