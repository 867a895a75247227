package search

import (
	"errors"
	"math/rand"

	"groupmix/internal/model"
)

var errRandRequired = errors.New("random source is required")

// Mutator produces a new candidate ordering from an existing one. The input
// is never modified; every application returns an independent copy.
type Mutator interface {
	Name() string
	Apply(roster model.Roster) (model.Roster, error)
}

// ShuffleMutator returns a uniformly random permutation of the roster. It
// seeds the search so the first candidate is not biased by input order.
type ShuffleMutator struct {
	Rand *rand.Rand
}

func (m *ShuffleMutator) Name() string {
	return "shuffle"
}

func (m *ShuffleMutator) Apply(roster model.Roster) (model.Roster, error) {
	if m == nil || m.Rand == nil {
		return nil, errRandRequired
	}

	out := roster.Clone()
	m.Rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out, nil
}

// SwapMutator exchanges two distinct positions chosen uniformly at random.
// A single transposition per step keeps the search local.
type SwapMutator struct {
	Rand *rand.Rand
}

func (m *SwapMutator) Name() string {
	return "swap"
}

func (m *SwapMutator) Apply(roster model.Roster) (model.Roster, error) {
	if m == nil || m.Rand == nil {
		return nil, errRandRequired
	}
	if len(roster) < 2 {
		return nil, errors.New("swap requires at least 2 participants")
	}

	out := roster.Clone()
	a := m.Rand.Intn(len(out))
	b := m.Rand.Intn(len(out) - 1)
	if b >= a {
		b++
	}
	out[a], out[b] = out[b], out[a]
	return out, nil
}
