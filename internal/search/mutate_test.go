package search

import (
	"math/rand"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"groupmix/internal/model"
)

func numberedRoster(n int) model.Roster {
	r := make(model.Roster, 0, n)
	for i := 0; i < n; i++ {
		r = append(r, model.Participant{strconv.Itoa(i), "x"})
	}
	return r
}

func ids(r model.Roster) []string {
	out := make([]string, len(r))
	for i, p := range r {
		out[i] = p[0]
	}
	return out
}

func TestMutatorsRequireRandSource(t *testing.T) {
	roster := numberedRoster(4)

	_, err := (&ShuffleMutator{}).Apply(roster)
	require.Error(t, err)

	_, err = (&SwapMutator{}).Apply(roster)
	require.Error(t, err)
}

func TestShuffleIsPermutation(t *testing.T) {
	roster := numberedRoster(50)
	m := &ShuffleMutator{Rand: rand.New(rand.NewSource(7))}

	out, err := m.Apply(roster)
	require.NoError(t, err)
	require.Len(t, out, len(roster))

	got := ids(out)
	want := ids(roster)
	sort.Strings(got)
	sort.Strings(want)
	require.Equal(t, want, got)
}

func TestShuffleLeavesInputIntact(t *testing.T) {
	roster := numberedRoster(20)
	before := ids(roster)

	m := &ShuffleMutator{Rand: rand.New(rand.NewSource(3))}
	out, err := m.Apply(roster)
	require.NoError(t, err)

	require.Equal(t, before, ids(roster))

	// The copy is deep: editing the output must not reach the input.
	out[0][0] = "mutated"
	require.Equal(t, before, ids(roster))
}

func TestSwapExchangesExactlyTwoPositions(t *testing.T) {
	roster := numberedRoster(12)
	m := &SwapMutator{Rand: rand.New(rand.NewSource(11))}

	for trial := 0; trial < 100; trial++ {
		out, err := m.Apply(roster)
		require.NoError(t, err)

		diff := []int{}
		for i := range roster {
			if roster[i][0] != out[i][0] {
				diff = append(diff, i)
			}
		}
		require.Len(t, diff, 2, "exactly two positions must change")
		a, b := diff[0], diff[1]
		require.Equal(t, roster[a][0], out[b][0])
		require.Equal(t, roster[b][0], out[a][0])
	}
}

func TestSwapPreservesMultiset(t *testing.T) {
	roster := numberedRoster(9)
	m := &SwapMutator{Rand: rand.New(rand.NewSource(5))}

	out, err := m.Apply(roster)
	require.NoError(t, err)

	got := ids(out)
	want := ids(roster)
	sort.Strings(got)
	sort.Strings(want)
	require.Equal(t, want, got)
}

func TestSwapNeedsTwoParticipants(t *testing.T) {
	m := &SwapMutator{Rand: rand.New(rand.NewSource(1))}
	_, err := m.Apply(numberedRoster(1))
	require.Error(t, err)
}
