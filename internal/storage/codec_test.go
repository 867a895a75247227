package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupmix/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	run := testRun("run-1", "2026-01-02T03:04:05Z")

	data, err := EncodeRun(run)
	require.NoError(t, err)

	got, err := DecodeRun(data)
	require.NoError(t, err)
	require.Equal(t, run, got)
}

func TestDecodeRunRejectsVersionMismatch(t *testing.T) {
	run := testRun("run-1", "2026-01-02T03:04:05Z")
	run.SchemaVersion = 99

	data, err := EncodeRun(run)
	require.NoError(t, err)

	_, err = DecodeRun(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestAssignmentCodecRoundTrip(t *testing.T) {
	assignment := model.Assignment{
		VersionedRecord: Stamp(),
		RunID:           "run-1",
		Groups: model.Partition{
			{model.Participant{"1", "ana", "A"}},
			{model.Participant{"2", "bea", "B"}},
		},
	}

	data, err := EncodeAssignment(assignment)
	require.NoError(t, err)

	got, err := DecodeAssignment(data)
	require.NoError(t, err)
	require.Equal(t, assignment, got)
}

func TestDecodeAssignmentRejectsVersionMismatch(t *testing.T) {
	assignment := model.Assignment{RunID: "run-1"}

	data, err := EncodeAssignment(assignment)
	require.NoError(t, err)

	_, err = DecodeAssignment(data)
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestHistoryCodecRoundTrip(t *testing.T) {
	history := []float64{1, 0.75, 0.5, 0.5}

	data, err := EncodeHistory(history)
	require.NoError(t, err)

	got, err := DecodeHistory(data)
	require.NoError(t, err)
	require.Equal(t, history, got)
}
