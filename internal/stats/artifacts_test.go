package stats

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"groupmix/internal/model"
	"groupmix/internal/search"
)

func sampleArtifacts(runID string) RunArtifacts {
	return RunArtifacts{
		Config: RunConfig{
			RunID:      runID,
			Groups:     2,
			Iterations: 100,
			Seed:       7,
			Objectives: []model.Objective{
				{Kind: model.ObjectiveDiversity, Column: 1, Weight: 1},
			},
		},
		ScoreHistory: []float64{1.0, 0.8, 0.6},
		BestScore:    0.6,
		Report:       search.Report{Steps: 100, Accepted: 40, Improved: 2},
		Best: model.Partition{
			{model.Participant{"1", "A"}},
			{model.Participant{"2", "B"}},
		},
	}
}

func TestWriteRunArtifactsRequiresRunID(t *testing.T) {
	artifacts := sampleArtifacts("")
	_, err := WriteRunArtifacts(t.TempDir(), artifacts)
	require.Error(t, err)
}

func TestWriteRunArtifactsLaysDownFiles(t *testing.T) {
	base := t.TempDir()
	runDir, err := WriteRunArtifacts(base, sampleArtifacts("run-1"))
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "run-1"), runDir)

	for _, name := range []string{"config.json", "score_history.json", "score_history.csv", "report.json", "groups.tsv"} {
		_, err := os.Stat(filepath.Join(runDir, name))
		require.NoError(t, err, "missing artifact %s", name)
	}

	data, err := os.ReadFile(filepath.Join(runDir, "config.json"))
	require.NoError(t, err)
	var cfg RunConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	require.Equal(t, "run-1", cfg.RunID)
	require.Equal(t, 2, cfg.Groups)

	csvData, err := os.ReadFile(filepath.Join(runDir, "score_history.csv"))
	require.NoError(t, err)
	require.Equal(t, "step,best_score\n1,1\n2,0.8\n3,0.6\n", string(csvData))

	tsv, err := os.ReadFile(filepath.Join(runDir, "groups.tsv"))
	require.NoError(t, err)
	require.Equal(t, "1\tA\t1\n2\tB\t2\n", string(tsv))
}

func TestRunIndexAppendAndList(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, AppendRunIndex(base, RunIndexEntry{
		RunID: "old", BestScore: 0.9, CreatedAtUTC: "2026-01-01T00:00:00Z",
	}))
	require.NoError(t, AppendRunIndex(base, RunIndexEntry{
		RunID: "new", BestScore: 0.5, CreatedAtUTC: "2026-02-01T00:00:00Z",
	}))

	entries, err := ListRunIndex(base)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "new", entries[0].RunID)
	require.Equal(t, "old", entries[1].RunID)
}

func TestRunIndexReplacesExistingEntry(t *testing.T) {
	base := t.TempDir()

	require.NoError(t, AppendRunIndex(base, RunIndexEntry{
		RunID: "run-1", BestScore: 0.9, CreatedAtUTC: "2026-01-01T00:00:00Z",
	}))
	require.NoError(t, AppendRunIndex(base, RunIndexEntry{
		RunID: "run-1", BestScore: 0.4, CreatedAtUTC: "2026-01-01T00:00:00Z",
	}))

	entries, err := ListRunIndex(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 0.4, entries[0].BestScore)
}

func TestListRunIndexEmptyDir(t *testing.T) {
	entries, err := ListRunIndex(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, entries)
}
