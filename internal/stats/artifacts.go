// Package stats writes per-run artifacts and maintains the run index that
// the runs listing reads back.
package stats

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"groupmix/internal/model"
	"groupmix/internal/roster"
	"groupmix/internal/search"
)

const runIndexFile = "run_index.json"

type RunConfig struct {
	RunID      string            `json:"run_id"`
	Groups     int               `json:"groups"`
	Iterations int               `json:"iterations"`
	Annealing  bool              `json:"annealing"`
	Schedule   string            `json:"schedule,omitempty"`
	Seed       int64             `json:"seed"`
	Objectives []model.Objective `json:"objectives"`
}

type RunArtifacts struct {
	Config       RunConfig       `json:"config"`
	ScoreHistory []float64       `json:"score_history"`
	BestScore    float64         `json:"best_score"`
	Report       search.Report   `json:"report"`
	Best         model.Partition `json:"-"`
}

type RunIndexEntry struct {
	RunID        string  `json:"run_id"`
	Groups       int     `json:"groups"`
	Iterations   int     `json:"iterations"`
	Annealing    bool    `json:"annealing"`
	Schedule     string  `json:"schedule,omitempty"`
	Seed         int64   `json:"seed"`
	BestScore    float64 `json:"best_score"`
	CreatedAtUTC string  `json:"created_at_utc"`
}

// WriteRunArtifacts lays down one directory per run: the config, the
// best-score trajectory (JSON plus a step,score CSV), the acceptance report,
// and the winning groups as a TSV ready for spreadsheets.
func WriteRunArtifacts(baseDir string, artifacts RunArtifacts) (string, error) {
	if artifacts.Config.RunID == "" {
		return "", fmt.Errorf("run id is required")
	}

	runDir := filepath.Join(baseDir, artifacts.Config.RunID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, "config.json"), artifacts.Config); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "score_history.json"), map[string]any{
		"score_history": artifacts.ScoreHistory,
		"best_score":    artifacts.BestScore,
	}); err != nil {
		return "", err
	}
	if err := writeJSON(filepath.Join(runDir, "report.json"), artifacts.Report); err != nil {
		return "", err
	}
	if err := writeHistoryCSV(filepath.Join(runDir, "score_history.csv"), artifacts.ScoreHistory); err != nil {
		return "", err
	}
	if artifacts.Best != nil {
		if err := roster.WriteGroupsFile(filepath.Join(runDir, "groups.tsv"), artifacts.Best, roster.DefaultDelimiter); err != nil {
			return "", err
		}
	}

	return runDir, nil
}

func AppendRunIndex(baseDir string, entry RunIndexEntry) error {
	if entry.RunID == "" {
		return fmt.Errorf("run id is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}

	index, err := ListRunIndex(baseDir)
	if err != nil {
		return err
	}

	for i := range index {
		if index[i].RunID == entry.RunID {
			index[i] = entry
			return writeJSON(filepath.Join(baseDir, runIndexFile), index)
		}
	}

	index = append(index, entry)
	return writeJSON(filepath.Join(baseDir, runIndexFile), index)
}

func ListRunIndex(baseDir string) ([]RunIndexEntry, error) {
	path := filepath.Join(baseDir, runIndexFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunIndexEntry{}, nil
		}
		return nil, err
	}

	var entries []RunIndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	type indexedEntry struct {
		entry RunIndexEntry
		idx   int
	}
	indexed := make([]indexedEntry, len(entries))
	for i := range entries {
		indexed[i] = indexedEntry{entry: entries[i], idx: i}
	}
	sort.Slice(indexed, func(i, j int) bool {
		if indexed[i].entry.CreatedAtUTC == indexed[j].entry.CreatedAtUTC {
			// Prefer later appended entries for equal timestamps.
			return indexed[i].idx > indexed[j].idx
		}
		return indexed[i].entry.CreatedAtUTC > indexed[j].entry.CreatedAtUTC
	})

	sorted := make([]RunIndexEntry, 0, len(indexed))
	for _, item := range indexed {
		sorted = append(sorted, item.entry)
	}
	return sorted, nil
}

func writeHistoryCSV(path string, history []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "best_score"}); err != nil {
		return err
	}
	for i, score := range history {
		if err := w.Write([]string{strconv.Itoa(i + 1), strconv.FormatFloat(score, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
