// Package groupmix is the embedding surface for the group optimizer: load a
// roster, split it or search for a balanced split, and read back past runs.
package groupmix

import (
	"context"
	"time"

	"github.com/google/uuid"

	"groupmix/internal/model"
	"groupmix/internal/search"
	"groupmix/internal/split"
	"groupmix/internal/stats"
	"groupmix/internal/storage"
)

const (
	defaultRunsDir = "runs"
	defaultDBPath  = "groupmix.db"
)

type Options struct {
	StoreKind string
	DBPath    string
	RunsDir   string
}

type Client struct {
	store   storage.Store
	runsDir string
}

type RunRequest struct {
	Roster     model.Roster
	Groups     int
	Iterations int
	Annealing  bool
	Schedule   string
	Seed       int64
	Objectives []model.Objective
}

type RunSummary struct {
	RunID        string
	BestScore    float64
	Best         model.Partition
	History      []float64
	Report       search.Report
	Seed         int64
	ArtifactsDir string
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Groups       int
	Iterations   int
	Annealing    bool
	Seed         int64
	BestScore    float64
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	runsDir := opts.RunsDir
	if runsDir == "" {
		runsDir = defaultRunsDir
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{
		store:   store,
		runsDir: runsDir,
	}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Split partitions the roster in its given order, with no search. This is
// the zero-iteration path: deterministic and unscored.
func (c *Client) Split(_ context.Context, roster model.Roster, groups int) (model.Partition, error) {
	return split.Partition(roster, groups)
}

// Optimize runs one full search, persists the run, and writes its artifacts
// directory. A zero seed is replaced with a time-derived one; the effective
// seed is recorded so any run can be replayed.
func (c *Client) Optimize(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	opt, err := search.NewOptimizer(search.Config{
		Groups:     req.Groups,
		Iterations: req.Iterations,
		Objectives: req.Objectives,
		Annealing:  req.Annealing,
		Schedule:   search.Schedule(req.Schedule),
		Seed:       req.Seed,
	})
	if err != nil {
		return RunSummary{}, err
	}

	result, err := opt.Run(ctx, req.Roster)
	if err != nil {
		return RunSummary{}, err
	}

	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)

	run := model.RunRecord{
		VersionedRecord: storage.Stamp(),
		ID:              runID,
		CreatedAtUTC:    createdAt,
		Groups:          req.Groups,
		Iterations:      req.Iterations,
		Annealing:       req.Annealing,
		Schedule:        req.Schedule,
		Seed:            req.Seed,
		Objectives:      req.Objectives,
		BestScore:       result.BestScore,
	}
	if err := c.store.SaveRun(ctx, run); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveScoreHistory(ctx, runID, result.History); err != nil {
		return RunSummary{}, err
	}
	if err := c.store.SaveAssignment(ctx, model.Assignment{
		VersionedRecord: storage.Stamp(),
		RunID:           runID,
		Groups:          result.Best,
	}); err != nil {
		return RunSummary{}, err
	}

	artifactsDir, err := stats.WriteRunArtifacts(c.runsDir, stats.RunArtifacts{
		Config: stats.RunConfig{
			RunID:      runID,
			Groups:     req.Groups,
			Iterations: req.Iterations,
			Annealing:  req.Annealing,
			Schedule:   req.Schedule,
			Seed:       req.Seed,
			Objectives: req.Objectives,
		},
		ScoreHistory: result.History,
		BestScore:    result.BestScore,
		Report:       result.Report,
		Best:         result.Best,
	})
	if err != nil {
		return RunSummary{}, err
	}
	if err := stats.AppendRunIndex(c.runsDir, stats.RunIndexEntry{
		RunID:        runID,
		Groups:       req.Groups,
		Iterations:   req.Iterations,
		Annealing:    req.Annealing,
		Schedule:     req.Schedule,
		Seed:         req.Seed,
		BestScore:    result.BestScore,
		CreatedAtUTC: createdAt,
	}); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:        runID,
		BestScore:    result.BestScore,
		Best:         result.Best,
		History:      result.History,
		Report:       result.Report,
		Seed:         req.Seed,
		ArtifactsDir: artifactsDir,
	}, nil
}

func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}

	runs, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]RunItem, 0, len(runs))
	for _, run := range runs {
		out = append(out, RunItem{
			RunID:        run.ID,
			CreatedAtUTC: run.CreatedAtUTC,
			Groups:       run.Groups,
			Iterations:   run.Iterations,
			Annealing:    run.Annealing,
			Seed:         run.Seed,
			BestScore:    run.BestScore,
		})
	}
	return out, nil
}

func (c *Client) ScoreHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	return c.store.GetScoreHistory(ctx, runID)
}

func (c *Client) Assignment(ctx context.Context, runID string) (model.Assignment, bool, error) {
	return c.store.GetAssignment(ctx, runID)
}
