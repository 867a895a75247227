package storage

import (
	"context"

	"groupmix/internal/model"
)

// Store persists optimization run history: the run metadata, the best-score
// trajectory, and the winning assignment.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	SaveScoreHistory(ctx context.Context, runID string, history []float64) error
	GetScoreHistory(ctx context.Context, runID string) ([]float64, bool, error)
	SaveAssignment(ctx context.Context, assignment model.Assignment) error
	GetAssignment(ctx context.Context, runID string) (model.Assignment, bool, error)
}
