package model

import "errors"

var (
	ErrBadGroupCount = errors.New("group count must be > 0")
	ErrNoObjectives  = errors.New("at least one objective is required")
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// Participant is one roster row: an ordered tuple of attribute fields.
// Fields are kept as raw strings; numeric columns are parsed at metric
// evaluation time. Identity is positional within the roster.
type Participant []string

// Roster is the ordered population to be partitioned. Order matters only as
// the assignment order before mutation; mutators permute copies of it.
type Roster []Participant

// Group is one subset of the roster produced by a partition.
type Group []Participant

// Partition assigns every roster member to exactly one group.
type Partition []Group

// Clone returns a deep copy of the roster. Mutation and best-state tracking
// must never alias the sequences they were derived from.
func (r Roster) Clone() Roster {
	if r == nil {
		return nil
	}
	out := make(Roster, len(r))
	for i, p := range r {
		cp := make(Participant, len(p))
		copy(cp, p)
		out[i] = cp
	}
	return out
}

// Size returns the total number of participants across all groups.
func (p Partition) Size() int {
	n := 0
	for _, g := range p {
		n += len(g)
	}
	return n
}

// Clone returns a deep copy of the partition.
func (p Partition) Clone() Partition {
	if p == nil {
		return nil
	}
	out := make(Partition, len(p))
	for i, g := range p {
		cg := make(Group, len(g))
		for j, m := range g {
			cp := make(Participant, len(m))
			copy(cp, m)
			cg[j] = cp
		}
		out[i] = cg
	}
	return out
}

type ObjectiveKind string

const (
	// ObjectiveDiversity spreads a categorical column across groups.
	ObjectiveDiversity ObjectiveKind = "diversity"
	// ObjectiveClustering gathers similar numeric values within groups.
	ObjectiveClustering ObjectiveKind = "clustering"
)

// Objective is one scoring directive: which metric, over which column, with
// what signed weight. A negative weight inverts the optimization direction
// for that column (group instead of mix, disperse instead of cluster).
type Objective struct {
	Kind   ObjectiveKind `json:"kind"`
	Column int           `json:"column"`
	Weight float64       `json:"weight"`
}

// RunRecord is the persisted metadata of one optimization run.
type RunRecord struct {
	VersionedRecord
	ID           string      `json:"id"`
	CreatedAtUTC string      `json:"created_at_utc"`
	Groups       int         `json:"groups"`
	Iterations   int         `json:"iterations"`
	Annealing    bool        `json:"annealing"`
	Schedule     string      `json:"schedule,omitempty"`
	Seed         int64       `json:"seed"`
	Objectives   []Objective `json:"objectives"`
	BestScore    float64     `json:"best_score"`
}

// Assignment is the persisted outcome of a run: the best partition found.
type Assignment struct {
	VersionedRecord
	RunID  string    `json:"run_id"`
	Groups Partition `json:"groups"`
}
