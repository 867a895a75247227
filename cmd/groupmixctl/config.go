package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"groupmix/internal/model"
)

// runOptions collects everything an optimize run needs. A TOML profile can
// pre-fill it; explicit flags win over profile values.
type runOptions struct {
	Input       string   `toml:"input"`
	JSONInput   bool     `toml:"json_input"`
	Delimiter   string   `toml:"delimiter"`
	Groups      int      `toml:"groups"`
	Iterations  int      `toml:"iterations"`
	Annealing   bool     `toml:"annealing"`
	Schedule    string   `toml:"schedule"`
	Seed        int64    `toml:"seed"`
	Mix         []string `toml:"mix"`
	Cluster     []string `toml:"cluster"`
	Output      string   `toml:"output"`
	NameColumn  int      `toml:"name_column"`
	StoreKind   string   `toml:"store"`
	DBPath      string   `toml:"db_path"`
	RunsDir     string   `toml:"runs_dir"`
}

func loadProfile(path string) (runOptions, error) {
	opts := runOptions{NameColumn: 1}

	f, err := os.Open(path)
	if err != nil {
		return runOptions{}, err
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(&opts); err != nil {
		return runOptions{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return opts, nil
}

func (o runOptions) delimiterRune() (rune, error) {
	if o.Delimiter == "" {
		return '\t', nil
	}
	runes := []rune(o.Delimiter)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", o.Delimiter)
	}
	return runes[0], nil
}

// validate enforces the configuration invariants before the core is invoked:
// a positive group count always, and a positive iteration count whenever any
// metric column is configured.
func (o runOptions) validate() error {
	if o.Input == "" {
		return fmt.Errorf("input roster path is required")
	}
	if o.Groups <= 0 {
		return fmt.Errorf("%w: got %d", model.ErrBadGroupCount, o.Groups)
	}
	if (len(o.Mix) > 0 || len(o.Cluster) > 0) && o.Iterations <= 0 {
		return fmt.Errorf("metric columns require a positive iteration count")
	}
	return nil
}

// objectives turns the raw <column>[:<weight>] specs into tagged objectives,
// defaulting the weight to 1. Negative weights are allowed and flip the
// optimization direction for that column.
func (o runOptions) objectives() ([]model.Objective, error) {
	var out []model.Objective
	for _, spec := range o.Mix {
		obj, err := parseColumnSpec(model.ObjectiveDiversity, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	for _, spec := range o.Cluster {
		obj, err := parseColumnSpec(model.ObjectiveClustering, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

func parseColumnSpec(kind model.ObjectiveKind, spec string) (model.Objective, error) {
	colPart, weightPart, hasWeight := strings.Cut(spec, ":")

	column, err := strconv.Atoi(colPart)
	if err != nil || column < 0 {
		return model.Objective{}, fmt.Errorf("invalid column in %s spec %q", kind, spec)
	}

	weight := 1.0
	if hasWeight {
		weight, err = strconv.ParseFloat(weightPart, 64)
		if err != nil {
			return model.Objective{}, fmt.Errorf("invalid weight in %s spec %q", kind, spec)
		}
	}

	return model.Objective{Kind: kind, Column: column, Weight: weight}, nil
}

// stringList is a repeatable flag value.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}
