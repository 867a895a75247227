//go:build !lambda

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"groupmix/internal/model"
	"groupmix/internal/roster"
	"groupmix/internal/split"
	"groupmix/internal/storage"
	"groupmix/pkg/groupmix"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "split":
		return runSplit(ctx, args[1:])
	case "optimize":
		return runOptimize(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

// runSplit partitions the roster in its file order without any search.
func runSplit(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	input := fs.String("input", "", "roster file path")
	jsonInput := fs.Bool("json", false, "parse the roster as a JSON array of records")
	delimiter := fs.String("delimiter", "", "field delimiter (default tab)")
	groups := fs.Int("n", 0, "number of groups")
	output := fs.String("o", "", "write records with a trailing group column to this path")
	nameColumn := fs.Int("name-column", 1, "column shown in group listings")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := runOptions{Input: *input, JSONInput: *jsonInput, Delimiter: *delimiter, Groups: *groups}
	if err := opts.validate(); err != nil {
		return err
	}
	delim, err := opts.delimiterRune()
	if err != nil {
		return err
	}

	participants, err := loadRoster(opts.Input, opts.JSONInput, delim)
	if err != nil {
		return err
	}

	partition, err := split.Partition(participants, opts.Groups)
	if err != nil {
		return err
	}

	roster.Print(os.Stdout, partition, *nameColumn)
	if *output != "" {
		if err := roster.WriteGroupsFile(*output, partition, delim); err != nil {
			return err
		}
	}
	return nil
}

func runOptimize(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	profilePath := fs.String("profile", "", "TOML run profile")
	input := fs.String("input", "", "roster file path")
	jsonInput := fs.Bool("json", false, "parse the roster as a JSON array of records")
	delimiter := fs.String("delimiter", "", "field delimiter (default tab)")
	groups := fs.Int("n", 0, "number of groups")
	iterations := fs.Int("i", 0, "optimization steps")
	annealing := fs.Bool("a", false, "accept some score-worsening moves (simulated annealing)")
	schedule := fs.String("schedule", "", "annealing temperature schedule: forward|cooling")
	seed := fs.Int64("seed", 0, "random seed (0 = time-derived)")
	output := fs.String("o", "", "write records with a trailing group column to this path")
	nameColumn := fs.Int("name-column", 1, "column shown in group listings")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "groupmix.db", "sqlite database path")
	runsDir := fs.String("runs-dir", "runs", "run artifacts directory")
	var mix, cluster stringList
	fs.Var(&mix, "m", "diversity column spec <column>[:<weight>], repeatable; negative weight groups instead of mixing")
	fs.Var(&cluster, "c", "clustering column spec <column>[:<weight>], repeatable; negative weight disperses instead of clustering")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := runOptions{
		NameColumn: *nameColumn,
		StoreKind:  *storeKind,
		DBPath:     *dbPath,
		RunsDir:    *runsDir,
	}
	if *profilePath != "" {
		loaded, err := loadProfile(*profilePath)
		if err != nil {
			return err
		}
		opts = loaded
	}

	// Explicit flags win over the profile.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			opts.Input = *input
		case "json":
			opts.JSONInput = *jsonInput
		case "delimiter":
			opts.Delimiter = *delimiter
		case "n":
			opts.Groups = *groups
		case "i":
			opts.Iterations = *iterations
		case "a":
			opts.Annealing = *annealing
		case "schedule":
			opts.Schedule = *schedule
		case "seed":
			opts.Seed = *seed
		case "o":
			opts.Output = *output
		case "name-column":
			opts.NameColumn = *nameColumn
		case "store":
			opts.StoreKind = *storeKind
		case "db-path":
			opts.DBPath = *dbPath
		case "runs-dir":
			opts.RunsDir = *runsDir
		case "m":
			opts.Mix = mix
		case "c":
			opts.Cluster = cluster
		}
	})

	if err := opts.validate(); err != nil {
		return err
	}
	if opts.Iterations <= 0 {
		return fmt.Errorf("optimize requires -i > 0; use the split command for an unoptimized partition")
	}
	objectives, err := opts.objectives()
	if err != nil {
		return err
	}
	delim, err := opts.delimiterRune()
	if err != nil {
		return err
	}

	participants, err := loadRoster(opts.Input, opts.JSONInput, delim)
	if err != nil {
		return err
	}

	client, err := groupmix.New(groupmix.Options{
		StoreKind: opts.StoreKind,
		DBPath:    opts.DBPath,
		RunsDir:   opts.RunsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Optimize(ctx, groupmix.RunRequest{
		Roster:     participants,
		Groups:     opts.Groups,
		Iterations: opts.Iterations,
		Annealing:  opts.Annealing,
		Schedule:   opts.Schedule,
		Seed:       opts.Seed,
		Objectives: objectives,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s\n", summary.RunID)
	fmt.Printf("best score: %g (seed %d)\n", summary.BestScore, summary.Seed)
	fmt.Printf("steps: %s, accepted: %s, uphill: %s, improved: %s\n",
		humanize.Comma(int64(summary.Report.Steps)),
		humanize.Comma(int64(summary.Report.Accepted)),
		humanize.Comma(int64(summary.Report.Uphill)),
		humanize.Comma(int64(summary.Report.Improved)))
	fmt.Printf("artifacts: %s\n\n", summary.ArtifactsDir)
	roster.Print(os.Stdout, summary.Best, opts.NameColumn)

	if opts.Output != "" {
		if err := roster.WriteGroupsFile(opts.Output, summary.Best, delim); err != nil {
			return err
		}
	}
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "groupmix.db", "sqlite database path")
	runsDir := fs.String("runs-dir", "runs", "run artifacts directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := groupmix.New(groupmix.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		RunsDir:   *runsDir,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()
	if err := client.Init(ctx); err != nil {
		return err
	}

	items, err := client.Runs(ctx, groupmix.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	for _, item := range items {
		annealing := ""
		if item.Annealing {
			annealing = " annealing"
		}
		fmt.Printf("%s  %s  n=%d i=%s seed=%d%s  best=%g\n",
			item.RunID, item.CreatedAtUTC, item.Groups,
			humanize.Comma(int64(item.Iterations)), item.Seed, annealing, item.BestScore)
	}
	return nil
}

func loadRoster(path string, jsonInput bool, delimiter rune) (model.Roster, error) {
	if jsonInput {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return roster.LoadJSON(data)
	}
	return roster.LoadFile(path, delimiter)
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: groupmixctl <split|optimize|runs> [flags]", msg)
}
