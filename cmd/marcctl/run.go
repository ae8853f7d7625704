package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/internal/logger"
	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/pkg/pipeline"
)

var runStrict bool

func init() {
	cmd := newRunCmd()
	addFormatFlags(cmd, true, true)
	cmd.Flags().BoolVar(&runStrict, "strict", false, "Stop at the first invalid record")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <pipeline.yaml> <in> <out>",
		Short: "Apply a cleanup pipeline to a record file",
		Long: `The run command reads every record of <in>, applies the steps of the
pipeline in order, and writes the result to <out>. Records that fail to decode
are logged and skipped unless --strict is given.

Example:
  marcctl run cleanup.yaml catalog.mrc clean.mrc
  marcctl run cleanup.yaml catalog.mrc.xz clean.mrk
  marcctl run cleanup.yaml dump.dat out.xml --in-format iso2709 --json`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args)
		},
	}
	return cmd
}

func runRun(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	pipelinePath, inPath, outPath := args[0], args[1], args[2]

	printVerbose("Loading pipeline: %s\n", pipelinePath)
	p, err := pipeline.Load(pipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}

	stats, err := process(ctx, p, inPath, outPath)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(statsJSON(stats))
	}
	printStats(stats)
	return nil
}

// process drives marc.ProcessFile with the command-line options.
func process(ctx context.Context, p *pipeline.Pipeline, inPath, outPath string) (marc.Stats, error) {
	opts := marc.DefaultProcessOptions()
	var err error
	if opts.Read, err = readOptions(); err != nil {
		return marc.Stats{}, err
	}
	if opts.Write, err = writeOptions(); err != nil {
		return marc.Stats{}, err
	}
	opts.KeepGoing = !runStrict
	opts.Logger = logger.L()

	printVerbose("Processing %s -> %s\n", inPath, outPath)
	stats, err := marc.ProcessFile(ctx, p, inPath, outPath, opts)
	if err != nil {
		return stats, fmt.Errorf("failed to process %s: %w", inPath, err)
	}
	return stats, nil
}

func statsJSON(s marc.Stats) map[string]interface{} {
	return map[string]interface{}{
		"run_id":      s.RunID,
		"read":        s.Read,
		"written":     s.Written,
		"invalid":     s.Invalid,
		"dropped":     s.Dropped,
		"changed":     s.Changed,
		"duration_ms": s.Duration.Milliseconds(),
	}
}

func printStats(s marc.Stats) {
	printInfo("Records read:    %d\n", s.Read)
	printInfo("Records written: %d\n", s.Written)
	printInfo("Records changed: %d\n", s.Changed)
	if s.Invalid > 0 {
		printInfo("Invalid records: %d\n", s.Invalid)
	}
	if s.Dropped > 0 {
		printInfo("Records dropped: %d\n", s.Dropped)
	}
	printVerbose("Run ID: %s (%s)\n", s.RunID, s.Duration)
}
