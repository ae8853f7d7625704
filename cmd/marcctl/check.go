package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/pkg/pipeline"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <pipeline.yaml>",
		Short: "Validate a pipeline file",
		Long: `The check command parses a pipeline, compiles every regular expression
and checks every step's arguments without touching any record.

Example:
  marcctl check cleanup.yaml
  marcctl check cleanup.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args)
		},
	}
	return cmd
}

func runCheck(args []string) error {
	p, err := pipeline.Load(args[0])
	if err != nil {
		if jsonOut {
			_ = printJSON(map[string]interface{}{"valid": false, "error": err.Error()})
		}
		return fmt.Errorf("invalid pipeline: %w", err)
	}

	ops := make([]string, 0, p.Len())
	for _, op := range p.Ops() {
		ops = append(ops, op.String())
	}
	if jsonOut {
		return printJSON(map[string]interface{}{
			"valid":   true,
			"version": p.File().Version,
			"steps":   ops,
		})
	}

	printInfo("Pipeline OK: %d step(s)\n", len(ops))
	for i, op := range ops {
		printVerbose("  %2d. %s\n", i+1, op)
	}
	return nil
}
