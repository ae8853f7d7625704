package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/pkg/marc"
)

var diffAll bool

func init() {
	cmd := newDiffCmd()
	cmd.Flags().BoolVar(&diffAll, "all", false, "List unchanged records too")
	rootCmd.AddCommand(cmd)
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare two record files record by record",
		Long: `The diff command hashes every record of both files and reports the
positions whose content differs. Files may be in different formats.

Example:
  marcctl diff catalog.mrc clean.mrc
  marcctl diff catalog.mrc clean.xml --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args)
		},
	}
	return cmd
}

func runDiff(args []string) error {
	opts, err := readOptions()
	if err != nil {
		return err
	}
	oldRecs, errs := marc.ReadFile(args[0], opts)
	if len(errs) > 0 {
		return fmt.Errorf("failed to read %s: %w", args[0], errs[0])
	}
	newRecs, errs := marc.ReadFile(args[1], opts)
	if len(errs) > 0 {
		return fmt.Errorf("failed to read %s: %w", args[1], errs[0])
	}

	diffs := marc.DiffRecords(oldRecs, newRecs)
	if !diffAll {
		diffs = marc.Changed(diffs)
	}

	if jsonOut {
		out := make([]map[string]interface{}, 0, len(diffs))
		for _, d := range diffs {
			out = append(out, map[string]interface{}{
				"index":  d.Index,
				"id":     d.ControlNumber,
				"status": d.Status.String(),
			})
		}
		return printJSON(out)
	}

	for _, d := range diffs {
		printInfo("%-9s %6d  %s\n", d.Status, d.Index, d.ControlNumber)
	}
	printVerbose("%d record(s) differ\n", len(marc.Changed(diffs)))
	return nil
}
