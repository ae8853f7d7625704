package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/record/printer"
)

var (
	dumpTags   []string
	dumpLeader bool
	dumpLimit  int
)

func init() {
	cmd := newDumpCmd()
	addFormatFlags(cmd, true, false)
	cmd.Flags().StringSliceVar(&dumpTags, "tag", nil, "Show only these tags (repeatable)")
	cmd.Flags().BoolVar(&dumpLeader, "leader", false, "Show the leader")
	cmd.Flags().IntVar(&dumpLimit, "limit", 0, "Maximum records (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <in>",
		Short: "Human-readable dump of records",
		Long: `The dump command prints every record, one field per line, as
TAG IND1IND2$avalue$bvalue with blank indicators shown as '\'.

Example:
  marcctl dump catalog.mrc
  marcctl dump catalog.mrc --tag 200 --tag 700 --limit 10
  marcctl dump catalog.xml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	opts, err := readOptions()
	if err != nil {
		return err
	}

	printVerbose("Opening: %s\n", args[0])
	in, err := marc.Open(args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer in.Close()

	popts := printer.DefaultOptions()
	popts.Tags = dumpTags
	popts.ShowLeader = dumpLeader
	if jsonOut {
		popts.Format = printer.FormatJSON
	}
	p := printer.New(os.Stdout, popts)

	for n := 0; dumpLimit == 0 || n < dumpLimit; {
		rec, err := in.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if !marc.IsRecordError(err) {
				return err
			}
			printError("%v\n", err)
			continue
		}
		if quiet {
			n++
			continue
		}
		if err := p.PrintRecord(rec); err != nil {
			return err
		}
		n++
	}
	return nil
}
