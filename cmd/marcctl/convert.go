package main

import (
	"context"

	"github.com/spf13/cobra"
)

func init() {
	cmd := newConvertCmd()
	addFormatFlags(cmd, true, true)
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a record file in another format",
		Long: `The convert command copies every record of <in> to <out> unchanged,
picking both formats from the file names unless overridden.

Example:
  marcctl convert catalog.mrc catalog.mrk
  marcctl convert catalog.mrk catalog.xml.xz
  marcctl convert export.dat out.mrc --in-format iso2709 --encoding Windows-1252`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), args)
		},
	}
	return cmd
}

func runConvert(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	stats, err := process(ctx, nil, args[0], args[1])
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(statsJSON(stats))
	}
	printInfo("Converted %d record(s) to %s\n", stats.Written, args[1])
	if stats.Invalid > 0 {
		printInfo("Skipped %d invalid record(s)\n", stats.Invalid)
	}
	return nil
}
