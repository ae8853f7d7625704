package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/transform"
)

var (
	yearsSelect  []string
	yearsMarkers []string
	yearsFixed   string
)

func init() {
	cmd := newYearsCmd()
	addFormatFlags(cmd, true, false)
	cmd.Flags().StringArrayVar(&yearsSelect, "select", []string{"210d", "214d", "219"},
		"Field selector: TAG for whole field, TAG+CODE for one subfield (repeatable)")
	cmd.Flags().StringArrayVar(&yearsMarkers, "marker", nil, "Date marker to strip (repeatable; replaces defaults)")
	cmd.Flags().StringVar(&yearsFixed, "fixed", "100", "Tag holding coded dates (empty to skip)")
	rootCmd.AddCommand(cmd)
}

func newYearsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "years <in>",
		Short: "Extract publication years from records",
		Long: `The years command prints, for every record, the years found in the
selected fields after stripping date markers such as "cop." or "impr.", and
the publication year from the coded date field.

Example:
  marcctl years catalog.mrc
  marcctl years catalog.mrc --select 210d --select 219 --json
  marcctl years catalog.mrc --marker "printed" --fixed ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runYears(args)
		},
	}
	return cmd
}

type yearsRow struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Years []int  `json:"years"`
	Coded *int   `json:"coded,omitempty"`
}

func runYears(args []string) error {
	selectors := make([]transform.YearSelector, 0, len(yearsSelect))
	for _, s := range yearsSelect {
		sel, ok := transform.ParseYearSelector(s)
		if !ok {
			return fmt.Errorf("invalid selector %q (want TAG or TAG+CODE)", s)
		}
		selectors = append(selectors, sel)
	}
	ex := transform.NewYearExtractor(yearsMarkers)

	opts, err := readOptions()
	if err != nil {
		return err
	}
	in, err := marc.Open(args[0], opts)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer in.Close()

	var rows []yearsRow
	for index := 0; ; index++ {
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
		row := yearsRow{Index: index, ID: rec.ControlNumber(), Years: ex.Extract(rec, selectors...)}
		if row.Years == nil {
			row.Years = []int{}
		}
		if yearsFixed != "" {
			if y, ok := transform.FixedYear(rec, yearsFixed, transform.PublicationYear); ok {
				row.Coded = &y
			}
		}
		rows = append(rows, row)
	}

	if jsonOut {
		return printJSON(rows)
	}
	for _, r := range rows {
		parts := make([]string, 0, len(r.Years))
		for _, y := range r.Years {
			parts = append(parts, fmt.Sprint(y))
		}
		line := fmt.Sprintf("%d\t%s\t%s", r.Index, r.ID, strings.Join(parts, " "))
		if r.Coded != nil {
			line += fmt.Sprintf("\tcoded=%d", *r.Coded)
		}
		printInfo("%s\n", line)
	}
	return nil
}
