package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/pkg/types"
)

const testPipeline = `steps:
  - op: sort_fields
  - op: keep_first
    tag: "610"
    code: a
`

func writePipeline(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write pipeline: %v", err)
	}
	return path
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name        string
		in, out     string
		wantJSON    bool
		wantContain []string
	}{
		{
			name:        "mrc to mrk",
			in:          "in.mrc",
			out:         "out.mrk",
			wantContain: []string{"Records read:    2", "Records written: 2", "Records changed: 1"},
		},
		{
			name:        "xml to compressed mrc as JSON",
			in:          "in.xml",
			out:         "out.mrc.xz",
			wantJSON:    true,
			wantContain: []string{`"written": 2`, `"dropped": 0`, `"run_id"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.wantJSON

			in := writeSampleFile(t, tt.in)
			out := filepath.Join(t.TempDir(), tt.out)
			args := []string{writePipeline(t, testPipeline), in, out}

			output, err := captureOutput(t, func() error {
				return runRun(context.Background(), args)
			})
			if err != nil {
				t.Fatalf("runRun() error = %v", err)
			}
			if tt.wantJSON {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)

			recs, errs := marc.ReadFile(out, types.DefaultReadOptions())
			if len(errs) > 0 {
				t.Fatalf("read output: %v", errs)
			}
			if got := recs[0].DataFields("610")[0].Values('a'); len(got) != 1 {
				t.Errorf("610$a not deduplicated: %v", got)
			}
		})
	}
}

func TestRunCommand_BadPipeline(t *testing.T) {
	resetFlags()
	args := []string{writePipeline(t, "steps:\n  - op: nope\n"), writeSampleFile(t, "in.mrc"), filepath.Join(t.TempDir(), "out.mrc")}
	_, err := captureOutput(t, func() error {
		return runRun(context.Background(), args)
	})
	if err == nil {
		t.Fatal("expected error for unknown op")
	}
	assertContains(t, err.Error(), []string{"step 1 (nope)"})
}

func TestConvertCommand(t *testing.T) {
	resetFlags()
	in := writeSampleFile(t, "in.mrk")
	out := filepath.Join(t.TempDir(), "out.dat")
	outFormat = "xml"

	output, err := captureOutput(t, func() error {
		return runConvert(context.Background(), []string{in, out})
	})
	if err != nil {
		t.Fatalf("runConvert() error = %v", err)
	}
	assertContains(t, output, []string{"Converted 2 record(s)"})

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(data), []string{"<collection", `tag="001">FRBNF42<`})
}

func TestCheckCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, func() error {
		return runCheck([]string{writePipeline(t, testPipeline)})
	})
	if err != nil {
		t.Fatalf("runCheck() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"valid": true`, "sort_fields", "keep_first"})

	resetFlags()
	_, err = captureOutput(t, func() error {
		return runCheck([]string{writePipeline(t, "steps:\n  - op: substitute\n    tag: \"200\"\n    codes: a\n    pattern: '['\n")})
	})
	if err == nil {
		t.Fatal("expected error for bad pattern")
	}
}

func TestPrintStats_ReportsDropped(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, func() error {
		printStats(marc.Stats{Read: 3, Written: 1, Invalid: 1, Dropped: 2})
		return nil
	})
	if err != nil {
		t.Fatalf("printStats() error = %v", err)
	}
	assertContains(t, output, []string{"Records written: 1", "Invalid records: 1", "Records dropped: 2"})

	output, _ = captureOutput(t, func() error {
		printStats(marc.Stats{Read: 1, Written: 1})
		return nil
	})
	assertNotContains(t, output, []string{"Records dropped", "Invalid records"})
}
