package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/pkg/marc"
	"github.com/joshuapare/marckit/pkg/types"
)

// writeSampleFile writes the sample records to a temp file named name and
// returns its path. The format follows the name.
func writeSampleFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := marc.WriteFile(path, testutil.SampleRecords(), types.DefaultWriteOptions()); err != nil {
		t.Fatalf("write sample %s: %v", name, err)
	}
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	inFormat, outFormat = "", ""
	encoding = types.EncodingLatin1
	runStrict = false
	dumpTags, dumpLeader, dumpLimit = nil, false, 0
	yearsSelect = []string{"210d", "214d", "219"}
	yearsMarkers, yearsFixed = nil, "100"
	diffAll = false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Drain concurrently so large outputs cannot block the writer
	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.String()
	}()

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	return <-done, fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
