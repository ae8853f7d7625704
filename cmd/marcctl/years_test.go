package main

import (
	"testing"
)

func TestYearsCommand(t *testing.T) {
	resetFlags()
	args := []string{writeSampleFile(t, "in.mrc")}

	output, err := captureOutput(t, func() error {
		return runYears(args)
	})
	if err != nil {
		t.Fatalf("runYears() error = %v", err)
	}
	assertContains(t, output, []string{"0\tFRBNF42\t1998\tcoded=1998", "1\tFRBNF43\t"})

	resetFlags()
	jsonOut = true
	yearsFixed = ""
	output, err = captureOutput(t, func() error {
		return runYears(args)
	})
	if err != nil {
		t.Fatalf("runYears() error = %v", err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"years": [`, "1998"})
	assertNotContains(t, output, []string{"coded"})
}

func TestYearsCommand_BadSelector(t *testing.T) {
	resetFlags()
	yearsSelect = []string{"21"}
	_, err := captureOutput(t, func() error {
		return runYears([]string{writeSampleFile(t, "in.mrc")})
	})
	if err == nil {
		t.Fatal("expected error for bad selector")
	}
}

func TestDiffCommand(t *testing.T) {
	resetFlags()
	oldPath := writeSampleFile(t, "old.mrc")
	newPath := writeSampleFile(t, "new.xml")

	output, err := captureOutput(t, func() error {
		return runDiff([]string{oldPath, newPath})
	})
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}
	assertNotContains(t, output, []string{"modified"})

	diffAll = true
	output, err = captureOutput(t, func() error {
		return runDiff([]string{oldPath, newPath})
	})
	if err != nil {
		t.Fatalf("runDiff() error = %v", err)
	}
	assertContains(t, output, []string{"unchanged", "FRBNF43"})
}
