package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
	"github.com/joshuapare/marckit/transform"
)

const cleanupYAML = `
years:
  select: ["210d"]
steps:
  - op: sort_fields
  - op: sort_subfields
    tag: "610"
    order: "9a*"
  - op: keep_first
    tag: "610"
    code: a
  - op: substitute
    tag: "200"
    codes: f
    pattern: '^Victor\s+'
    replace: ""
  - op: normalize_priority
`

func mustCompile(t *testing.T, src string) *Pipeline {
	t.Helper()
	f, err := Parse([]byte(src))
	require.NoError(t, err)
	p, err := Compile(f)
	require.NoError(t, err)
	return p
}

func TestPipeline_Apply(t *testing.T) {
	p := mustCompile(t, cleanupYAML)
	require.Equal(t, 5, p.Len())
	assert.Equal(t, CurrentVersion, p.File().Version)

	rec := testutil.SampleRecord()
	res := p.Apply(rec)

	assert.Equal(t, []string{"sort_fields", "sort_subfields", "keep_first", "substitute"}, res.Ops())
	assert.Equal(t, 4, res.Total())
	assert.Equal(t, []string{"001", "005", "100", "200", "210", "610", "700"}, testutil.Tags(rec))
	assert.Equal(t, testutil.Subs("9", "x", "a", "Roman"), rec.DataFields("610")[0].Subfields())
	assert.Equal(t, []string{"Hugo"}, rec.DataFields("200")[0].Values('f'))

	assert.Equal(t, []int{1998}, p.Years(rec))
	assert.Empty(t, p.Years(rec, transform.YearSelector{Tag: "999"}))
}

func TestPipeline_ApplyIsRepeatable(t *testing.T) {
	p := mustCompile(t, cleanupYAML)
	rec := testutil.SampleRecord()
	p.Apply(rec)

	res := p.Apply(rec)
	// Tag-scoped steps report the fields they visit even when nothing changes.
	assert.Equal(t, []string{"sort_subfields", "substitute"}, res.Ops())
}

func TestPipeline_PriorityConfig(t *testing.T) {
	p := mustCompile(t, `
priority:
  prioritize_alternate: true
steps:
  - op: normalize_priority
`)
	fam := p.Families()
	assert.Equal(t, "70", fam.Default)
	assert.Equal(t, "71", fam.Alternate)
	assert.True(t, fam.PrioritizeAlternate)

	rec := record.New(
		testutil.Data("700", "  ", "a", "Person"),
		testutil.Data("710", "  ", "a", "Body"),
	)
	res := p.Apply(rec)
	assert.Equal(t, 1, res.Total())
	assert.Equal(t, []string{"701", "710"}, testutil.Tags(rec))
}

func TestPipeline_AllOpsCompile(t *testing.T) {
	p := mustCompile(t, `
steps:
  - op: sort_fields
  - op: sort_subfields
    tag: "620"
    order: "*5k"
  - op: substitute
    tag: "200"
    codes: ae
    pattern: '\s+'
    replace: " "
  - op: replace_unmatched
    tag: "215"
    codes: a
    pattern: '\d+ p'
    replace: "1 vol."
  - op: merge_fields
    tag: "606"
  - op: merge_subfields
    tag: "215"
    code: a
    separator: " ; "
  - op: split_repeated
    tag: "610"
    code: a
  - op: split_merged
    tag: "606"
  - op: prune_empty_subfields
  - op: prune_empty_fields
  - op: delete_fields_matching
    tag: "035"
    code: a
    pattern: '\(OCoLC\)'
    keep_if_missing: true
  - op: keep_first
    tag: "100"
    code: a
  - op: normalize_priority
  - op: force_indicators
    tag: "606"
  - op: add_missing_subfield
    tag: "606"
    code: "2"
    value: rameau
    position: 0
`)
	want := make([]OpType, 0, len(opNames))
	for op := OpSortFields; op <= OpAddMissingSubfield; op++ {
		want = append(want, op)
	}
	assert.Equal(t, want, p.Ops())
}

func TestPipeline_AddMissingDefaultsToAppend(t *testing.T) {
	p := mustCompile(t, `
steps:
  - op: add_missing_subfield
    tag: "606"
    code: "2"
    value: rameau
  - op: force_indicators
    tag: "606"
`)
	rec := record.New(testutil.Data("606", "1a", "a", "Topic"))
	p.Apply(rec)
	f := rec.DataFields("606")[0]
	assert.Equal(t, testutil.Subs("a", "Topic", "2", "rameau"), f.Subfields())
	assert.Equal(t, [2]byte{' ', ' '}, f.Indicators)
}

func TestPipeline_DeleteMatchingKeepsFieldsWithoutCode(t *testing.T) {
	tests := []struct {
		name     string
		extra    string
		wantTags []string
	}{
		{"default keeps", "", []string{"410", "410"}},
		{"explicit keep", "    keep_if_missing: true\n", []string{"410", "410"}},
		{"explicit delete", "    keep_if_missing: false\n", []string{"410"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustCompile(t, "steps:\n  - op: delete_fields_matching\n    tag: \"410\"\n    code: t\n    pattern: '^\\s*$'\n"+tt.extra)
			rec := record.New(
				testutil.Data("410", "  ", "a", "Series"),
				testutil.Data("410", "  ", "t", "  "),
				testutil.Data("410", "  ", "t", "Kept title"),
			)
			p.Apply(rec)
			assert.Equal(t, tt.wantTags, testutil.Tags(rec))
			for _, f := range rec.DataFields("410") {
				assert.NotEqual(t, []string{"  "}, f.Values('t'))
			}
		})
	}
}

func TestPipeline_DeleteMatchingDefaultSurvivesMarshal(t *testing.T) {
	f, err := Parse([]byte("steps:\n  - op: delete_fields_matching\n    tag: \"410\"\n    code: t\n    pattern: x\n"))
	require.NoError(t, err)
	data, err := Marshal(f)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "keep_if_missing")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.True(t, back.Steps[0].keepIfMissing())
}

func TestPipeline_EmptyPatternApplies(t *testing.T) {
	p := mustCompile(t, `
steps:
  - op: substitute
    tag: "200"
    codes: a
    pattern: ""
    replace: "-"
  - op: replace_unmatched
    tag: "200"
    codes: b
    pattern: ""
    replace: never
`)
	rec := record.New(testutil.Data("200", "  ", "a", "ab", "b", "kept"))
	p.Apply(rec)
	f := rec.DataFields("200")[0]
	assert.Equal(t, []string{"-a-b-"}, f.Values('a'))
	assert.Equal(t, []string{"kept"}, f.Values('b'), "the empty pattern matches every value")
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unknown op", "steps:\n  - op: sort_fields\n  - op: bogus\n", "step 2 (bogus)"},
		{"missing tag", "steps:\n  - op: split_merged\n", `tag ""`},
		{"control tag", "steps:\n  - op: split_merged\n    tag: \"001\"\n", "control field"},
		{"bad regex", "steps:\n  - op: substitute\n    tag: \"200\"\n    codes: a\n    pattern: '('\n", "bad pattern"},
		{"missing pattern", "steps:\n  - op: substitute\n    tag: \"200\"\n    codes: a\n", "pattern is required"},
		{"missing codes", "steps:\n  - op: substitute\n    tag: \"200\"\n    pattern: x\n", "codes is required"},
		{"long code", "steps:\n  - op: keep_first\n    tag: \"200\"\n    code: ab\n", `code "ab"`},
		{"indicators", "steps:\n  - op: force_indicators\n    tag: \"200\"\n    indicators: \"1\"\n", "two characters"},
		{"suffixes", "priority:\n  suffixes: \"01\"\nsteps: []\n", "suffixes"},
		{"prefixes", "priority:\n  default: \"7\"\nsteps: []\n", "prefixes"},
		{"year selector", "years:\n  select: [\"21\"]\nsteps: []\n", "bad selector"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.src))
			require.NoError(t, err)
			_, err = Compile(f)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("steps: [\n"))
	assert.ErrorIs(t, err, types.ErrConfig)
}

func TestLoad(t *testing.T) {
	path := testutil.WriteTemp(t, "cleanup.yaml", []byte(cleanupYAML))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	pos := 0
	src := &File{
		Priority: &PriorityConfig{Default: "70", Alternate: "71"},
		Years:    &YearsConfig{Markers: []string{"cop."}, Select: []string{"210d"}},
		Steps: []StepConfig{
			{Op: "sort_fields"},
			{Op: "add_missing_subfield", Tag: "606", Code: "2", Value: "rameau", Position: &pos},
		},
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, WriteFile(src, path))

	p, err := Load(path)
	require.NoError(t, err)
	got := p.File()
	assert.Equal(t, CurrentVersion, got.Version)
	assert.Equal(t, "012", got.Priority.Suffixes)
	assert.Equal(t, src.Steps, got.Steps)
	assert.Equal(t, src.Years, got.Years)
}

func TestOpType_String(t *testing.T) {
	assert.Equal(t, "merge_fields", OpMergeFields.String())
	assert.Equal(t, "unknown", OpType(200).String())

	op, ok := ParseOpType("split_merged")
	assert.True(t, ok)
	assert.Equal(t, OpSplitMerged, op)
	_, ok = ParseOpType("nope")
	assert.False(t, ok)
}
