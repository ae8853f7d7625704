package pipeline

import (
	"regexp"

	"github.com/joshuapare/marckit/record"
	"github.com/joshuapare/marckit/transform"
)

// OpType identifies a pipeline step.
type OpType uint8

const (
	OpSortFields OpType = iota
	OpSortSubfields
	OpSubstitute
	OpReplaceUnmatched
	OpMergeFields
	OpMergeSubfields
	OpSplitRepeated
	OpSplitMerged
	OpPruneEmptySubfields
	OpPruneEmptyFields
	OpDeleteFieldsMatching
	OpKeepFirst
	OpNormalizePriority
	OpForceIndicators
	OpAddMissingSubfield
)

var opNames = map[OpType]string{
	OpSortFields:           "sort_fields",
	OpSortSubfields:        "sort_subfields",
	OpSubstitute:           "substitute",
	OpReplaceUnmatched:     "replace_unmatched",
	OpMergeFields:          "merge_fields",
	OpMergeSubfields:       "merge_subfields",
	OpSplitRepeated:        "split_repeated",
	OpSplitMerged:          "split_merged",
	OpPruneEmptySubfields:  "prune_empty_subfields",
	OpPruneEmptyFields:     "prune_empty_fields",
	OpDeleteFieldsMatching: "delete_fields_matching",
	OpKeepFirst:            "keep_first",
	OpNormalizePriority:    "normalize_priority",
	OpForceIndicators:      "force_indicators",
	OpAddMissingSubfield:   "add_missing_subfield",
}

// String returns the name used in pipeline files.
func (t OpType) String() string {
	if s, ok := opNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseOpType maps a pipeline file name to an OpType.
func ParseOpType(s string) (OpType, bool) {
	for t, name := range opNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Step is one compiled operation. Apply returns how many fields (or
// subfields, for pruning) the step touched.
type Step interface {
	Type() OpType
	Apply(rec *record.Record) int
}

type sortFieldsStep struct{}

func (sortFieldsStep) Type() OpType { return OpSortFields }

// Apply reports 1 when the tag sequence changed.
func (sortFieldsStep) Apply(rec *record.Record) int {
	before := tagSequence(rec)
	transform.SortFieldsByTag(rec)
	if before == tagSequence(rec) {
		return 0
	}
	return 1
}

func tagSequence(rec *record.Record) string {
	var b []byte
	for _, f := range rec.Fields() {
		b = append(b, f.Tag()...)
	}
	return string(b)
}

type sortSubfieldsStep struct {
	tag   string
	order transform.Order
}

func (sortSubfieldsStep) Type() OpType { return OpSortSubfields }
func (s sortSubfieldsStep) Apply(rec *record.Record) int {
	return transform.SortSubfieldsForTag(rec, s.tag, s.order)
}

type substituteStep struct {
	tag, codes string
	re         *regexp.Regexp
	repl       string
}

func (substituteStep) Type() OpType { return OpSubstitute }
func (s substituteStep) Apply(rec *record.Record) int {
	return transform.SubstituteTag(rec, s.tag, s.codes, s.re, s.repl)
}

type replaceUnmatchedStep struct {
	tag, codes string
	re         *regexp.Regexp
	literal    string
}

func (replaceUnmatchedStep) Type() OpType { return OpReplaceUnmatched }
func (s replaceUnmatchedStep) Apply(rec *record.Record) int {
	return transform.ReplaceUnmatchedTag(rec, s.tag, s.codes, s.re, s.literal)
}

type mergeFieldsStep struct {
	tag   string
	order transform.Order
}

func (mergeFieldsStep) Type() OpType { return OpMergeFields }
func (s mergeFieldsStep) Apply(rec *record.Record) int {
	if _, ok := transform.MergeAllByTag(rec, s.tag, s.order); ok {
		return 1
	}
	return 0
}

type mergeSubfieldsStep struct {
	tag  string
	code byte
	sep  string
}

func (mergeSubfieldsStep) Type() OpType { return OpMergeSubfields }
func (s mergeSubfieldsStep) Apply(rec *record.Record) int {
	return transform.MergeSubfieldsByCode(rec, s.tag, s.code, s.sep)
}

type splitRepeatedStep struct {
	tag  string
	code byte
}

func (splitRepeatedStep) Type() OpType { return OpSplitRepeated }
func (s splitRepeatedStep) Apply(rec *record.Record) int {
	return transform.SplitByRepeatedCode(rec, s.tag, s.code)
}

type splitMergedStep struct{ tag string }

func (splitMergedStep) Type() OpType { return OpSplitMerged }
func (s splitMergedStep) Apply(rec *record.Record) int {
	return transform.SplitMerged(rec, s.tag)
}

type pruneEmptySubfieldsStep struct{}

func (pruneEmptySubfieldsStep) Type() OpType { return OpPruneEmptySubfields }
func (pruneEmptySubfieldsStep) Apply(rec *record.Record) int {
	return transform.PruneEmptySubfields(rec)
}

type pruneEmptyFieldsStep struct{}

func (pruneEmptyFieldsStep) Type() OpType { return OpPruneEmptyFields }
func (pruneEmptyFieldsStep) Apply(rec *record.Record) int {
	return transform.PruneEmptyFields(rec)
}

type deleteMatchingStep struct {
	tag           string
	code          byte
	re            *regexp.Regexp
	keepIfMissing bool
}

func (deleteMatchingStep) Type() OpType { return OpDeleteFieldsMatching }
func (s deleteMatchingStep) Apply(rec *record.Record) int {
	return transform.DeleteIfAllMatch(rec, s.tag, s.code, s.re, s.keepIfMissing)
}

type keepFirstStep struct {
	tag  string
	code byte
}

func (keepFirstStep) Type() OpType { return OpKeepFirst }
func (s keepFirstStep) Apply(rec *record.Record) int {
	return transform.KeepFirstOccurrence(rec, s.tag, s.code)
}

type normalizePriorityStep struct{ fam transform.TagFamilies }

func (normalizePriorityStep) Type() OpType { return OpNormalizePriority }
func (s normalizePriorityStep) Apply(rec *record.Record) int {
	return transform.NormalizeTagPriority(rec, s.fam)
}

type forceIndicatorsStep struct {
	tag        string
	ind1, ind2 byte
}

func (forceIndicatorsStep) Type() OpType { return OpForceIndicators }
func (s forceIndicatorsStep) Apply(rec *record.Record) int {
	return transform.ForceIndicators(rec, s.tag, s.ind1, s.ind2)
}

type addMissingStep struct {
	tag   string
	code  byte
	value string
	pos   int
}

func (addMissingStep) Type() OpType { return OpAddMissingSubfield }
func (s addMissingStep) Apply(rec *record.Record) int {
	return transform.AddMissingSubfield(rec, s.tag, s.code, s.value, s.pos)
}
