package pipeline

import (
	"regexp"

	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
	"github.com/joshuapare/marckit/transform"
)

// Compile validates f and builds an executable Pipeline.
func Compile(f *File) (*Pipeline, error) {
	applyDefaults(f)
	p := &Pipeline{
		file:     f,
		families: transform.DefaultTagFamilies(),
	}

	if f.Priority != nil {
		fam, err := compileFamilies(f.Priority)
		if err != nil {
			return nil, err
		}
		p.families = fam
	}

	var markers []string
	if f.Years != nil {
		markers = f.Years.Markers
		for _, s := range f.Years.Select {
			sel, ok := transform.ParseYearSelector(s)
			if !ok {
				return nil, types.Errorf(types.ErrKindConfig, "pipeline: years: bad selector %q", s)
			}
			p.selectors = append(p.selectors, sel)
		}
	}
	p.years = transform.NewYearExtractor(markers)

	for i, sc := range f.Steps {
		step, err := compileStep(sc, p.families)
		if err != nil {
			return nil, types.Wrap(types.ErrKindConfig, err, "pipeline: step %d (%s)", i+1, sc.Op)
		}
		p.steps = append(p.steps, step)
	}
	return p, nil
}

func compileFamilies(pc *PriorityConfig) (transform.TagFamilies, error) {
	if len(pc.Suffixes) != 3 {
		return transform.TagFamilies{}, types.Errorf(types.ErrKindConfig,
			"pipeline: priority: suffixes %q must be three characters", pc.Suffixes)
	}
	if len(pc.Default)+1 != record.TagLen || len(pc.Alternate)+1 != record.TagLen {
		return transform.TagFamilies{}, types.Errorf(types.ErrKindConfig,
			"pipeline: priority: prefixes %q and %q must be %d characters", pc.Default, pc.Alternate, record.TagLen-1)
	}
	return transform.TagFamilies{
		Default:             pc.Default,
		Alternate:           pc.Alternate,
		Suffixes:            [3]byte{pc.Suffixes[0], pc.Suffixes[1], pc.Suffixes[2]},
		PrioritizeAlternate: pc.PrioritizeAlternate,
	}, nil
}

func compileStep(sc StepConfig, fam transform.TagFamilies) (Step, error) {
	op, ok := ParseOpType(sc.Op)
	if !ok {
		return nil, types.Errorf(types.ErrKindConfig, "unknown op %q", sc.Op)
	}

	switch op {
	case OpSortFields:
		return sortFieldsStep{}, nil
	case OpPruneEmptySubfields:
		return pruneEmptySubfieldsStep{}, nil
	case OpPruneEmptyFields:
		return pruneEmptyFieldsStep{}, nil
	case OpNormalizePriority:
		return normalizePriorityStep{fam: fam}, nil
	}

	// Every other op is scoped to one data field tag.
	if err := checkDataTag(sc.Tag); err != nil {
		return nil, err
	}

	switch op {
	case OpSortSubfields:
		return sortSubfieldsStep{tag: sc.Tag, order: transform.ParseOrder(sc.Order)}, nil

	case OpSubstitute, OpReplaceUnmatched:
		re, err := compilePattern(sc.Pattern)
		if err != nil {
			return nil, err
		}
		if sc.Codes == "" {
			return nil, types.Errorf(types.ErrKindConfig, "codes is required")
		}
		if op == OpSubstitute {
			return substituteStep{tag: sc.Tag, codes: sc.Codes, re: re, repl: sc.Replace}, nil
		}
		return replaceUnmatchedStep{tag: sc.Tag, codes: sc.Codes, re: re, literal: sc.Replace}, nil

	case OpMergeFields:
		return mergeFieldsStep{tag: sc.Tag, order: transform.ParseOrder(sc.Order)}, nil

	case OpMergeSubfields:
		code, err := singleCode(sc.Code)
		if err != nil {
			return nil, err
		}
		return mergeSubfieldsStep{tag: sc.Tag, code: code, sep: sc.Separator}, nil

	case OpSplitRepeated:
		code, err := singleCode(sc.Code)
		if err != nil {
			return nil, err
		}
		return splitRepeatedStep{tag: sc.Tag, code: code}, nil

	case OpSplitMerged:
		return splitMergedStep{tag: sc.Tag}, nil

	case OpDeleteFieldsMatching:
		code, err := singleCode(sc.Code)
		if err != nil {
			return nil, err
		}
		re, err := compilePattern(sc.Pattern)
		if err != nil {
			return nil, err
		}
		return deleteMatchingStep{tag: sc.Tag, code: code, re: re, keepIfMissing: sc.keepIfMissing()}, nil

	case OpKeepFirst:
		code, err := singleCode(sc.Code)
		if err != nil {
			return nil, err
		}
		return keepFirstStep{tag: sc.Tag, code: code}, nil

	case OpForceIndicators:
		inds := sc.Indicators
		if inds == "" {
			inds = "  "
		}
		if len(inds) != 2 {
			return nil, types.Errorf(types.ErrKindConfig, "indicators %q must be two characters", sc.Indicators)
		}
		return forceIndicatorsStep{tag: sc.Tag, ind1: inds[0], ind2: inds[1]}, nil

	case OpAddMissingSubfield:
		code, err := singleCode(sc.Code)
		if err != nil {
			return nil, err
		}
		pos := transform.AppendPosition
		if sc.Position != nil {
			pos = *sc.Position
		}
		return addMissingStep{tag: sc.Tag, code: code, value: sc.Value, pos: pos}, nil
	}
	return nil, types.Errorf(types.ErrKindConfig, "op %q has no compiler", sc.Op)
}

func checkDataTag(tag string) error {
	if len(tag) != record.TagLen {
		return types.Errorf(types.ErrKindConfig, "tag %q must be %d characters", tag, record.TagLen)
	}
	if record.IsControlTag(tag) {
		return types.Errorf(types.ErrKindConfig, "tag %q is a control field", tag)
	}
	return nil
}

func singleCode(s string) (byte, error) {
	if len(s) != 1 {
		return 0, types.Errorf(types.ErrKindConfig, "code %q must be one character", s)
	}
	return s[0], nil
}

func compilePattern(s *string) (*regexp.Regexp, error) {
	if s == nil {
		return nil, types.Errorf(types.ErrKindConfig, "pattern is required")
	}
	re, err := regexp.Compile(*s)
	if err != nil {
		return nil, types.Wrap(types.ErrKindConfig, err, "bad pattern")
	}
	return re, nil
}
