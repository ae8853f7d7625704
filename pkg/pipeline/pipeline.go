package pipeline

import (
	"github.com/joshuapare/marckit/record"
	"github.com/joshuapare/marckit/transform"
)

// Pipeline is a compiled, immutable step list. It is safe for concurrent use
// across records.
type Pipeline struct {
	file      *File
	steps     []Step
	families  transform.TagFamilies
	years     *transform.YearExtractor
	selectors []transform.YearSelector
}

// StepResult records what one step did to one record.
type StepResult struct {
	Index int // 0-based position in the pipeline
	Op    OpType
	Count int
}

// Result lists the steps that touched a record. Steps with a zero count are
// omitted.
type Result struct {
	Steps []StepResult
}

// Total sums the counts of every step.
func (r Result) Total() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Count
	}
	return n
}

// Ops returns the names of the steps that touched the record, in order.
func (r Result) Ops() []string {
	out := make([]string, 0, len(r.Steps))
	for _, s := range r.Steps {
		out = append(out, s.Op.String())
	}
	return out
}

// Apply runs every step on rec in order.
func (p *Pipeline) Apply(rec *record.Record) Result {
	var res Result
	for i, s := range p.steps {
		if n := s.Apply(rec); n > 0 {
			res.Steps = append(res.Steps, StepResult{Index: i, Op: s.Type(), Count: n})
		}
	}
	return res
}

// Len returns the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Ops returns the step types in order.
func (p *Pipeline) Ops() []OpType {
	out := make([]OpType, len(p.steps))
	for i, s := range p.steps {
		out[i] = s.Type()
	}
	return out
}

// File returns the configuration the pipeline was compiled from.
func (p *Pipeline) File() *File {
	return p.file
}

// Families returns the tag-family configuration used by normalize_priority.
func (p *Pipeline) Families() transform.TagFamilies {
	return p.families
}

// Years extracts years from rec using the configured markers and selectors.
// Explicit selectors override the configured ones.
func (p *Pipeline) Years(rec *record.Record, selectors ...transform.YearSelector) []int {
	if len(selectors) == 0 {
		selectors = p.selectors
	}
	return p.years.Extract(rec, selectors...)
}

// YearSelectors returns the configured year selectors.
func (p *Pipeline) YearSelectors() []transform.YearSelector {
	return p.selectors
}
