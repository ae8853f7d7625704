// Package pipeline loads declarative record-cleanup pipelines from YAML and
// compiles them into executable steps.
//
// A pipeline file lists steps applied in order to every record:
//
//	version: "1"
//	priority:
//	  default: "70"
//	  alternate: "71"
//	steps:
//	  - op: sort_fields
//	  - op: sort_subfields
//	    tag: "610"
//	    order: "9a*8z"
//	  - op: substitute
//	    tag: "200"
//	    codes: "a"
//	    pattern: '\s+$'
//	    replace: ""
//	  - op: normalize_priority
//
// Compile validates every step and compiles every regular expression before
// any record is touched, so a loaded Pipeline never fails at Apply time:
//
//	p, err := pipeline.Load("cleanup.yaml")
//	if err != nil {
//	    return err
//	}
//	res := p.Apply(rec)
//	fmt.Println(res.Total())
//
// Configuration errors are *types.Error values of kind ErrKindConfig naming
// the offending step.
package pipeline
