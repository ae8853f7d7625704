/*
Package transform implements the record cleanup operations: subfield ordering,
regex editing, field merging and splitting, pruning, tag-family priority and
heuristic year extraction.

Every operation works in place on a *record.Record (or a single
*record.DataField) and is independent of every other operation, so callers
compose them into per-record pipelines:

	transform.SortFieldsByTag(rec)
	transform.SortSubfieldsForTag(rec, "610", transform.ParseOrder("9a*8z"))
	transform.PruneEmptySubfields(rec)
	transform.PruneEmptyFields(rec)

# Missing data

Absent tags, absent codes and empty matches are silent no-ops. The one
explicit signal is MergeAllByTag, which returns ok=false when no field of the
tag exists.

# Regular expressions

Editing operations take a compiled *regexp.Regexp so malformed patterns fail
when the pipeline is configured rather than per record. "Matches" in the
deletion and replace-if-unmatched operations means a match anchored at the
start of the value; substitution is global and unanchored. Replacement
templates use regexp.Expand syntax ($1, ${name}).

# Concurrency

Operations are synchronous and keep no state between calls. Different records
may be processed concurrently; a single record must not be.
*/
package transform
