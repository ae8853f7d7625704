package mrktext

const (
	// ============================================================================
	// Line Structure
	// ============================================================================

	// LinePrefix starts every field line (e.g. "=245  10$aTitle").
	LinePrefix = "="

	// LeaderTag is the pseudo-tag carrying the leader.
	LeaderTag = "LDR"

	// TagSeparator sits between the tag and the field content.
	TagSeparator = "  "

	// tagEnd is the offset just past the tag on a field line.
	tagEnd = len(LinePrefix) + 3

	// ============================================================================
	// Field Content
	// ============================================================================

	// BlankMark stands for a blank indicator or a blank position in the
	// leader and control fields.
	BlankMark = '\\'

	// SubfieldMarker introduces each subfield: a marker, a code byte, then
	// the value.
	SubfieldMarker = '$'

	// DollarEscape is how a literal SubfieldMarker is written inside values.
	DollarEscape = "{dollar}"

	// ============================================================================
	// Line Endings and Encoding
	// ============================================================================

	// CRLF is the line ending written by Windows cataloging tools.
	CRLF = "\r\n"

	// CR is the carriage return character.
	CR = "\r"

	// LF is the line feed character.
	LF = "\n"

	// UTF8BOM is skipped at the start of input.
	UTF8BOM = "\xEF\xBB\xBF"
)
