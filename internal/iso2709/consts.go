package iso2709

const (
	// ============================================================================
	// Structural Bytes
	// ============================================================================

	// SubfieldDelimiter precedes each subfield code.
	SubfieldDelimiter byte = 0x1F

	// FieldTerminator ends every field and the directory.
	FieldTerminator byte = 0x1E

	// RecordTerminator ends every record.
	RecordTerminator byte = 0x1D

	// ============================================================================
	// Leader Layout
	// ============================================================================

	// LeaderLen is the fixed leader length.
	LeaderLen = 24

	// RecordLengthLen is the width of the record length at leader offset 0.
	RecordLengthLen = 5

	// CodingSchemeOffset holds 'a' for UCS/Unicode records.
	CodingSchemeOffset = 9

	// UnicodeCodingScheme marks a UTF-8 record.
	UnicodeCodingScheme = 'a'

	// IndicatorCountOffset and SubfieldCodeLenOffset are fixed to '2'.
	IndicatorCountOffset  = 10
	SubfieldCodeLenOffset = 11

	// BaseAddressOffset is where the 5-digit base address of data starts.
	BaseAddressOffset = 12
	BaseAddressLen    = 5

	// EntryMapOffset holds the directory entry map "4500".
	EntryMapOffset = 20
	EntryMap       = "4500"

	// DefaultLeader is used for records built without a leader.
	DefaultLeader = "00000nam a2200000   4500"

	// ============================================================================
	// Directory Layout
	// ============================================================================

	// EntryLen is the size of a directory entry: tag(3) length(4) start(5).
	EntryLen       = 12
	EntryTagLen    = 3
	EntryLengthLen = 4
	EntryStartLen  = 5

	// MaxFieldLen is the largest field length a directory entry can express.
	MaxFieldLen = 9999

	// MaxRecordLen is the largest record length the leader can express.
	MaxRecordLen = 99999
)
