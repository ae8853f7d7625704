package marc

import (
	"github.com/joshuapare/marckit/record"
)

// DiffStatus represents the diff state of a record position.
type DiffStatus int

const (
	DiffUnchanged DiffStatus = iota // Same digest on both sides
	DiffAdded                       // Only in new
	DiffRemoved                     // Only in old
	DiffModified                    // Present in both with different content
)

// String returns a one-word label.
func (s DiffStatus) String() string {
	switch s {
	case DiffUnchanged:
		return "unchanged"
	case DiffAdded:
		return "added"
	case DiffRemoved:
		return "removed"
	case DiffModified:
		return "modified"
	default:
		return "unknown"
	}
}

// RecordDiff describes one record position.
type RecordDiff struct {
	Index         int // 0-based position
	Status        DiffStatus
	ControlNumber string
	OldDigest     RecordDigest
	NewDigest     RecordDigest
}

// DiffRecords compares two record sequences position by position. Records
// are matched by index, not by control number, since cleanup pipelines
// never reorder records.
func DiffRecords(oldRecs, newRecs []*record.Record) []RecordDiff {
	n := max(len(oldRecs), len(newRecs))
	out := make([]RecordDiff, 0, n)
	for i := 0; i < n; i++ {
		d := RecordDiff{Index: i}
		switch {
		case i >= len(oldRecs):
			d.Status = DiffAdded
			d.NewDigest = Digest(newRecs[i])
			d.ControlNumber = newRecs[i].ControlNumber()
		case i >= len(newRecs):
			d.Status = DiffRemoved
			d.OldDigest = Digest(oldRecs[i])
			d.ControlNumber = oldRecs[i].ControlNumber()
		default:
			d.OldDigest, d.NewDigest = Digest(oldRecs[i]), Digest(newRecs[i])
			d.ControlNumber = newRecs[i].ControlNumber()
			if d.OldDigest != d.NewDigest {
				d.Status = DiffModified
			}
		}
		out = append(out, d)
	}
	return out
}

// Changed filters diffs down to the positions that differ.
func Changed(diffs []RecordDiff) []RecordDiff {
	var out []RecordDiff
	for _, d := range diffs {
		if d.Status != DiffUnchanged {
			out = append(out, d)
		}
	}
	return out
}
