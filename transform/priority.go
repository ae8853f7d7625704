package transform

import (
	"github.com/joshuapare/marckit/record"
)

// TagFamilies configures tag-family priority normalization: two related
// two-character tag prefixes (for example personal names "70" and corporate
// names "71") and the suffixes marking the primary, secondary and tertiary
// level of each family.
type TagFamilies struct {
	// Default is the prefix that wins the primary slot unless
	// PrioritizeAlternate is set.
	Default string
	// Alternate is the other prefix.
	Alternate string
	// Suffixes are the primary, secondary and tertiary tag suffixes.
	Suffixes [3]byte
	// PrioritizeAlternate gives the primary slot preference to Alternate.
	PrioritizeAlternate bool
}

// DefaultTagFamilies returns the 70X/71X author families with suffixes 0, 1
// and 2, prioritizing 70X.
func DefaultTagFamilies() TagFamilies {
	return TagFamilies{
		Default:   "70",
		Alternate: "71",
		Suffixes:  [3]byte{'0', '1', '2'},
	}
}

// prefixes returns the prioritized prefix first.
func (t TagFamilies) prefixes() (prio, other string) {
	if t.PrioritizeAlternate {
		return t.Alternate, t.Default
	}
	return t.Default, t.Alternate
}

func (t TagFamilies) tag(prefix string, level int) string {
	return prefix + string(t.Suffixes[level])
}

// NormalizeTagPriority leaves a record with at most one field in the primary
// tags of both families and returns how many fields were retagged.
//
// When more than one field carries a primary tag, the first field with the
// prioritized primary tag keeps it; if there is none, the first primary field
// in record order keeps its tag. Every other primary field is demoted to its
// own prefix's secondary tag.
//
// When no primary field exists but secondary or tertiary fields do, the first
// field found scanning [prioritized secondary, other secondary, prioritized
// tertiary, other tertiary] is promoted to its prefix's primary tag.
func NormalizeTagPriority(rec *record.Record, fam TagFamilies) int {
	prio, other := fam.prefixes()
	prioPrimary := fam.tag(prio, 0)
	otherPrimary := fam.tag(other, 0)

	changed := 0
	primaries := rec.DataFields(prioPrimary, otherPrimary)
	if len(primaries) > 1 {
		keep := primaries[0]
		for _, f := range primaries {
			if f.Tag() == prioPrimary {
				keep = f
				break
			}
		}
		for _, f := range primaries {
			if f == keep {
				continue
			}
			prefix := other
			if f.Tag() == prioPrimary {
				prefix = prio
			}
			f.Retag(fam.tag(prefix, 1))
			changed++
		}
	}

	if len(primaries) > 0 {
		return changed
	}
	for _, cand := range []struct {
		prefix string
		level  int
	}{
		{prio, 1}, {other, 1}, {prio, 2}, {other, 2},
	} {
		found := rec.DataFields(fam.tag(cand.prefix, cand.level))
		if len(found) == 0 {
			continue
		}
		found[0].Retag(fam.tag(cand.prefix, 0))
		return changed + 1
	}
	return changed
}
