package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/record"
)

func priorityRecord(tags ...string) *record.Record {
	rec := record.New(record.NewControlField("001", "1"))
	for i, tag := range tags {
		rec.Append(testutil.Data(tag, "  ", "a", string(rune('A'+i))))
	}
	return rec
}

// dataTags lists the tags of the data fields, identified by their $a value.
func dataTags(rec *record.Record) map[string]string {
	out := map[string]string{}
	for _, f := range rec.Fields() {
		if df, ok := f.(*record.DataField); ok {
			v, _ := df.First('a')
			out[v] = df.Tag()
		}
	}
	return out
}

func TestNormalizeTagPriority_Demotion(t *testing.T) {
	tests := []struct {
		name        string
		prioritize  bool
		tags        []string
		want        map[string]string
		wantChanged int
	}{
		{
			name: "70 prioritized, 700 first",
			tags: []string{"700", "710"},
			want: map[string]string{"A": "700", "B": "711"}, wantChanged: 1,
		},
		{
			name: "70 prioritized, 710 first",
			tags: []string{"710", "700"},
			want: map[string]string{"A": "711", "B": "700"}, wantChanged: 1,
		},
		{
			name: "71 prioritized, 700 first", prioritize: true,
			tags: []string{"700", "710"},
			want: map[string]string{"A": "701", "B": "710"}, wantChanged: 1,
		},
		{
			name: "71 prioritized, 710 first", prioritize: true,
			tags: []string{"710", "700"},
			want: map[string]string{"A": "710", "B": "701"}, wantChanged: 1,
		},
		{
			name: "only the non-prioritized family, first wins",
			tags: []string{"710", "710", "710"},
			want: map[string]string{"A": "710", "B": "711", "C": "711"}, wantChanged: 2,
		},
		{
			name: "several prioritized, first of them wins",
			tags: []string{"710", "700", "700"},
			want: map[string]string{"A": "711", "B": "700", "C": "701"}, wantChanged: 2,
		},
		{
			name: "single primary untouched",
			tags: []string{"700", "701"},
			want: map[string]string{"A": "700", "B": "701"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := priorityRecord(tt.tags...)
			fam := DefaultTagFamilies()
			fam.PrioritizeAlternate = tt.prioritize

			changed := NormalizeTagPriority(rec, fam)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, dataTags(rec))
			assert.Len(t, rec.DataFields("700", "710"), 1)
		})
	}
}

func TestNormalizeTagPriority_Promotion(t *testing.T) {
	tests := []struct {
		name       string
		prioritize bool
		tags       []string
		want       map[string]string
	}{
		{
			name: "prioritized secondary first",
			tags: []string{"711", "701"},
			want: map[string]string{"A": "711", "B": "700"},
		},
		{
			name: "alternate secondary when prioritized missing",
			tags: []string{"702", "711"},
			want: map[string]string{"A": "702", "B": "710"},
		},
		{
			name: "tertiary as last resort",
			tags: []string{"712", "702"},
			want: map[string]string{"A": "712", "B": "700"},
		},
		{
			name: "alternate tertiary",
			tags: []string{"712"},
			want: map[string]string{"A": "710"},
		},
		{
			name: "71 prioritized prefers 711", prioritize: true,
			tags: []string{"701", "711"},
			want: map[string]string{"A": "701", "B": "710"},
		},
		{
			name: "only first secondary is promoted",
			tags: []string{"701", "701"},
			want: map[string]string{"A": "700", "B": "701"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := priorityRecord(tt.tags...)
			fam := DefaultTagFamilies()
			fam.PrioritizeAlternate = tt.prioritize

			assert.Equal(t, 1, NormalizeTagPriority(rec, fam))
			assert.Equal(t, tt.want, dataTags(rec))
		})
	}
}

func TestNormalizeTagPriority_NoFamilies(t *testing.T) {
	rec := priorityRecord("200", "606")
	assert.Zero(t, NormalizeTagPriority(rec, DefaultTagFamilies()))
	assert.Equal(t, map[string]string{"A": "200", "B": "606"}, dataTags(rec))
}

func TestNormalizeTagPriority_CustomFamilies(t *testing.T) {
	rec := priorityRecord("600", "601")
	fam := TagFamilies{Default: "60", Alternate: "61", Suffixes: [3]byte{'0', '1', '2'}}
	rec.Append(testutil.Data("610", "  ", "a", "C"))

	assert.Equal(t, 1, NormalizeTagPriority(rec, fam))
	assert.Equal(t, map[string]string{"A": "600", "B": "601", "C": "611"}, dataTags(rec))
}
