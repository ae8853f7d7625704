package mrktext

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/marckit/internal/testutil"
	"github.com/joshuapare/marckit/pkg/types"
	"github.com/joshuapare/marckit/record"
)

const sample = `=LDR  00000nam\a2200000\\\4500
=001  FRBNF42
=008  850101s1985\\\\fr
=245  10$aPrice: US{dollar}5$bsubtitle
=700  \1$aHugo$bVictor

=001  FRBNF43
=200  1\$aSecond
`

func TestParse_Records(t *testing.T) {
	recs, errs := Parse([]byte(sample), types.DefaultReadOptions())
	require.Empty(t, errs)
	require.Len(t, recs, 2)

	first := recs[0]
	assert.Equal(t, "00000nam a2200000   4500", first.Leader)
	assert.Equal(t, []string{"001", "008", "245", "700"}, testutil.Tags(first))
	assert.Equal(t, "850101s1985    fr", first.ControlFields("008")[0].Data)

	f245 := first.DataFields("245")[0]
	assert.Equal(t, [2]byte{'1', '0'}, f245.Indicators)
	assert.Equal(t, testutil.Subs("a", "Price: US$5", "b", "subtitle"), f245.Subfields())

	f700 := first.DataFields("700")[0]
	assert.Equal(t, [2]byte{' ', '1'}, f700.Indicators)

	assert.Equal(t, "", recs[1].Leader)
	assert.Equal(t, "FRBNF43", recs[1].ControlNumber())
}

func TestParse_CRLFAndExtraBlankLines(t *testing.T) {
	input := "\r\n\r\n=001  A\r\n=245  00$aT\r\n\r\n\r\n=001  B\r\n"
	recs, errs := Parse([]byte(input), types.DefaultReadOptions())
	require.Empty(t, errs)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"T"}, recs[0].DataFields("245")[0].Values('a'))
	assert.Equal(t, "B", recs[1].ControlNumber())
}

func TestParse_BadRecordSkipped(t *testing.T) {
	input := "=001  A\n\n=001  B\nnot a field line\n=245  00$aT\n\n=001  C\n"
	recs, errs := Parse([]byte(input), types.DefaultReadOptions())
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], types.ErrFormat)
	assert.Contains(t, errs[0].Error(), "record 2, line 4")

	require.Len(t, recs, 2)
	assert.Equal(t, "A", recs[0].ControlNumber())
	assert.Equal(t, "C", recs[1].ControlNumber())
}

func TestParse_StrictStopsAtFirstError(t *testing.T) {
	opts := types.DefaultReadOptions()
	opts.Tolerant = false
	recs, errs := Parse([]byte("=245  1\n\n=001  B\n"), opts)
	assert.Empty(t, recs)
	require.Len(t, errs, 1)
}

func TestParse_Latin1Fallback(t *testing.T) {
	input := []byte("=200  1\\$aLes mis\xe9rables\n")
	recs, errs := Parse(input, types.DefaultReadOptions())
	require.Empty(t, errs)
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"Les misérables"}, recs[0].DataFields("200")[0].Values('a'))
}

func TestParse_BOM(t *testing.T) {
	recs, errs := Parse([]byte(UTF8BOM+"=001  X\n"), types.DefaultReadOptions())
	require.Empty(t, errs)
	require.Len(t, recs, 1)
	assert.Equal(t, "X", recs[0].ControlNumber())
}

func TestMarshal(t *testing.T) {
	rec := record.New(
		record.NewControlField("001", "ID 1"),
		testutil.Data("245", "1 ", "a", "Cost $5", "c", "x"),
	)
	rec.Leader = testutil.SampleLeader

	want := strings.Join([]string{
		`=LDR  00000nam\a2200000\\\4500`,
		`=001  ID\1`,
		`=245  1\$aCost {dollar}5$cx`,
		"",
	}, "\n")
	assert.Equal(t, want, Marshal(rec))
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	for _, rec := range testutil.SampleRecords() {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
	assert.Contains(t, buf.String(), CRLF+CRLF)

	recs, errs := Parse(buf.Bytes(), types.DefaultReadOptions())
	require.Empty(t, errs)
	require.Len(t, recs, 2)

	src := testutil.SampleRecord()
	assert.Equal(t, src.Leader, recs[0].Leader)
	assert.Equal(t, testutil.Tags(src), testutil.Tags(recs[0]))
	for i, f := range src.DataFields("200", "210", "610", "700") {
		got := recs[0].DataFields("200", "210", "610", "700")[i]
		assert.Equal(t, f.Indicators, got.Indicators)
		assert.Equal(t, f.Subfields(), got.Subfields())
	}
}

func TestNewReader_UnknownEncoding(t *testing.T) {
	opts := types.DefaultReadOptions()
	opts.Encoding = "EBCDIC"
	_, err := NewReader(strings.NewReader(""), opts)
	assert.ErrorIs(t, err, types.ErrUnsupported)
}
