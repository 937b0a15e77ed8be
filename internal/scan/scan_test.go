// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	h2Re   = regexp.MustCompile(`<h2 id="[^"]*">([^<]*)</h2>`)
	openRe = regexp.MustCompile(`<table>`)
	shutRe = regexp.MustCompile(`</table>`)
)

// --- Isolate ---

func TestIsolate(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantOK  bool
		wantErr bool
	}{
		{"enclosed text", "a<table>body</table>z", "body", true, false},
		{"first start wins", "<table>one</table><table>two</table>", "one", true, false},
		{"start absent", "no tables here", "", false, false},
		{"empty region is absence", "<table></table>", "", false, false},
		{"never closed", "<table>dangling", "", false, true},
		{"end before start ignored", "</table><table>x</table>", "x", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, ok, err := Isolate(tt.text, openRe, shutRe)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFormat))
				assert.False(t, errors.Is(err, ErrDecode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, span.Of(tt.text))
			}
		})
	}
}

func TestIsolateAtOffset(t *testing.T) {
	text := "<table>one</table><table>two</table>"
	span, ok, err := IsolateAt(text, 5, openRe, shutRe)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", span.Of(text))
	assert.Equal(t, 25, span.Start)

	_, ok, err = IsolateAt(text, len(text)+1, openRe, shutRe)
	require.NoError(t, err)
	assert.False(t, ok)
}

// --- SplitNamed / First ---

func TestFirstBoundaryExclusive(t *testing.T) {
	doc := `<h2 id="Translingual">Translingual</h2>tl<h2 id="Chinese">Chinese</h2>BODY<h2 id="Japanese">Japanese</h2>ja`
	span, err := First(doc, h2Re, "Chinese")
	require.NoError(t, err)
	assert.Equal(t, "BODY", span.Of(doc))
	assert.Equal(t, "Chinese", span.Name)
}

func TestFirstRunsToEndOfText(t *testing.T) {
	doc := `<h2 id="Chinese">Chinese</h2>tail text`
	span, err := First(doc, h2Re, "Chinese")
	require.NoError(t, err)
	assert.Equal(t, "tail text", span.Of(doc))
}

func TestFirstMissingIsFormatError(t *testing.T) {
	doc := `<h2 id="Japanese">Japanese</h2>ja`
	_, err := First(doc, h2Re, "Chinese")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFirstRequiresExactName(t *testing.T) {
	doc := `<h2 id="Chinese_characters">Chinese characters</h2>x`
	_, err := First(doc, h2Re, "Chinese")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestSplitNamedPrefix(t *testing.T) {
	h3 := regexp.MustCompile(`<h3 id="[^"]*">([^<]*)</h3>`)
	doc := `<h3 id="Etymology">Etymology</h3>e` +
		`<h3 id="Pronunciation_1">Pronunciation 1</h3>p1` +
		`<h3 id="Pronunciation_2">Pronunciation 2</h3>p2` +
		`<h3 id="Definitions">Definitions</h3>d` +
		`<h3 id="Pronunciation_3">Pronunciation 3</h3>p3`

	regions := SplitNamed(doc, h3, func(name string) bool {
		return len(name) >= 13 && name[:13] == "Pronunciation"
	})
	require.Len(t, regions, 3)

	var got, names []string
	for _, r := range regions {
		got = append(got, r.Of(doc))
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"p1", "p2", "p3"}, got)
	assert.Equal(t, []string{"Pronunciation 1", "Pronunciation 2", "Pronunciation 3"}, names)

	for i := 1; i < len(regions); i++ {
		assert.LessOrEqual(t, regions[i-1].End, regions[i].Start, "regions overlap")
	}
}

func TestSplitNamedNoMatchIsEmpty(t *testing.T) {
	regions := SplitNamed(`<h2 id="A">A</h2>a<h2 id="B">B</h2>b`, h2Re, func(string) bool { return false })
	assert.Empty(t, regions)

	regions = SplitNamed("no headings at all", h2Re, func(string) bool { return true })
	assert.Empty(t, regions)
}

// --- Row / RowGroups ---

func rowPattern() RowPattern {
	return RowPattern{
		Name:  "tone",
		Start: regexp.MustCompile(`<th><small>Tone</small></th>\n`),
		End:   regexp.MustCompile(`</tr>`),
		Elem:  regexp.MustCompile(`<td[^>]*>([^<]*)</td>`),
	}
}

func TestRowReturnsElementsInOrder(t *testing.T) {
	region := "<tr>\n<th><small>Tone</small></th>\n<td>Level</td>\n<td class=\"x\">Rising</td>\n<td>Checked</td>\n</tr>\n<tr><td>Departing</td></tr>"
	fields, err := Row(region, rowPattern())
	require.NoError(t, err)
	assert.Equal(t, []string{"Level", "Rising", "Checked"}, fields)
}

func TestRowAbsentIsEmptyColumn(t *testing.T) {
	fields, err := Row("<tr><th>Other</th><td>x</td></tr>", rowPattern())
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestRowWithoutElementsIsFormatError(t *testing.T) {
	region := "<tr>\n<th><small>Tone</small></th>\n<td><b>bold</b></td>\n</tr>"
	_, err := Row(region, rowPattern())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "tone", e.Where)
}

func TestRowUnclosedIsFormatError(t *testing.T) {
	_, err := Row("<th><small>Tone</small></th>\n<td>Level</td>", rowPattern())
	assert.ErrorIs(t, err, ErrFormat)
}

func TestRowGroupsMultipleCaptures(t *testing.T) {
	p := RowPattern{
		Name:  "fanqie",
		Start: regexp.MustCompile(`<th>Fanqie</th>\n`),
		End:   regexp.MustCompile(`</tr>`),
		Elem:  regexp.MustCompile(`<td><a>([^<]*)</a><a>([^<]*)</a>切</td>`),
	}
	region := "<th>Fanqie</th>\n<td><a>德</a><a>紅</a>切</td>\n<td><a>都</a><a>宗</a>切</td>\n</tr>"
	groups, err := RowGroups(region, p)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"德", "紅"}, {"都", "宗"}}, groups)
}

// --- Zip ---

type rec struct {
	id   string
	tone string
	div  int
}

func TestZipTruncatesToShortest(t *testing.T) {
	recs, err := Zip(
		Column[rec]{Name: "reading", Raw: []string{"R1", "R2", "R3"}, Set: func(r *rec, s string) error { r.id = s; return nil }},
		Column[rec]{Name: "tone", Raw: []string{"Ping", "Shang"}, Set: func(r *rec, s string) error { r.tone = s; return nil }},
	)
	require.NoError(t, err)
	assert.Equal(t, []rec{{id: "R1", tone: "Ping"}, {id: "R2", tone: "Shang"}}, recs)
}

func TestZipEmptyColumnLeavesDefault(t *testing.T) {
	recs, err := Zip(
		Column[rec]{Name: "reading", Raw: []string{"1", "2"}, Set: func(r *rec, s string) error { r.id = s; return nil }},
		Column[rec]{Name: "division", Raw: nil, Set: func(r *rec, s string) error { r.div = 9; return nil }},
	)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Zero(t, r.div)
	}
}

func TestZipNoColumns(t *testing.T) {
	recs, err := Zip[rec]()
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestZipReportsFieldAndIndex(t *testing.T) {
	_, err := Zip(
		Column[rec]{Name: "reading", Raw: []string{"1", "2"}, Set: func(r *rec, s string) error { r.id = s; return nil }},
		Column[rec]{Name: "tone", Raw: []string{"Level", "Neutral"}, Set: func(r *rec, s string) error {
			if s != "Level" {
				return Decodef("", "unknown tone %q", s)
			}
			return nil
		}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)

	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "tone[1]", e.Where)
}

// --- Error ---

func TestWithinNestsLocation(t *testing.T) {
	err := Within("middle chinese", Within("tone[2]", Decodef("", "bad")))
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "middle chinese/tone[2]", e.Where)
	assert.Equal(t, "decode error in middle chinese/tone[2]: bad", err.Error())

	plain := errors.New("plain")
	assert.Same(t, plain, Within("x", plain))
}
