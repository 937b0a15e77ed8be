// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"

	"github.com/pdiddy/wangyun/internal/scan"
)

// Patterns is the compiled anchor registry for Wiktionary's Parsoid HTML.
// It is built once by NewPatterns and never modified afterwards, so a single
// value can be shared by any number of extractions.
type Patterns struct {
	// Language (h2) and sub-section (h3) headings; group 1 is the name.
	LanguageHeading *regexp.Regexp
	SectionHeading  *regexp.Regexp

	MiddleStart *regexp.Regexp
	TableEnd    *regexp.Regexp

	OldStart map[oldKey]*regexp.Regexp

	Reading    scan.RowPattern
	Initial    scan.RowPattern
	Final      scan.RowPattern
	Tone       scan.RowPattern
	Openness   scan.RowPattern
	Division   scan.RowPattern
	Fanqie     scan.RowPattern
	Baxter     scan.RowPattern
	Mandarin   scan.RowPattern
	Cantonese  scan.RowPattern
	OldChinese scan.RowPattern

	// ModernData captures the zh-pron template JSON from a data-mw attribute.
	ModernData *regexp.Regexp
}

type oldKey int

const (
	oldBaxterSagart oldKey = iota
	oldZhengzhang
)

// NewPatterns compiles the registry. It panics only on a programming error
// in the pattern literals below.
func NewPatterns() *Patterns {
	rowEnd := regexp.MustCompile(`</tr>`)
	row := func(name, label, elem string) scan.RowPattern {
		return scan.RowPattern{
			Name:  name,
			Start: regexp.MustCompile(`<th[^>]*><small>` + label + `</small>[^\n]*</th>\n`),
			End:   rowEnd,
			Elem:  regexp.MustCompile(elem),
		}
	}

	const (
		simpleCell = `<td[^>]*>([^<]*)</td>`
		hanziCell  = `<td[^>]*><span class="Hani"[^>]*>([^<]*)</span>[^<]*</td>`
		ipaCell    = `<td[^>]*><span class="IPAchar"[^>]*>([^<]*)</span></td>`
	)

	return &Patterns{
		LanguageHeading: regexp.MustCompile(`<h2 id="[^"]*">([^<]*)</h2>`),
		SectionHeading:  regexp.MustCompile(`<h3 id="[^"]*">([^<]*)</h3>`),

		MiddleStart: regexp.MustCompile(`title="w:Middle Chinese" class="extiw">Middle Chinese`),
		TableEnd:    regexp.MustCompile(`</table>`),
		OldStart: map[oldKey]*regexp.Regexp{
			oldBaxterSagart: regexp.MustCompile(`title="w:Baxter–Sagart" class="extiw">Baxter–Sagart`),
			oldZhengzhang:   regexp.MustCompile(`title="w:Zhengzhang Shangfang" class="extiw">Zhengzhang`),
		},

		Reading:  row("reading", `Reading #`, simpleCell),
		Initial:  row("initial", `Initial`, hanziCell),
		Final:    row("final", `Final`, hanziCell),
		Tone:     row("tone", `Tone`, `<td[^>]*>([A-Za-z]+)[^<]*</td>`),
		Openness: row("openness", `Openness`, simpleCell),
		Division: row("division", `Division`, simpleCell),
		Fanqie: row("fanqie", `Fanqie`,
			`<td[^>]*><a [^>]*>([^<]*)</a><a [^>]*>([^<]*)</a>切</td>`),
		Baxter:     row("baxter", `Baxter`, ipaCell),
		Mandarin:   row("expected mandarin", `Expected<br>Mandarin<br>Reflex`, `<td[^>]*>(?:<span[^>]*>)?([^<]*)(?:</span>)?</td>`),
		Cantonese:  row("expected cantonese", `Expected<br>Cantonese<br>Reflex`, `<td[^>]*>((?:[^<]|<sup>|</sup>)*)</td>`),
		OldChinese: row("old chinese", `Old<br>Chinese`, ipaCell),

		ModernData: regexp.MustCompile(`data-mw='(\{"parts":\[\{"template":\{"target":\{"wt":"zh-pron"[^']*)'`),
	}
}
