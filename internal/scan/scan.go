// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan locates regions of a text document with ordered pattern
// matches instead of a markup tree. It provides four primitives:
//
//   - Isolate finds the text between a start anchor and the next end anchor.
//   - SplitNamed carves a document into regions introduced by headings.
//   - Row and RowGroups collect every element of one table row.
//   - Zip aligns independently extracted columns into records.
//
// Returned strings are substrings of the input and share its memory; the
// caller keeps the document alive for as long as it uses them. Nothing in
// this package mutates its input, logs, or keeps state between calls.
//
// Three outcomes are distinguished. Absence (an optional region or row is
// not there) is reported as ok == false or an empty slice, never as an
// error. A broken structure is an *Error of KindFormat, and a value outside
// its vocabulary is an *Error of KindDecode.
package scan

import "regexp"

// Span is a half-open byte range [Start, End) of a document, optionally
// labelled with the heading that introduced it.
type Span struct {
	Name  string
	Start int
	End   int
}

// Of returns the text of the span within doc.
func (s Span) Of(doc string) string {
	return doc[s.Start:s.End]
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Isolate finds the first match of start in text, then the first match of
// end at or after the start match's end, and returns the span strictly
// between them.
//
// If start does not match, or the enclosed text is empty, ok is false.
// If start matches but end never does, the region was opened and not
// closed, and Isolate returns a KindFormat error.
func Isolate(text string, start, end *regexp.Regexp) (span Span, ok bool, err error) {
	return IsolateAt(text, 0, start, end)
}

// IsolateAt is Isolate with the start search beginning at offset.
// Offsets in the returned span are relative to text, not to offset.
func IsolateAt(text string, offset int, start, end *regexp.Regexp) (span Span, ok bool, err error) {
	if offset < 0 || offset > len(text) {
		return Span{}, false, nil
	}
	sloc := start.FindStringIndex(text[offset:])
	if sloc == nil {
		return Span{}, false, nil
	}
	from := offset + sloc[1]

	eloc := end.FindStringIndex(text[from:])
	if eloc == nil {
		return Span{}, false, Formatf("", "region opened by %q is never closed by %q", start, end)
	}
	span = Span{Start: from, End: from + eloc[0]}
	if span.Len() == 0 {
		return Span{}, false, nil
	}
	return span, true, nil
}
