// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import "regexp"

// SplitNamed scans heading matches left to right and returns one region per
// heading whose name satisfies keep. heading must have one capture group
// holding the heading name.
//
// A region starts right after its heading and ends at the start of the next
// heading of any name, or at the end of text. Regions never overlap and come
// back in document order. No selected heading yields an empty slice.
func SplitNamed(text string, heading *regexp.Regexp, keep func(name string) bool) []Span {
	var (
		regions    []Span
		collecting bool
		current    Span
	)
	for _, loc := range heading.FindAllStringSubmatchIndex(text, -1) {
		if collecting {
			current.End = loc[0]
			regions = append(regions, current)
			collecting = false
		}
		name := ""
		if len(loc) >= 4 && loc[2] >= 0 {
			name = text[loc[2]:loc[3]]
		}
		if keep(name) {
			current = Span{Name: name, Start: loc[1]}
			collecting = true
		}
	}
	if collecting {
		current.End = len(text)
		regions = append(regions, current)
	}
	return regions
}

// First returns the region introduced by the first heading named exactly
// name. A missing heading is a KindFormat error: callers use First for
// sections that every valid document must carry.
func First(text string, heading *regexp.Regexp, name string) (Span, error) {
	regions := SplitNamed(text, heading, func(n string) bool { return n == name })
	if len(regions) == 0 {
		return Span{}, Formatf("", "no %q section found", name)
	}
	return regions[0], nil
}
