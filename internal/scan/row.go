// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import "regexp"

// RowPattern describes one table row: the anchors that open and close it
// and the pattern matching each element inside it.
type RowPattern struct {
	Name  string
	Start *regexp.Regexp
	End   *regexp.Regexp
	Elem  *regexp.Regexp
}

// Row isolates the row described by p within region and returns the first
// capture group of every element match, left to right.
//
// A missing row yields an empty column: that column does not apply to this
// table. A row that is present but has no elements is a KindFormat error.
func Row(region string, p RowPattern) ([]string, error) {
	groups, err := RowGroups(region, p)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, nil
	}
	fields := make([]string, len(groups))
	for i, g := range groups {
		if len(g) > 0 {
			fields[i] = g[0]
		}
	}
	return fields, nil
}

// RowGroups is like Row but returns every capture group of each element,
// for elements that carry more than one field.
func RowGroups(region string, p RowPattern) ([][]string, error) {
	span, ok, err := Isolate(region, p.Start, p.End)
	if err != nil {
		return nil, Within(p.Name, err)
	}
	if !ok {
		return nil, nil
	}
	row := span.Of(region)

	matches := p.Elem.FindAllStringSubmatch(row, -1)
	if len(matches) == 0 {
		return nil, Formatf(p.Name, "row heading found but no element matches %q", p.Elem)
	}
	groups := make([][]string, len(matches))
	for i, m := range matches {
		groups[i] = m[1:]
	}
	return groups, nil
}
