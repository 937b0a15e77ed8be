// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import "fmt"

// Column is one extracted field sequence bound to a record of type R.
// Set decodes raw into the record; a nil Set leaves the record untouched.
type Column[R any] struct {
	Name string
	Raw  []string
	Set  func(rec *R, raw string) error
}

// Zip aligns columns by position into records. Element i of every column
// describes record i.
//
// Empty columns are absent: they leave their field at the zero value for
// every record and do not constrain the length. Among the remaining columns
// the shortest one wins and surplus entries of longer columns are dropped.
// With no non-empty column Zip returns nil.
//
// Set errors abort the zip and are reported with the column name and index.
func Zip[R any](columns ...Column[R]) ([]R, error) {
	n := -1
	for _, c := range columns {
		if len(c.Raw) == 0 {
			continue
		}
		if n < 0 || len(c.Raw) < n {
			n = len(c.Raw)
		}
	}
	if n <= 0 {
		return nil, nil
	}

	records := make([]R, n)
	for _, c := range columns {
		if len(c.Raw) == 0 || c.Set == nil {
			continue
		}
		for i := 0; i < n; i++ {
			if err := c.Set(&records[i], c.Raw[i]); err != nil {
				return nil, Within(fmt.Sprintf("%s[%d]", c.Name, i), err)
			}
		}
	}
	return records, nil
}
