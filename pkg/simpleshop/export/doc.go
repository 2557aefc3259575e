// Package export renders rows of tagged structs as CSV or XLSX files and
// names the stored files.
//
// Row types declare their columns with csv struct tags. Both writers use the
// same tags, so a row type defines one layout for every format:
//
//	type CustomerRow struct {
//		Name   string  `csv:"name"`
//		Status string  `csv:"status"`
//		Total  float64 `csv:"total"`
//	}
package export
