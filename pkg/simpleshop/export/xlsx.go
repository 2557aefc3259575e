package export

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of XLSX exports
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// Sheet is an extra worksheet of label/value rows, such as a summary.
type Sheet struct {
	Name string
	Rows [][]any
}

type column struct {
	header string
	index  int
}

// columnsOf lists the csv-tagged fields of a struct type in declaration order.
func columnsOf(t reflect.Type) ([]column, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("row type %s is not a struct", t)
	}
	var cols []column
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("csv"), ",")
		switch tag {
		case "-":
			continue
		case "":
			tag = f.Name
		}
		cols = append(cols, column{header: tag, index: i})
	}
	return cols, nil
}

// WriteXLSX writes rows to a workbook whose first sheet carries a bold header
// row from the csv tags of T. Numeric fields stay numeric.
func WriteXLSX[T any](w io.Writer, sheet string, rows []T, extra ...Sheet) error {
	cols, err := columnsOf(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return err
	}
	if sheet == "" {
		sheet = "Data"
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, c.header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, 18); err != nil {
			return err
		}
	}

	for r, row := range rows {
		v := reflect.ValueOf(row)
		for i, c := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(v.Field(c.index))); err != nil {
				return err
			}
		}
	}

	for _, s := range extra {
		if _, err := f.NewSheet(s.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", s.Name, err)
		}
		for r, values := range s.Rows {
			for i, value := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, r+1)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(s.Name, cell, value); err != nil {
					return err
				}
			}
		}
		if err := f.SetColWidth(s.Name, "A", "A", 28); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func cellValue(v reflect.Value) any {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if s, ok := v.Interface().(fmt.Stringer); ok {
		return s.String()
	}
	return v.Interface()
}
