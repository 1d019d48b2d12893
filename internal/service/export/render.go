package export

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/ai-finance/finance-backend-go/internal/domain/export"
	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"
)

var cellType = reflect.TypeOf(export.Cell{})

// table flattens a Dataset into its csv header and cells.
func table(ds export.Dataset) ([]string, [][]export.Cell, error) {
	v := reflect.ValueOf(ds.Rows)
	if v.Kind() != reflect.Slice {
		return nil, nil, fmt.Errorf("rows of %s must be a slice, got %s", ds.Table, v.Kind())
	}
	rowType := v.Type().Elem()
	if rowType.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("rows of %s must be structs, got %s", ds.Table, rowType.Kind())
	}

	var (
		header []string
		fields []int
	)
	for i := 0; i < rowType.NumField(); i++ {
		f := rowType.Field(i)
		tag := f.Tag.Get("csv")
		if tag == "" || tag == "-" || f.Type != cellType {
			continue
		}
		header = append(header, tag)
		fields = append(fields, i)
	}

	cells := make([][]export.Cell, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		row := make([]export.Cell, len(fields))
		for j, idx := range fields {
			row[j] = v.Index(i).Field(idx).Interface().(export.Cell)
		}
		cells = append(cells, row)
	}
	return header, cells, nil
}

func renderMarkdown(ds export.Dataset) ([]byte, error) {
	header, rows, err := table(ds)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "# %s\n\n", ds.Table)
	if len(rows) == 0 {
		b.WriteString("No data found.")
		return b.Bytes(), nil
	}

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(&b, header)
	writeMarkdownRow(&b, sep)

	for _, row := range rows {
		values := make([]string, len(row))
		for i, c := range row {
			if !c.Valid {
				values[i] = "NULL"
				continue
			}
			values[i] = strings.ReplaceAll(c.Value, "|", `\|`)
		}
		writeMarkdownRow(&b, values)
	}
	return b.Bytes(), nil
}

func writeMarkdownRow(b *bytes.Buffer, values []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(values, " | "))
	b.WriteString(" |\n")
}

func renderCSV(ds export.Dataset) ([]byte, error) {
	v := reflect.ValueOf(ds.Rows)
	if v.Kind() == reflect.Slice && v.Len() == 0 {
		// gocsv cannot derive a header from an empty slice of values
		header, _, err := table(ds)
		if err != nil {
			return nil, err
		}
		return []byte(strings.Join(header, ",") + "\n"), nil
	}
	return gocsv.MarshalBytes(ds.Rows)
}

func renderXLSX(ds export.Dataset) ([]byte, error) {
	header, rows, err := table(ds)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := string(ds.Table)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return nil, err
	}

	for i, row := range rows {
		values := make([]any, len(row))
		for j, c := range row {
			if c.Valid {
				values[j] = c.Value
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
