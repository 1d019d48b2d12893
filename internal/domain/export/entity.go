package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Table string

const (
	TableEmployees  Table = "employees"
	TableCategories Table = "categories"
	TableExpenses   Table = "expenses"
	TablePayroll    Table = "payroll"
	TableAlerts     Table = "alerts"
)

// AllTables lists the exportable tables in dump order.
func AllTables() []Table {
	return []Table{TableEmployees, TableCategories, TableExpenses, TablePayroll, TableAlerts}
}

func ParseTable(s string) (Table, error) {
	for _, t := range AllTables() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", ErrUnknownTable
}

type Format string

const (
	FormatMarkdown Format = "md"
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
)

func AllFormats() []Format {
	return []Format{FormatMarkdown, FormatCSV, FormatXLSX}
}

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatCSV, FormatXLSX:
		return Format(s), nil
	}
	return "", ErrUnknownFormat
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/markdown; charset=utf-8"
}

// Cell is one exported value. A cell that is not Valid was NULL in the database.
type Cell struct {
	Value string
	Valid bool
}

// MarshalCSV renders NULL as an empty field.
func (c Cell) MarshalCSV() (string, error) {
	return c.Value, nil
}

func Text(s string) Cell { return Cell{Value: s, Valid: true} }

func NullText(s *string) Cell {
	if s == nil {
		return Cell{}
	}
	return Text(*s)
}

func Int(i int) Cell { return Text(strconv.Itoa(i)) }

func Bool(b bool) Cell {
	if b {
		return Text("true")
	}
	return Text("false")
}

func Decimal(d decimal.Decimal) Cell { return Text(d.String()) }

func NullDecimal(d *decimal.Decimal) Cell {
	if d == nil {
		return Cell{}
	}
	return Decimal(*d)
}

func Date(t time.Time) Cell { return Text(t.Format("2006-01-02")) }

func NullDate(t *time.Time) Cell {
	if t == nil {
		return Cell{}
	}
	return Date(*t)
}

// Dataset is a table ready for rendering. Rows must be a slice of structs
// whose exported Cell fields carry a `csv` tag.
type Dataset struct {
	Table Table
	Rows  any
}

// File is a rendered export.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
