package printer

import (
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/ast"
)

// HumanReadable lays INSERT ... VALUES statements out one row per line:
//
//	INSERT INTO t (a, b) VALUES
//	  ((1), ('x')),
//	  ((2), ('y'))
//
// Any other statement, and the rendering of identifiers, tables and
// expressions, is left to the wrapped printer.
type HumanReadable struct {
	base Printer
}

// NewHumanReadable wraps base
func NewHumanReadable(base Printer) *HumanReadable {
	return &HumanReadable{base: base}
}

func (h *HumanReadable) Statement(stmt ast.Statement) (string, error) {
	insert, ok := stmt.(*ast.InsertStatement)
	if !ok {
		return h.base.Statement(stmt)
	}

	values, ok := insert.Source.(*ast.Values)
	if !ok {
		return h.base.Statement(stmt)
	}

	var b strings.Builder

	b.WriteString("INSERT INTO ")
	b.WriteString(h.base.TableRef(insert.Table))

	if insert.Columns != nil {
		names := make([]string, len(insert.Columns))
		for i, c := range insert.Columns {
			names[i] = h.base.Ident(c.Name)
		}

		b.WriteString(" (")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString(")")
	}

	b.WriteString(" VALUES\n")

	for i, row := range values.Rows {
		if i > 0 {
			b.WriteString(",\n")
		}

		cells := make([]string, len(row))
		for j, e := range row {
			cell, err := h.base.Expression(e)
			if err != nil {
				return "", err
			}
			cells[j] = cell
		}

		b.WriteString("  (")
		b.WriteString(strings.Join(cells, ", "))
		b.WriteString(")")
	}

	if insert.OnConflict != "" {
		b.WriteString("\n")
		b.WriteString(insert.OnConflict)
	}

	if len(insert.Returning) > 0 {
		columns := make([]string, len(insert.Returning))
		for i, c := range insert.Returning {
			column, err := h.base.ResultColumn(c)
			if err != nil {
				return "", err
			}
			columns[i] = column
		}

		b.WriteString("\nRETURNING ")
		b.WriteString(strings.Join(columns, ", "))
	}

	return b.String(), nil
}

func (h *HumanReadable) Expression(expr ast.Expression) (string, error) {
	return h.base.Expression(expr)
}

func (h *HumanReadable) ResultColumn(column ast.ResultColumn) (string, error) {
	return h.base.ResultColumn(column)
}

func (h *HumanReadable) TableRef(table ast.TableRef) string {
	return h.base.TableRef(table)
}

func (h *HumanReadable) Ident(name string) string {
	return h.base.Ident(name)
}
