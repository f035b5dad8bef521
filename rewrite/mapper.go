package rewrite

import (
	"github.com/joeandaverde/sqlcol/tsql/ast"
)

// Mapper edits INSERT statements. Every other statement kind is passed
// through untouched and never reaches a Mapper.
//
// Insert must not modify stmt. It returns stmt itself when there is
// nothing to change, or an edited copy.
type Mapper interface {
	Name() string
	Insert(stmt *ast.InsertStatement) *ast.InsertStatement
}

// mapStatement applies m to stmt. A nil result means the mapper failed.
func mapStatement(m Mapper, stmt ast.Statement) ast.Statement {
	insert, ok := stmt.(*ast.InsertStatement)
	if !ok {
		return stmt
	}

	if mapped := m.Insert(insert); mapped != nil {
		return mapped
	}

	return nil
}

// AddColumnMapper appends column to the column list and value to every
// VALUES row. value is printed exactly as given.
func AddColumnMapper(column, value string) Mapper {
	return &addColumn{column: column, value: value}
}

type addColumn struct {
	column string
	value  string
}

func (m *addColumn) Name() string {
	return "add_column"
}

func (m *addColumn) Insert(stmt *ast.InsertStatement) *ast.InsertStatement {
	// rows produced by a query can't be extended
	if _, ok := stmt.Source.(*ast.Values); !ok {
		return stmt
	}

	edited := stmt.Clone()

	if edited.Columns != nil {
		edited.Columns = append(edited.Columns, ast.ColumnRef{Name: m.column})
	}

	// the value goes in even when the column list was omitted
	values := edited.Source.(*ast.Values)
	for i := range values.Rows {
		values.Rows[i] = append(values.Rows[i], &ast.RawExpression{Text: m.value})
	}

	return edited
}

// RemoveColumnMapper drops column from the column list together with
// the value at the same position in every VALUES row. Rows must be as
// long as the column list, which the parser guarantees.
func RemoveColumnMapper(column string) Mapper {
	return &removeColumn{column: column}
}

type removeColumn struct {
	column string
}

func (m *removeColumn) Name() string {
	return "remove_column"
}

func (m *removeColumn) Insert(stmt *ast.InsertStatement) *ast.InsertStatement {
	index := stmt.ColumnIndex(m.column)
	if index < 0 {
		return stmt
	}

	edited := stmt.Clone()
	edited.Columns = append(edited.Columns[:index], edited.Columns[index+1:]...)

	// a query source only loses the column name, its projection is left as is
	if values, ok := edited.Source.(*ast.Values); ok {
		for i, row := range values.Rows {
			values.Rows[i] = append(row[:index], row[index+1:]...)
		}
	}

	return edited
}
