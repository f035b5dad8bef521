package ast

// TableRef names a table, optionally schema qualified and aliased
type TableRef struct {
	Schema string
	Name   string
	Alias  string
}

// ColumnRef names a target column of an INSERT. Unquoted names are
// stored folded to lower case.
type ColumnRef struct {
	Name string
}

// Row is one parenthesised tuple of a VALUES list
type Row []Expression

// RowSource is what an INSERT inserts: *Values or *Query
type RowSource interface {
	iRowSource()
}

// Values is a literal VALUES row set
type Values struct {
	Rows []Row
}

// Query is a nested statement feeding an INSERT, e.g. INSERT ... SELECT
type Query struct {
	Statement Statement
}

func (*Values) iRowSource() {}
func (*Query) iRowSource()  {}

// InsertStatement represents an instruction to insert data into a table.
// A nil Columns means the column list was omitted.
type InsertStatement struct {
	Table      TableRef
	Columns    []ColumnRef
	Source     RowSource
	OnConflict string
	Returning  []ResultColumn
}

func (*InsertStatement) iStatement() {}

func (*InsertStatement) Kind() StatementKind { return KindInsert }

// ColumnIndex returns the position of the named column or -1.
func (s *InsertStatement) ColumnIndex(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}

	return -1
}

// Clone copies the statement deep enough that its column list and
// VALUES rows can be edited without affecting s. Expressions are shared.
func (s *InsertStatement) Clone() *InsertStatement {
	clone := *s

	if s.Columns != nil {
		clone.Columns = append(make([]ColumnRef, 0, len(s.Columns)+1), s.Columns...)
	}

	if values, ok := s.Source.(*Values); ok {
		rows := make([]Row, len(values.Rows))
		for i, row := range values.Rows {
			rows[i] = append(make(Row, 0, len(row)+1), row...)
		}
		clone.Source = &Values{Rows: rows}
	}

	return &clone
}
