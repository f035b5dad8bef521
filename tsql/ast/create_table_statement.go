package ast

// ColumnDefinition represents a specification for a column in a table
type ColumnDefinition struct {
	Name       string
	Type       *TypeName
	PrimaryKey bool
}

// CreateTableStatement represents an instruction to create a table
type CreateTableStatement struct {
	Table       TableRef
	IfNotExists bool
	Columns     []ColumnDefinition
}

func (*CreateTableStatement) iStatement() {}

func (*CreateTableStatement) Kind() StatementKind { return KindCreateTable }
