package ast

// ResultColumn is one output of a SELECT projection or RETURNING list.
// A nil Expr stands for *.
type ResultColumn struct {
	Expr  Expression
	Alias string
}

// SelectStatement represents an instruction to select/filter rows from one or more tables
type SelectStatement struct {
	Columns []ResultColumn
	From    []TableRef
	Filter  Expression
}

func (*SelectStatement) iStatement() {}

func (*SelectStatement) Kind() StatementKind { return KindSelect }
