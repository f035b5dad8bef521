package ast

// StatementKind identifies the variant behind a Statement
type StatementKind int

const (
	KindRaw StatementKind = iota
	KindInsert
	KindSelect
	KindCreateTable
	KindBegin
	KindCommit
	KindRollback
)

func (k StatementKind) String() string {
	switch k {
	case KindInsert:
		return "INSERT"
	case KindSelect:
		return "SELECT"
	case KindCreateTable:
		return "CREATE TABLE"
	case KindBegin:
		return "BEGIN"
	case KindCommit:
		return "COMMIT"
	case KindRollback:
		return "ROLLBACK"
	default:
		return "RAW"
	}
}

// Statement represents a TinySQL Statement
type Statement interface {
	Kind() StatementKind
	iStatement()
}

// RawStatement is a statement the parser doesn't model. It is kept as
// the source text and printed back unchanged.
type RawStatement struct {
	Text string
}

func (*RawStatement) iStatement() {}

func (*RawStatement) Kind() StatementKind { return KindRaw }
