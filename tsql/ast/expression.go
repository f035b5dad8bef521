package ast

import "fmt"

// Expression represents an TinySQL Expression
type Expression interface {
	iExpression()
}

// LiteralKind is the kind of value a BasicLiteral holds
type LiteralKind int

const (
	LiteralInteger LiteralKind = iota
	LiteralNumeric
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralDefault
	// LiteralEscapeString holds the body of E'...' as written, escapes included
	LiteralEscapeString
)

// BinaryOperation is an expression with two operands
type BinaryOperation struct {
	Left     Expression
	Right    Expression
	Operator string
}

// UnaryOperation is a prefix operator applied to an operand
type UnaryOperation struct {
	Operand  Expression
	Operator string
}

// Ident is a reference to something in the environment
type Ident struct {
	Qualifier string
	Value     string
}

// BasicLiteral represents a string, number, boolean, NULL or DEFAULT.
// String values are stored unescaped.
type BasicLiteral struct {
	Value string
	Kind  LiteralKind
}

// TypeName is the target of a cast
type TypeName struct {
	Schema      string
	Name        string
	Quoted      bool
	Modifiers   []string
	ArrayBounds int
}

// Cast converts an expression to a type, e.g. 'x'::text
type Cast struct {
	Expr Expression
	Type *TypeName
}

// FunctionCall is name(args...). Star marks count(*).
type FunctionCall struct {
	Schema string
	Name   string
	Args   []Expression
	Star   bool
}

// Param is a positional parameter such as $1
type Param struct {
	Index int
}

// IsTest is expr IS [NOT] NULL, TRUE or FALSE. ISNULL and NOTNULL
// parse to the NULL test.
type IsTest struct {
	Expr Expression
	Not  bool
	// Test is NULL, TRUE or FALSE
	Test string
}

// ArrayConstructor is ARRAY[elements...]
type ArrayConstructor struct {
	Elements []Expression
}

// When is one WHEN ... THEN ... branch of a CASE
type When struct {
	Condition Expression
	Result    Expression
}

// CaseExpression is CASE [operand] WHEN ... THEN ... [ELSE ...] END.
// Operand and Else may be nil.
type CaseExpression struct {
	Operand Expression
	Whens   []When
	Else    Expression
}

// RawExpression is caller supplied SQL text. It is printed exactly as
// given with no quoting or escaping, so it must already be valid SQL.
// The parser never produces it.
type RawExpression struct {
	Text string
}

func (*BinaryOperation) iExpression()  {}
func (*UnaryOperation) iExpression()   {}
func (*Ident) iExpression()            {}
func (*BasicLiteral) iExpression()     {}
func (*Cast) iExpression()             {}
func (*FunctionCall) iExpression()     {}
func (*Param) iExpression()            {}
func (*IsTest) iExpression()           {}
func (*ArrayConstructor) iExpression() {}
func (*CaseExpression) iExpression()   {}
func (*RawExpression) iExpression()    {}

func (o *BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", o.Left, o.Operator, o.Right)
}

func (i *Ident) String() string {
	if i.Qualifier != "" {
		return i.Qualifier + "." + i.Value
	}

	return i.Value
}

func (l *BasicLiteral) String() string {
	return l.Value
}
