package printer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
)

var bareIdent = regexp.MustCompile(`^[a-z_][a-z0-9_$]*$`)

// Default renders statements on a single line. Every expression other
// than identifiers and DEFAULT is wrapped in parentheses so the output
// never depends on operator precedence.
type Default struct{}

// NewDefault returns the default printer
func NewDefault() *Default {
	return &Default{}
}

func (d *Default) Statement(stmt ast.Statement) (string, error) {
	buf := &buffer{}
	d.formatStatement(buf, stmt)
	return buf.result()
}

func (d *Default) Expression(expr ast.Expression) (string, error) {
	buf := &buffer{}
	d.formatExpr(buf, expr)
	return buf.result()
}

func (d *Default) ResultColumn(column ast.ResultColumn) (string, error) {
	buf := &buffer{}
	d.formatResultColumn(buf, column)
	return buf.result()
}

// Ident quotes name unless it reads back as the same bare identifier.
func (d *Default) Ident(name string) string {
	if bareIdent.MatchString(name) && !lexer.IsReserved(name) {
		return name
	}

	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (d *Default) TableRef(table ast.TableRef) string {
	name := d.qualified(table.Schema, table.Name)

	if table.Alias != "" {
		name += " AS " + d.Ident(table.Alias)
	}

	return name
}

func (d *Default) qualified(qualifier, name string) string {
	if qualifier == "" {
		return d.Ident(name)
	}

	return d.Ident(qualifier) + "." + d.Ident(name)
}

func (d *Default) formatStatement(buf *buffer, stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.InsertStatement:
		d.formatInsert(buf, s)
	case *ast.SelectStatement:
		d.formatSelect(buf, s)
	case *ast.CreateTableStatement:
		d.formatCreateTable(buf, s)
	case *ast.BeginStatement:
		buf.WriteString("BEGIN")
	case *ast.CommitStatement:
		buf.WriteString("COMMIT")
	case *ast.RollbackStatement:
		buf.WriteString("ROLLBACK")
	case *ast.RawStatement:
		buf.WriteString(s.Text)
	default:
		buf.fail(stmt)
	}
}

func (d *Default) formatInsert(buf *buffer, s *ast.InsertStatement) {
	buf.WriteString("INSERT INTO ")
	buf.WriteString(d.TableRef(s.Table))

	if s.Columns != nil {
		buf.WriteString(" (")
		for i, c := range s.Columns {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(d.Ident(c.Name))
		}
		buf.WriteString(")")
	}

	switch source := s.Source.(type) {
	case *ast.Values:
		buf.WriteString(" VALUES ")
		for i, row := range source.Rows {
			if i > 0 {
				buf.WriteString(", ")
			}
			d.formatRow(buf, row)
		}
	case *ast.Query:
		buf.WriteString(" ")
		d.formatStatement(buf, source.Statement)
	default:
		buf.fail(s.Source)
	}

	if s.OnConflict != "" {
		buf.WriteString(" ")
		buf.WriteString(s.OnConflict)
	}

	d.formatReturning(buf, " ", s.Returning)
}

func (d *Default) formatRow(buf *buffer, row ast.Row) {
	buf.WriteString("(")
	for i, e := range row {
		if i > 0 {
			buf.WriteString(", ")
		}
		d.formatExpr(buf, e)
	}
	buf.WriteString(")")
}

func (d *Default) formatReturning(buf *buffer, separator string, columns []ast.ResultColumn) {
	if len(columns) == 0 {
		return
	}

	buf.WriteString(separator)
	buf.WriteString("RETURNING ")
	d.formatResultColumns(buf, columns)
}

func (d *Default) formatResultColumns(buf *buffer, columns []ast.ResultColumn) {
	for i, c := range columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		d.formatResultColumn(buf, c)
	}
}

func (d *Default) formatResultColumn(buf *buffer, column ast.ResultColumn) {
	if column.Expr == nil {
		buf.WriteString("*")
		return
	}

	d.formatExpr(buf, column.Expr)

	if column.Alias != "" {
		buf.WriteString(" AS ")
		buf.WriteString(d.Ident(column.Alias))
	}
}

func (d *Default) formatSelect(buf *buffer, s *ast.SelectStatement) {
	buf.WriteString("SELECT ")
	d.formatResultColumns(buf, s.Columns)

	if len(s.From) > 0 {
		buf.WriteString(" FROM ")
		for i, table := range s.From {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(d.TableRef(table))
		}
	}

	if s.Filter != nil {
		buf.WriteString(" WHERE ")
		d.formatExpr(buf, s.Filter)
	}
}

func (d *Default) formatCreateTable(buf *buffer, s *ast.CreateTableStatement) {
	buf.WriteString("CREATE TABLE ")
	if s.IfNotExists {
		buf.WriteString("IF NOT EXISTS ")
	}
	buf.WriteString(d.TableRef(s.Table))

	buf.WriteString(" (")
	for i, c := range s.Columns {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(d.Ident(c.Name))
		buf.WriteString(" ")
		d.formatTypeName(buf, c.Type)
		if c.PrimaryKey {
			buf.WriteString(" PRIMARY KEY")
		}
	}
	buf.WriteString(")")
}

func (d *Default) formatTypeName(buf *buffer, t *ast.TypeName) {
	if t == nil {
		buf.fail(t)
		return
	}

	if t.Schema != "" {
		buf.WriteString(d.Ident(t.Schema))
		buf.WriteString(".")
	}

	if t.Quoted {
		buf.WriteString(`"` + strings.ReplaceAll(t.Name, `"`, `""`) + `"`)
	} else {
		buf.WriteString(t.Name)
	}

	if len(t.Modifiers) > 0 {
		buf.WriteString("(")
		buf.WriteString(strings.Join(t.Modifiers, ", "))
		buf.WriteString(")")
	}

	buf.WriteString(strings.Repeat("[]", t.ArrayBounds))
}

func (d *Default) formatExpr(buf *buffer, expr ast.Expression) {
	switch e := expr.(type) {
	case nil:
		buf.fail(expr)
		return
	case *ast.Ident:
		buf.WriteString(d.qualified(e.Qualifier, e.Value))
		return
	case *ast.BasicLiteral:
		// DEFAULT is not an expression and may not be parenthesised
		if e.Kind == ast.LiteralDefault {
			buf.WriteString("DEFAULT")
			return
		}
	}

	buf.WriteString("(")
	d.formatOperand(buf, expr)
	buf.WriteString(")")
}

func (d *Default) formatOperand(buf *buffer, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.BasicLiteral:
		buf.WriteString(literal(e))
	case *ast.Cast:
		d.formatExpr(buf, e.Expr)
		buf.WriteString("::")
		d.formatTypeName(buf, e.Type)
		buf.WriteString(" ")
	case *ast.FunctionCall:
		buf.WriteString(d.qualified(e.Schema, e.Name))
		buf.WriteString("(")
		if e.Star {
			buf.WriteString("*")
		}
		for i, arg := range e.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			d.formatExpr(buf, arg)
		}
		buf.WriteString(")")
	case *ast.BinaryOperation:
		d.formatExpr(buf, e.Left)
		buf.WriteString(" " + e.Operator + " ")
		d.formatExpr(buf, e.Right)
	case *ast.UnaryOperation:
		buf.WriteString(e.Operator)
		if e.Operator == "NOT" {
			buf.WriteString(" ")
		}
		d.formatExpr(buf, e.Operand)
	case *ast.IsTest:
		d.formatExpr(buf, e.Expr)
		buf.WriteString(" IS ")
		if e.Not {
			buf.WriteString("NOT ")
		}
		buf.WriteString(e.Test)
	case *ast.ArrayConstructor:
		buf.WriteString("ARRAY[")
		for i, element := range e.Elements {
			if i > 0 {
				buf.WriteString(", ")
			}
			d.formatExpr(buf, element)
		}
		buf.WriteString("]")
	case *ast.CaseExpression:
		d.formatCase(buf, e)
	case *ast.Param:
		buf.WriteString("$" + strconv.Itoa(e.Index))
	case *ast.RawExpression:
		buf.WriteString(e.Text)
		buf.WriteString(" ")
	default:
		buf.fail(expr)
	}
}

func (d *Default) formatCase(buf *buffer, e *ast.CaseExpression) {
	buf.WriteString("CASE")

	if e.Operand != nil {
		buf.WriteString(" ")
		d.formatExpr(buf, e.Operand)
	}

	if len(e.Whens) == 0 {
		buf.fail(e)
	}

	for _, when := range e.Whens {
		buf.WriteString(" WHEN ")
		d.formatExpr(buf, when.Condition)
		buf.WriteString(" THEN ")
		d.formatExpr(buf, when.Result)
	}

	if e.Else != nil {
		buf.WriteString(" ELSE ")
		d.formatExpr(buf, e.Else)
	}

	buf.WriteString(" END")
}

func literal(l *ast.BasicLiteral) string {
	switch l.Kind {
	case ast.LiteralString:
		return "'" + strings.ReplaceAll(l.Value, "'", "''") + "'"
	case ast.LiteralEscapeString:
		return "E'" + l.Value + "'"
	case ast.LiteralInteger, ast.LiteralNumeric:
		return numeric(l.Value)
	case ast.LiteralNull:
		return "NULL"
	default:
		return l.Value
	}
}

// numeric trims leading zeros and trailing fractional zeros: 007 prints as
// 7, 10.00 as 10. and 00.50 as 0.5. The text is never converted to a float
// so no precision is lost.
func numeric(v string) string {
	if strings.ContainsAny(v, "eE") {
		return v
	}

	sign := ""
	if strings.HasPrefix(v, "-") {
		sign, v = "-", v[1:]
	}

	dot := strings.IndexByte(v, '.')
	if dot < 0 {
		return sign + wholeDigits(v)
	}

	return sign + wholeDigits(v[:dot]) + "." + strings.TrimRight(v[dot+1:], "0")
}

// wholeDigits drops leading zeros, keeping a single 0 for zero
func wholeDigits(v string) string {
	if v = strings.TrimLeft(v, "0"); v == "" {
		return "0"
	}

	return v
}
