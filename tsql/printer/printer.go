// Package printer turns statements back into SQL text.
//
// Default knows how to render every node kind. HumanReadable wraps another
// Printer and only changes the layout of INSERT ... VALUES statements,
// forwarding everything else to the printer it wraps.
package printer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/ast"
)

// ErrUnsupportedNode is returned for a node the printer can't render
var ErrUnsupportedNode = errors.New("unsupported node")

// Printer renders AST nodes as SQL text
type Printer interface {
	Statement(stmt ast.Statement) (string, error)
	Expression(expr ast.Expression) (string, error)
	ResultColumn(column ast.ResultColumn) (string, error)
	TableRef(table ast.TableRef) string
	Ident(name string) string
}

// buffer accumulates output and keeps the first error, so formatting
// code can write unconditionally and check once at the end.
type buffer struct {
	strings.Builder
	err error
}

func (b *buffer) fail(node interface{}) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %T", ErrUnsupportedNode, node)
	}
}

func (b *buffer) result() (string, error) {
	if b.err != nil {
		return "", b.err
	}

	return b.String(), nil
}
