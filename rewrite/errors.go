package rewrite

import (
	"errors"
	"fmt"

	"github.com/joeandaverde/sqlcol/tsql/parser"
)

var (
	// ErrInvalidArgument is returned before any parsing when a required
	// argument is empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParse matches every error caused by input that doesn't parse.
	// Use errors.As with *parser.Error for the position.
	ErrParse = parser.ErrSyntax

	// ErrTransform means a mapper produced no statement.
	ErrTransform = errors.New("failed to transform statement")
)

func required(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, name)
	}

	return nil
}
