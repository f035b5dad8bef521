package parser

import (
	"errors"
	"fmt"

	"github.com/joeandaverde/sqlcol/tsql/lexer"
)

// ErrSyntax is matched by every error the parser returns
var ErrSyntax = errors.New("syntax error")

// Error describes where and why parsing stopped
type Error struct {
	// Position is the byte offset of the offending token
	Position int
	// Near is the text of the offending token
	Near string
	// Landmark names the last clause the parser committed to
	Landmark string
	Message  string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("syntax error at character %d near %s", e.Position, e.Near)

	if e.Landmark != "" {
		msg += fmt.Sprintf(" (in %s)", e.Landmark)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

func (e *Error) Unwrap() error {
	return ErrSyntax
}

func newError(at lexer.Token, landmark string, message string) *Error {
	near := fmt.Sprintf("%q", at.Text)

	switch at.Kind {
	case lexer.TokenEOF:
		near = "end of input"
	case lexer.TokenError:
		// the lexer puts its message in Text
		near = "offending character"
		message = at.Text
	}

	return &Error{
		Position: at.Position,
		Near:     near,
		Landmark: landmark,
		Message:  message,
	}
}
