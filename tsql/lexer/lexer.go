package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

const eof = -1

type stateFn func(*Lexer) stateFn

// Lexer produces tokens from input
type Lexer struct {
	items []Token
	input string
	start int
	pos   int
	width int
}

// NewLexer initializes a lexer with input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
	}
}

// Exec runs the lexer over the whole input. The last token is
// always either TokenEOF or TokenError.
func (l *Lexer) Exec() []Token {
	for state := lexTinySQL; state != nil; {
		state = state(l)
	}

	return l.items
}

func lexWhiteSpace(l *Lexer) stateFn {
	for isWhiteSpace(l.peek()) {
		l.next()
	}

	l.emit(TokenWhiteSpace)

	return lexTinySQL
}

// comments are handed to the parser as white space
func lexLineComment(l *Lexer) stateFn {
	for r := l.peek(); r != '\n' && r != eof; r = l.peek() {
		l.next()
	}

	l.emit(TokenWhiteSpace)

	return lexTinySQL
}

func lexBlockComment(l *Lexer) stateFn {
	depth := 0

	for {
		switch r := l.next(); {
		case r == eof:
			return l.errorf("unterminated /* comment")
		case r == '/' && l.peek() == '*':
			l.next()
			depth++
		case r == '*' && l.peek() == '/':
			l.next()
			depth--
			if depth == 0 {
				l.emit(TokenWhiteSpace)
				return lexTinySQL
			}
		}
	}
}

func lexNumber(l *Lexer) stateFn {
	digits := func() {
		for isDigit(l.peek()) {
			l.next()
		}
	}

	digits()

	if l.peek() == '.' {
		l.next()
		digits()
	}

	if r := l.peek(); r == 'e' || r == 'E' {
		mark := l.pos
		l.next()

		if s := l.peek(); s == '+' || s == '-' {
			l.next()
		}

		if isDigit(l.peek()) {
			digits()
		} else {
			l.pos = mark
		}
	}

	l.emit(TokenNumber)

	return lexTinySQL
}

func lexAlphaNumeric(l *Lexer) stateFn {
	for {
		r := l.next()

		if isAlphaNumeric(r) {
			continue
		}

		l.backup()
		l.emit(Lookup(l.input[l.start:l.pos]))

		return lexTinySQL
	}
}

func lexParam(l *Lexer) stateFn {
	l.next()

	if !isDigit(l.peek()) {
		return l.errorf("unexpected character '$'")
	}

	for isDigit(l.peek()) {
		l.next()
	}

	l.emit(TokenParam)

	return lexTinySQL
}

func lexSymbol(l *Lexer) stateFn {
	switch r := l.peek(); r {
	case '>':
		l.next()

		if l.next() == '=' {
			l.emit(TokenGte)
		} else {
			l.backup()
			l.emit(TokenGt)
		}
	case '<':
		l.next()

		switch l.next() {
		case '=':
			l.emit(TokenLte)
		case '>':
			l.emit(TokenNotEq)
		default:
			l.backup()
			l.emit(TokenLt)
		}
	case '=':
		l.next()
		l.emit(TokenEquals)
	case '!':
		l.next()
		if l.peek() == '=' {
			l.next()
			l.emit(TokenNotEq)
		} else {
			l.emit(TokenOperator)
		}
	case '|':
		l.next()
		if l.peek() == '|' {
			l.next()
			l.emit(TokenConcat)
		} else {
			l.emit(TokenOperator)
		}
	case ':':
		l.next()
		if l.peek() == ':' {
			l.next()
			l.emit(TokenCast)
		} else {
			l.emit(TokenOperator)
		}
	case '*':
		l.next()
		l.emit(TokenAsterisk)
	case '+':
		l.next()
		l.emit(TokenPlus)
	case '-':
		l.next()

		if l.peek() != '>' {
			l.emit(TokenMinus)
			break
		}

		// -> and ->>
		l.next()
		if l.peek() == '>' {
			l.next()
		}
		l.emit(TokenArrow)
	case '/':
		l.next()
		l.emit(TokenDivide)
	case '%':
		l.next()
		l.emit(TokenModulo)
	case '~', '^', '&', '#', '@', '?':
		l.next()
		l.emit(TokenOperator)
	case '(':
		l.next()
		l.emit(TokenOpenParen)
	case ')':
		l.next()
		l.emit(TokenCloseParen)
	case '[':
		l.next()
		l.emit(TokenOpenBracket)
	case ']':
		l.next()
		l.emit(TokenCloseBracket)
	case ',':
		l.next()
		l.emit(TokenComma)
	case ';':
		l.next()
		l.emit(TokenSemicolon)
	case '.':
		l.next()
		l.emit(TokenDot)
	default:
		return nil
	}

	return lexTinySQL
}

// lexQuoted consumes text delimited by quote where a doubled
// quote stands for the quote character itself.
func lexQuoted(l *Lexer, quote rune, kind Kind, what string) stateFn {
	l.next()

	for {
		switch l.next() {
		case eof:
			return l.errorf("unterminated %s", what)
		case quote:
			if l.peek() == quote {
				l.next()
				continue
			}

			l.emit(kind)
			return lexTinySQL
		}
	}
}

func lexString(l *Lexer) stateFn {
	return lexQuoted(l, '\'', TokenString, "quoted string")
}

// lexEscapeString lexes E'...' where a backslash escapes the next character.
func lexEscapeString(l *Lexer) stateFn {
	l.next()
	l.next()

	for {
		switch l.next() {
		case eof:
			return l.errorf("unterminated quoted string")
		case '\\':
			if l.next() == eof {
				return l.errorf("unterminated quoted string")
			}
		case '\'':
			if l.peek() == '\'' {
				l.next()
				continue
			}

			l.emit(TokenEscapeString)
			return lexTinySQL
		}
	}
}

func lexQuotedIdentifier(l *Lexer) stateFn {
	if l.peek2() == '"' {
		return l.errorf("zero-length delimited identifier")
	}

	return lexQuoted(l, '"', TokenQuotedIdentifier, "quoted identifier")
}

func lexTinySQL(l *Lexer) stateFn {
	r := l.peek()

	switch {
	case r == eof:
		l.emit(TokenEOF)
		return nil
	case isWhiteSpace(r):
		return lexWhiteSpace
	case r == '-' && l.peek2() == '-':
		return lexLineComment
	case r == '/' && l.peek2() == '*':
		return lexBlockComment
	case r == '\'':
		return lexString
	case r == '"':
		return lexQuotedIdentifier
	case r == '$':
		return lexParam
	case isDigit(r), r == '.' && isDigit(l.peek2()):
		return lexNumber
	case (r == 'e' || r == 'E') && l.peek2() == '\'':
		return lexEscapeString
	case isIdentStart(r):
		return lexAlphaNumeric
	}

	if resume := lexSymbol(l); resume != nil {
		return resume
	}

	return l.errorf("unexpected character %q", r)
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) peek2() rune {
	if l.pos >= len(l.input) {
		return eof
	}

	_, width := utf8.DecodeRuneInString(l.input[l.pos:])
	if l.pos+width >= len(l.input) {
		return eof
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos+width:])
	return r
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}

	r, width := utf8.DecodeRuneInString(l.input[l.pos:])

	l.width = width
	l.pos += l.width

	return r
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFn {
	l.items = append(l.items, Token{
		Kind:     TokenError,
		Text:     fmt.Sprintf(format, args...),
		Position: l.start,
	})

	return nil
}

func (l *Lexer) backup() {
	l.pos -= l.width
}

func (l *Lexer) emit(kind Kind) {
	l.items = append(l.items, Token{
		Kind:     kind,
		Text:     l.input[l.start:l.pos],
		Position: l.start,
	})
	l.start = l.pos
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isAlphaNumeric(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || isDigit(r)
}

func isWhiteSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}
