package scan

import (
	"github.com/joeandaverde/sqlcol/tsql/lexer"
)

type TinyScanner interface {
	Peek() lexer.Token
	Next() lexer.Token
	Commit(landmark string)
	Committed() string
	Pos() int
	Mark() (int, func())
	Range(int, int) []lexer.Token
	Furthest() (lexer.Token, string)
	Text() string
}

// NewScanner returns a new TinyScanner to navigate the tokens from the input.
// White space and comments never reach the parser. When lexing fails the
// scanner ends with the TokenError instead of TokenEOF.
func NewScanner(input string) TinyScanner {
	var items []lexer.Token

	for _, token := range lexer.NewLexer(input).Exec() {
		if token.Kind != lexer.TokenWhiteSpace {
			items = append(items, token)
		}
	}

	return &tinyScanner{
		input:    input,
		items:    items,
		position: 0,
	}
}

type tinyScanner struct {
	input     string
	items     []lexer.Token
	position  int
	committed string

	furthest         int
	furthestLandmark string
}

func (s *tinyScanner) Text() string {
	return s.input
}

func (s *tinyScanner) Committed() string {
	return s.committed
}

func (s *tinyScanner) Range(start int, end int) []lexer.Token {
	return s.items[start:end]
}

// Mark returns the position of the scanner and a function
// to reset the scanner back to the position
func (s *tinyScanner) Mark() (int, func()) {
	position := s.position
	committed := s.committed
	return s.position, func() {
		s.position = position
		s.committed = committed
	}
}

func (s *tinyScanner) Peek() lexer.Token {
	s.reach()

	return s.at(s.position)
}

func (s *tinyScanner) Pos() int {
	return s.position
}

// Furthest is the deepest token any parser has looked at and the landmark
// committed when it was first reached. It is where a failed parse most
// likely went wrong.
func (s *tinyScanner) Furthest() (lexer.Token, string) {
	return s.at(s.furthest), s.furthestLandmark
}

func (s *tinyScanner) reach() {
	if s.position > s.furthest {
		s.furthest = s.position
		s.furthestLandmark = s.committed
	}
}

// Next returns the next token. Once the input is exhausted it keeps
// returning the final token without advancing.
func (s *tinyScanner) Next() lexer.Token {
	token := s.at(s.position)

	s.reach()

	if s.position < len(s.items)-1 {
		s.position++
	}

	return token
}

func (s *tinyScanner) Commit(landmark string) {
	s.committed = landmark
}

func (s *tinyScanner) at(position int) lexer.Token {
	if position >= len(s.items) {
		return lexer.Token{Kind: lexer.TokenEOF, Position: len(s.input)}
	}

	return s.items[position]
}
