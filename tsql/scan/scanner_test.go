package scan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/sqlcol/tsql/lexer"
)

func TestScanner_SkipsWhiteSpace(t *testing.T) {
	r := require.New(t)

	s := NewScanner("  a /* c */ ,\n b  ")

	r.Equal("a", s.Next().Text)
	r.Equal(lexer.TokenComma, s.Next().Kind)
	r.Equal("b", s.Next().Text)
	r.Equal(lexer.TokenEOF, s.Next().Kind)
	r.Equal(lexer.TokenEOF, s.Next().Kind)
	r.Equal(lexer.TokenEOF, s.Peek().Kind)
}

func TestScanner_Mark(t *testing.T) {
	r := require.New(t)

	s := NewScanner("a b c")
	s.Next()

	pos, reset := s.Mark()
	r.Equal(1, pos)

	s.Commit("B")
	s.Next()
	s.Next()
	r.Equal("B", s.Committed())
	r.Equal([]string{"b", "c"}, texts(s.Range(pos, s.Pos())))

	reset()
	r.Equal(1, s.Pos())
	r.Equal("", s.Committed())
	r.Equal("b", s.Peek().Text)
}

func TestScanner_Furthest(t *testing.T) {
	r := require.New(t)

	s := NewScanner("a b c d")
	_, reset := s.Mark()

	s.Next()
	s.Commit("B")
	s.Next()
	s.Peek()
	reset()

	furthest, landmark := s.Furthest()
	r.Equal("c", furthest.Text)
	r.Equal("B", landmark)
	r.Equal(0, s.Pos())
	r.Equal("", s.Committed())
}

func TestScanner_LexError(t *testing.T) {
	r := require.New(t)

	s := NewScanner("a 'b")
	s.Next()

	last := s.Next()
	r.Equal(lexer.TokenError, last.Kind)
	r.Equal(2, last.Position)
}

func texts(tokens []lexer.Token) []string {
	var result []string
	for _, t := range tokens {
		result = append(result, t.Text)
	}
	return result
}

func TestScanner_Text(t *testing.T) {
	r := require.New(t)

	input := "SELECT a -- comment\nFROM t"
	s := NewScanner(input)

	r.Equal(input, s.Text())

	from := s.Range(0, 3)[2]
	r.Equal("FROM", input[from.Position:from.End()])
}
