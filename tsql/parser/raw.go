package parser

import (
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

var closing = map[lexer.Kind]lexer.Kind{
	lexer.TokenOpenParen:   lexer.TokenCloseParen,
	lexer.TokenOpenBracket: lexer.TokenCloseBracket,
}

// captureRaw consumes tokens up to the end of the current statement, or up
// to the first top level position accepted by stop, and returns the source text
// they span. Brackets have to balance.
func captureRaw(scanner scan.TinyScanner, stop func(scan.TinyScanner) bool) (string, error) {
	var open []lexer.Kind
	var first, last lexer.Token
	consumed := 0

	for {
		next := scanner.Peek()

		if next.Kind == lexer.TokenError {
			return "", newError(next, scanner.Committed(), "")
		}

		if next.Kind == lexer.TokenSemicolon || next.Kind == lexer.TokenEOF {
			if len(open) > 0 {
				return "", newError(next, scanner.Committed(), "unbalanced parentheses")
			}
			break
		}

		if len(open) == 0 && stop != nil && stop(scanner) {
			break
		}

		switch next.Kind {
		case lexer.TokenOpenParen, lexer.TokenOpenBracket:
			open = append(open, closing[next.Kind])
		case lexer.TokenCloseParen, lexer.TokenCloseBracket:
			if len(open) == 0 || open[len(open)-1] != next.Kind {
				return "", newError(next, scanner.Committed(), "unbalanced parentheses")
			}
			open = open[:len(open)-1]
		}

		scanner.Next()

		if consumed == 0 {
			first = next
		}
		last = next
		consumed++
	}

	if consumed == 0 {
		return "", nil
	}

	return scanner.Text()[first.Position:last.End()], nil
}
