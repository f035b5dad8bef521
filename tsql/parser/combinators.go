package parser

import (
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

type parserFn func(scan.TinyScanner) (bool, interface{})

type nodify func(tokens []lexer.Token)

type nodifyMany func(tokens [][]lexer.Token)

// lazy calls a parser producing function each time it's invoked.
// this combinator is useful when a parser refers to itself
func lazy(x func() parserFn) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		return x()(scanner)
	}
}

// text parses a bare word using case-insensitive comparison.
// quoted identifiers and strings never match.
func text(r string) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		next := scanner.Peek()

		if next.Kind == lexer.TokenQuotedIdentifier || next.Kind == lexer.TokenString {
			return false, nil
		}

		if strings.EqualFold(r, next.Text) {
			scanner.Next()
			return true, r
		}

		return false, nil
	}
}

// separatedBy1 requires at least one match of [parser] followed by
// zero or more [separator parser].
// this combinator is useful for parsing comma separated lists.
func separatedBy1(separator parserFn, parser parserFn) parserFn {
	return all([]parserFn{
		parser,
		zeroOrMore(all([]parserFn{
			separator,
			parser,
		}, nil)),
	}, nil)
}

// zeroOrMore runs parser until it doesn't match anymore and always succeeds
func zeroOrMore(parser parserFn) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		var results []interface{}

		for {
			_, reset := scanner.Mark()

			if success, result := parser(scanner); success {
				results = append(results, result)
			} else {
				reset()
				break
			}
		}

		return true, results
	}
}

// allX is a less verbose way of writing all([]Parser{...}).
// see all.
func allX(parsers ...parserFn) parserFn {
	return all(parsers, nil)
}

// all requires that all parsers succeed or no input in consumed
func all(parsers []parserFn, nodify nodifyMany) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		_, reset := scanner.Mark()
		matchesAll := true
		var tokens [][]lexer.Token

		for _, parser := range parsers {
			before := scanner.Pos()

			if success, _ := parser(scanner); !success {
				matchesAll = false
				break
			}

			tokens = append(tokens, scanner.Range(before, scanner.Pos()))
		}

		if !matchesAll {
			reset()
		} else if nodify != nil {
			nodify(tokens)
		}

		return matchesAll, tokens
	}
}

// oneOf executes each parser until a success. one parser must succeed.
func oneOf(parsers []parserFn, nodify nodify) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		start, reset := scanner.Mark()

		for _, parser := range parsers {
			if success, result := parser(scanner); success {
				token := scanner.Range(start, scanner.Pos())
				if nodify != nil {
					nodify(token)
				}

				return true, result
			}

			reset()
		}

		return false, nil
	}
}

// optionalX a less verbose way to write optional.
// see optional.
func optionalX(parser parserFn) parserFn {
	return optional(parser, nil)
}

// optional always succeeds and may consume input if the parser succeeds.
func optional(parser parserFn, nodify nodify) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		start, reset := scanner.Mark()

		if success, _ := parser(scanner); success {
			token := scanner.Range(start, scanner.Pos())

			if nodify != nil {
				nodify(token)
			}

			return true, token
		}

		reset()
		return true, nil
	}
}

// requires only succeeds if the parser succeeds otherwise,
// no input is consumed and the parser fails.
func required(parser parserFn, nodify nodify) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		start, reset := scanner.Mark()

		if success, result := parser(scanner); success {
			token := scanner.Range(start, scanner.Pos())

			if nodify != nil {
				nodify(token)
			}

			return true, result
		}

		reset()
		return false, nil
	}
}

// committed records a landmark that is reported when the statement
// being parsed turns out to be malformed past this point.
func committed(committedAt string, p parserFn) parserFn {
	return func(scanner scan.TinyScanner) (bool, interface{}) {
		scanner.Commit(committedAt)
		_, reset := scanner.Mark()

		if success, results := p(scanner); success {
			return success, results
		}

		reset()
		return false, nil
	}
}

func token(expected lexer.Kind) parserFn {
	return requiredToken(expected, nil)
}

func requiredToken(expected lexer.Kind, nodify nodify) parserFn {
	return required(func(scanner scan.TinyScanner) (bool, interface{}) {
		next := scanner.Next()
		if next.Kind == expected {
			return true, nil
		}

		return false, nil
	}, nodify)
}

func keyword(t lexer.Kind) parserFn {
	return token(t)
}

// identifier matches a bare or double-quoted name
func identifier() parserFn {
	return oneOf([]parserFn{
		token(lexer.TokenIdentifier),
		token(lexer.TokenQuotedIdentifier),
	}, nil)
}

func ident(n func(name string, quoted bool)) parserFn {
	return required(identifier(), func(tokens []lexer.Token) {
		n(identText(tokens[0]), tokens[0].Kind == lexer.TokenQuotedIdentifier)
	})
}

// qualifiedName parses name or qualifier.name
func qualifiedName(n func(qualifier, name string, quoted bool)) parserFn {
	return all([]parserFn{
		identifier(),
		optionalX(allX(token(lexer.TokenDot), identifier())),
	}, func(tokens [][]lexer.Token) {
		first := tokens[0][0]
		if len(tokens[1]) == 0 {
			n("", identText(first), first.Kind == lexer.TokenQuotedIdentifier)
			return
		}

		last := tokens[1][1]
		n(identText(first), identText(last), last.Kind == lexer.TokenQuotedIdentifier)
	})
}

func parens(inner parserFn) parserFn {
	return allX(
		requiredToken(lexer.TokenOpenParen, nil),
		inner,
		requiredToken(lexer.TokenCloseParen, nil),
	)
}

func parensCommaSep(p parserFn) parserFn {
	return parens(commaSeparated(p))
}

func commaSeparated(p parserFn) parserFn {
	return separatedBy1(commaSeparator, p)
}

var commaSeparator = token(lexer.TokenComma)

// identText is the name an identifier token refers to. Bare names fold
// to lower case, quoted names are taken as written.
func identText(t lexer.Token) string {
	if t.Kind == lexer.TokenQuotedIdentifier {
		return strings.ReplaceAll(t.Text[1:len(t.Text)-1], `""`, `"`)
	}

	return strings.ToLower(t.Text)
}
