package parser

import (
	"strings"

	"github.com/joeandaverde/sqlcol/tsql/ast"
	"github.com/joeandaverde/sqlcol/tsql/lexer"
	"github.com/joeandaverde/sqlcol/tsql/scan"
)

var topLevelStatements = []struct {
	Name string
	// Strict statements must parse in full once they start with Leader,
	// others fall back to a raw statement.
	Strict bool
	Leader func(lexer.Token) bool
	Parse  func(scanner scan.TinyScanner) (ast.Statement, bool, error)
}{
	{
		Name:   "INSERT",
		Strict: true,
		Leader: word("INSERT"),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseInsert(scanner)
			return s, s != nil, err
		},
	},
	{
		Name:   "CREATE",
		Leader: kind(lexer.TokenCreate),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseCreateTable(scanner)
			return s, s != nil, err
		},
	},
	{
		Name:   "SELECT",
		Leader: kind(lexer.TokenSelect),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseSelect(scanner)
			return s, s != nil, err
		},
	},
	{
		Name:   "BEGIN",
		Leader: word("BEGIN"),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseBegin(scanner)
			return s, s != nil, err
		},
	},
	{
		Name:   "COMMIT",
		Leader: word("COMMIT"),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseCommit(scanner)
			return s, s != nil, err
		},
	},
	{
		Name:   "ROLLBACK",
		Leader: word("ROLLBACK"),
		Parse: func(scanner scan.TinyScanner) (ast.Statement, bool, error) {
			s, err := parseRollback(scanner)
			return s, s != nil, err
		},
	},
}

// ParseStatements parses a string of sql made of statements separated by
// semicolons. Empty statements are skipped.
func ParseStatements(sql string) ([]ast.Statement, error) {
	scanner := scan.NewScanner(sql)
	var statements []ast.Statement

	for {
		switch next := scanner.Peek(); next.Kind {
		case lexer.TokenSemicolon:
			scanner.Next()
			continue
		case lexer.TokenEOF:
			return statements, nil
		case lexer.TokenError:
			return nil, newError(next, "", "")
		}

		stmt, err := parseStatement(scanner)
		if err != nil {
			return nil, err
		}

		statements = append(statements, stmt)
	}
}

// ParseStatement parses a string of sql holding exactly one statement.
func ParseStatement(sql string) (ast.Statement, error) {
	statements, err := ParseStatements(sql)
	if err != nil {
		return nil, err
	}

	if len(statements) != 1 {
		return nil, &Error{
			Position: 0,
			Near:     "start of input",
			Message:  "expected exactly one statement",
		}
	}

	return statements[0], nil
}

func parseStatement(scanner scan.TinyScanner) (ast.Statement, error) {
	_, reset := scanner.Mark()
	leader := scanner.Peek()

	for _, p := range topLevelStatements {
		if !p.Leader(leader) {
			continue
		}

		stmt, ok, err := p.Parse(scanner)
		if err != nil {
			return nil, err
		}

		if ok && atStatementEnd(scanner) {
			return stmt, nil
		}

		if p.Strict {
			at, landmark := scanner.Furthest()
			if ok {
				at, landmark = scanner.Peek(), scanner.Committed()
			}

			return nil, newError(at, strings.TrimSpace(p.Name+" "+landmark), "")
		}

		reset()
	}

	text, err := captureRaw(scanner, nil)
	if err != nil {
		return nil, err
	}

	return &ast.RawStatement{Text: text}, nil
}

func atStatementEnd(scanner scan.TinyScanner) bool {
	next := scanner.Peek()
	return next.Kind == lexer.TokenSemicolon || next.Kind == lexer.TokenEOF
}

func kind(k lexer.Kind) func(lexer.Token) bool {
	return func(t lexer.Token) bool {
		return t.Kind == k
	}
}

func word(w string) func(lexer.Token) bool {
	return func(t lexer.Token) bool {
		return t.Kind == lexer.TokenIdentifier && identText(t) == strings.ToLower(w)
	}
}
