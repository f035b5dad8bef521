package lexer

import (
	"fmt"
	"strings"
)

// Kind the kind of token
type Kind int

const (
	TokenError Kind = iota

	TokenEOF
	TokenWhiteSpace

	TokenComma
	TokenSemicolon
	TokenDot
	TokenOpenParen
	TokenCloseParen
	TokenOpenBracket
	TokenCloseBracket
	TokenAsterisk
	TokenCast

	TokenIdentifier
	TokenQuotedIdentifier
	TokenParam

	TokenSelect
	TokenFrom
	TokenWhere
	TokenAs
	TokenNot

	TokenCreate
	TokenInto
	TokenTable
	TokenValues
	TokenReturning
	TokenOn
	TokenDefault
	TokenPrimary
	TokenCastKeyword

	TokenEquals
	TokenGt
	TokenLt
	TokenGte
	TokenLte
	TokenNotEq

	TokenAnd
	TokenOr

	TokenPlus
	TokenMinus
	TokenDivide
	TokenModulo
	TokenConcat
	TokenArrow
	TokenOperator

	TokenString
	TokenEscapeString
	TokenNumber
	TokenBoolean
	TokenNull
)

// reserved maps the reserved words that get a token kind of their own.
// Words outside this table are identifiers and are matched by text.
var reserved = map[string]Kind{
	"SELECT":    TokenSelect,
	"FROM":      TokenFrom,
	"WHERE":     TokenWhere,
	"AS":        TokenAs,
	"NOT":       TokenNot,
	"CREATE":    TokenCreate,
	"INTO":      TokenInto,
	"TABLE":     TokenTable,
	"VALUES":    TokenValues,
	"RETURNING": TokenReturning,
	"ON":        TokenOn,
	"DEFAULT":   TokenDefault,
	"PRIMARY":   TokenPrimary,
	"CAST":      TokenCastKeyword,
	"AND":       TokenAnd,
	"OR":        TokenOr,
	"TRUE":      TokenBoolean,
	"FALSE":     TokenBoolean,
	"NULL":      TokenNull,
}

// unquotable lists words that are reserved by PostgreSQL but don't need a
// token kind here. They still have to be quoted when used as identifiers.
var unquotable = map[string]struct{}{
	"ALL": {}, "ANALYSE": {}, "ANALYZE": {}, "ANY": {}, "ARRAY": {}, "ASC": {},
	"ASYMMETRIC": {}, "BOTH": {}, "CASE": {}, "CHECK": {}, "COLLATE": {},
	"COLUMN": {}, "CONSTRAINT": {}, "CURRENT_CATALOG": {}, "CURRENT_DATE": {},
	"CURRENT_ROLE": {}, "CURRENT_TIME": {}, "CURRENT_TIMESTAMP": {},
	"CURRENT_USER": {}, "DEFERRABLE": {}, "DESC": {}, "DISTINCT": {}, "DO": {},
	"ELSE": {}, "END": {}, "EXCEPT": {}, "FETCH": {}, "FOR": {}, "FOREIGN": {},
	"GRANT": {}, "GROUP": {}, "HAVING": {}, "IN": {}, "INITIALLY": {},
	"INTERSECT": {}, "LATERAL": {}, "LEADING": {}, "LIMIT": {}, "LOCALTIME": {},
	"LOCALTIMESTAMP": {}, "OFFSET": {}, "ONLY": {}, "ORDER": {}, "PLACING": {},
	"REFERENCES": {}, "SESSION_USER": {}, "SOME": {}, "SYMMETRIC": {},
	"SYSTEM_USER": {}, "THEN": {}, "TO": {}, "TRAILING": {}, "UNION": {},
	"UNIQUE": {}, "USER": {}, "USING": {}, "VARIADIC": {}, "WHEN": {},
	"WINDOW": {}, "WITH": {},
	// type and function name keywords
	"AUTHORIZATION": {}, "BINARY": {}, "COLLATION": {}, "CONCURRENTLY": {},
	"CROSS": {}, "CURRENT_SCHEMA": {}, "FREEZE": {}, "FULL": {}, "ILIKE": {},
	"INNER": {}, "IS": {}, "ISNULL": {}, "JOIN": {}, "LEFT": {}, "LIKE": {},
	"NATURAL": {}, "NOTNULL": {}, "OUTER": {}, "OVERLAPS": {}, "RIGHT": {},
	"SIMILAR": {}, "TABLESAMPLE": {}, "VERBOSE": {},
}

// Lookup returns the token kind of a bare word.
func Lookup(word string) Kind {
	if kind, ok := reserved[strings.ToUpper(word)]; ok {
		return kind
	}

	return TokenIdentifier
}

// IsReserved reports whether word can only be used as an identifier when quoted.
func IsReserved(word string) bool {
	upper := strings.ToUpper(word)
	if _, ok := reserved[upper]; ok {
		return true
	}

	_, ok := unquotable[upper]
	return ok
}

// Token is an output from the lexer
type Token struct {
	Kind     Kind
	Text     string
	Position int
}

// End is the byte offset just past the token.
func (t Token) End() int {
	return t.Position + len(t.Text)
}

func (t Kind) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "Error"
	case TokenWhiteSpace:
		return "WhiteSpace"
	case TokenComma:
		return "Comma"
	case TokenSemicolon:
		return "Semicolon"
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	case TokenAsterisk:
		return "Asterisk"
	case TokenCast:
		return "::"
	case TokenIdentifier:
		return "Ident"
	case TokenQuotedIdentifier:
		return "QuotedIdent"
	case TokenString:
		return "String"
	case TokenEscapeString:
		return "EscapeString"
	case TokenArrow:
		return "->"
	case TokenNumber:
		return "Number"
	case TokenBoolean:
		return "Boolean"
	case TokenEquals:
		return "="
	}

	for word, kind := range reserved {
		if kind == t {
			return word
		}
	}

	return fmt.Sprintf("Kind(%d)", t)
}

func (i Token) String() string {
	switch {
	case i.Kind == TokenEOF:
		return "EOF"
	case i.Kind == TokenError:
		return "Error"
	}
	return fmt.Sprintf("[%s]", i.Text)
}
