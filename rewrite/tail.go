package rewrite

import "strings"

const tailChars = "\n \t;"

// endingChars returns the run of newlines, spaces, tabs and semicolons
// that ends sql. It is carried over to the output unchanged.
func endingChars(sql string) string {
	return sql[len(strings.TrimRight(sql, tailChars)):]
}
