// Package rewrite adds and removes columns of INSERT statements.
//
// Input is parsed into statements, every INSERT is handed to a Mapper and
// the result is printed back with one VALUES row per line. Statements
// other than INSERT come out in their normalized single line form.
package rewrite

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/sqlcol/tsql"
	"github.com/joeandaverde/sqlcol/tsql/printer"
)

// Rewriter runs mappers over SQL text. It holds no state between calls
// and is safe for concurrent use.
type Rewriter struct {
	log     logrus.FieldLogger
	printer printer.Printer
}

// New returns a Rewriter that logs to log.
func New(log logrus.FieldLogger) *Rewriter {
	return &Rewriter{
		log:     log,
		printer: printer.NewHumanReadable(printer.NewDefault()),
	}
}

var quiet = New(discardLogger())

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// AddColumn adds columnName to every INSERT in sql, using columnValue
// verbatim as the new value of each VALUES row. The caller is
// responsible for quoting: pass 'text' for a string literal.
func AddColumn(columnName, columnValue, sql string) (string, error) {
	return quiet.AddColumn(columnName, columnValue, sql)
}

// RemoveColumn removes columnName and its values from every INSERT in sql.
func RemoveColumn(columnName, sql string) (string, error) {
	return quiet.RemoveColumn(columnName, sql)
}

// AddColumn is the package level AddColumn logging to r's logger.
func (r *Rewriter) AddColumn(columnName, columnValue, sql string) (string, error) {
	for _, arg := range []struct{ name, value string }{
		{"columnName", columnName},
		{"columnValue", columnValue},
		{"sql", sql},
	} {
		if err := required(arg.name, arg.value); err != nil {
			return "", err
		}
	}

	return r.Apply(AddColumnMapper(columnName, columnValue), sql)
}

// RemoveColumn is the package level RemoveColumn logging to r's logger.
func (r *Rewriter) RemoveColumn(columnName, sql string) (string, error) {
	if err := required("columnName", columnName); err != nil {
		return "", err
	}

	if err := required("sql", sql); err != nil {
		return "", err
	}

	return r.Apply(RemoveColumnMapper(columnName), sql)
}

// Apply parses sql, maps every statement with m and prints the result.
// Statements are joined by a newline and the trailing run of white space
// and semicolons of sql is appended as is.
func (r *Rewriter) Apply(m Mapper, sql string) (string, error) {
	log := r.log.WithField("mapper", m.Name())

	statements, err := tsql.Parse(sql)
	if err != nil {
		log.WithError(err).Debug("parse failed")
		return "", err
	}

	log.WithField("statements", len(statements)).Debug("parsed input")

	printed := make([]string, len(statements))

	for i, stmt := range statements {
		mapped := mapStatement(m, stmt)
		if mapped == nil {
			return "", fmt.Errorf("%w: statement %d", ErrTransform, i+1)
		}

		log.WithFields(logrus.Fields{
			"statement": i,
			"kind":      stmt.Kind(),
			"changed":   mapped != stmt,
		}).Debug("mapped statement")

		out, err := r.printer.Statement(mapped)
		if err != nil {
			return "", err
		}

		printed[i] = out
	}

	return strings.Join(printed, "\n") + endingChars(sql), nil
}
