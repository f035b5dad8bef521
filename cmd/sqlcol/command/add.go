package command

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/sqlcol/rewrite"
)

type AddCommand struct {
	Meta
}

func (c *AddCommand) Help() string {
	helpText := `
Usage: sqlcol add [options] -column=NAME -value=SQL

  Adds a column to every INSERT statement. The value is written
  into each VALUES row exactly as given, so string literals need
  their own quotes: -value="'pending'".

Options:

	-column=""	Name of the column to add
	-value=""	SQL expression inserted for the new column
	-in=""	File to read SQL from, defaults to stdin
	-out=""	File to write SQL to, defaults to stdout
	-log-level=""	Log level (debug, info, warn, error)
`

	return strings.TrimSpace(helpText)
}

func (c *AddCommand) Synopsis() string {
	return "Adds a column and its value to INSERT statements"
}

func (c *AddCommand) Run(args []string) int {
	var column, value string

	cmdFlags := c.flagSet("add")
	cmdFlags.StringVar(&column, "column", "", "column name")
	cmdFlags.StringVar(&value, "value", "", "column value")

	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(c.Help())
		return 1
	}

	return c.run(logrus.WarnLevel, func(r *rewrite.Rewriter, sql string) (string, error) {
		return r.AddColumn(column, value, sql)
	})
}
