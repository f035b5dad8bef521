package command

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/sqlcol/rewrite"
)

type RemoveCommand struct {
	Meta
}

func (c *RemoveCommand) Help() string {
	helpText := `
Usage: sqlcol remove [options] -column=NAME

  Removes a column and its values from every INSERT statement.

Options:

	-column=""	Name of the column to remove
	-in=""	File to read SQL from, defaults to stdin
	-out=""	File to write SQL to, defaults to stdout
	-log-level=""	Log level (debug, info, warn, error)
`

	return strings.TrimSpace(helpText)
}

func (c *RemoveCommand) Synopsis() string {
	return "Removes a column and its values from INSERT statements"
}

func (c *RemoveCommand) Run(args []string) int {
	var column string

	cmdFlags := c.flagSet("remove")
	cmdFlags.StringVar(&column, "column", "", "column name")

	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(c.Help())
		return 1
	}

	return c.run(logrus.WarnLevel, func(r *rewrite.Rewriter, sql string) (string, error) {
		return r.RemoveColumn(column, sql)
	})
}
