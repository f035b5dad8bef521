package main

import (
	"fmt"
	"os"

	"github.com/mitchellh/cli"

	"github.com/joeandaverde/sqlcol/cmd/sqlcol/command"
)

func main() {
	meta := command.Meta{
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
		In:        os.Stdin,
		Out:       os.Stdout,
		LogOutput: os.Stderr,
	}

	commands := map[string]cli.CommandFactory{
		"add": func() (cli.Command, error) {
			return &command.AddCommand{Meta: meta}, nil
		},
		"remove": func() (cli.Command, error) {
			return &command.RemoveCommand{Meta: meta}, nil
		},
		"apply": func() (cli.Command, error) {
			return &command.ApplyCommand{Meta: meta}, nil
		},
	}

	sqlcolCLI := &cli.CLI{
		Args:     os.Args[1:],
		Commands: commands,
		HelpFunc: cli.BasicHelpFunc("sqlcol"),
	}

	exitCode, err := sqlcolCLI.Run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}

	os.Exit(exitCode)
}
