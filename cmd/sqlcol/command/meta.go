package command

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/mitchellh/cli"
	"github.com/sirupsen/logrus"

	"github.com/joeandaverde/sqlcol/rewrite"
)

// Meta holds what every command needs to talk to the outside world
type Meta struct {
	Ui        cli.Ui
	In        io.Reader
	Out       io.Writer
	LogOutput io.Writer

	inPath   string
	outPath  string
	logLevel string
}

// flagSet registers the flags shared by all commands
func (m *Meta) flagSet(name string) *flag.FlagSet {
	cmdFlags := flag.NewFlagSet(name, flag.ContinueOnError)
	cmdFlags.SetOutput(ioutil.Discard)
	cmdFlags.StringVar(&m.inPath, "in", "", "file to read SQL from, stdin when empty")
	cmdFlags.StringVar(&m.outPath, "out", "", "file to write SQL to, stdout when empty")
	cmdFlags.StringVar(&m.logLevel, "log-level", "", "log level, overrides the config file")

	return cmdFlags
}

func (m *Meta) logger(level logrus.Level) (*logrus.Logger, error) {
	if m.logLevel != "" {
		parsed, err := logrus.ParseLevel(m.logLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	logger := logrus.New()
	logger.SetOutput(m.LogOutput)
	logger.SetLevel(level)

	return logger, nil
}

func (m *Meta) readInput() (string, error) {
	in := m.In

	if m.inPath != "" {
		f, err := os.Open(m.inPath)
		if err != nil {
			return "", err
		}
		defer f.Close()
		in = f
	}

	sql, err := ioutil.ReadAll(in)
	if err != nil {
		return "", err
	}

	return string(sql), nil
}

func (m *Meta) writeOutput(sql string) error {
	if m.outPath != "" {
		return ioutil.WriteFile(m.outPath, []byte(sql), 0644)
	}

	_, err := io.WriteString(m.Out, sql)
	return err
}

// run reads the input, rewrites it with edit and writes the result.
func (m *Meta) run(level logrus.Level, edit func(r *rewrite.Rewriter, sql string) (string, error)) int {
	logger, err := m.logger(level)
	if err != nil {
		m.Ui.Error(fmt.Sprintf("Error parsing log level: %s", err))
		return 1
	}

	sql, err := m.readInput()
	if err != nil {
		m.Ui.Error(fmt.Sprintf("Error reading input: %s", err))
		return 1
	}

	result, err := edit(rewrite.New(logger), sql)
	if err != nil {
		m.Ui.Error(fmt.Sprintf("Error rewriting SQL: %s", err))
		return 1
	}

	if err := m.writeOutput(result); err != nil {
		m.Ui.Error(fmt.Sprintf("Error writing output: %s", err))
		return 1
	}

	return 0
}
