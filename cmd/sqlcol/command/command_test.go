package command

import (
	"bytes"
	"errors"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/joeandaverde/sqlcol/rewrite"
)

type CommandTestSuite struct {
	suite.Suite
	tempDir string
	ui      *cli.MockUi
	out     *bytes.Buffer
	logs    *bytes.Buffer
}

func (s *CommandTestSuite) SetupTest() {
	s.tempDir = s.T().TempDir()
	s.ui = cli.NewMockUi()
	s.out = &bytes.Buffer{}
	s.logs = &bytes.Buffer{}
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}

func (s *CommandTestSuite) meta(input string) Meta {
	return Meta{
		Ui:        s.ui,
		In:        strings.NewReader(input),
		Out:       s.out,
		LogOutput: s.logs,
	}
}

func (s *CommandTestSuite) writeFile(name, content string) string {
	p := path.Join(s.tempDir, name)
	s.Require().NoError(os.WriteFile(p, []byte(content), 0644))
	return p
}

func (s *CommandTestSuite) TestAdd_Stdin() {
	cmd := &AddCommand{Meta: s.meta("INSERT INTO users (id) VALUES (1);\n")}

	code := cmd.Run([]string{"-column", "active", "-value", "true"})

	s.Equal(0, code, s.ui.ErrorWriter.String())
	s.Equal("INSERT INTO users (id, active) VALUES\n  ((1), (true ));\n", s.out.String())
}

func (s *CommandTestSuite) TestAdd_Files() {
	in := s.writeFile("in.sql", "INSERT INTO users (id) VALUES (1), (2)")
	out := path.Join(s.tempDir, "out.sql")

	cmd := &AddCommand{Meta: s.meta("")}
	code := cmd.Run([]string{"-in", in, "-out", out, "-column", "status", "-value", "'new'"})
	s.Equal(0, code, s.ui.ErrorWriter.String())

	written, err := os.ReadFile(out)
	s.NoError(err)
	s.Equal("INSERT INTO users (id, status) VALUES\n  ((1), ('new' )),\n  ((2), ('new' ))", string(written))
	s.Empty(s.out.String())
}

func (s *CommandTestSuite) TestAdd_MissingValue() {
	cmd := &AddCommand{Meta: s.meta("INSERT INTO users (id) VALUES (1)")}

	code := cmd.Run([]string{"-column", "active"})

	s.Equal(1, code)
	s.Contains(s.ui.ErrorWriter.String(), "columnValue must not be empty")
}

func (s *CommandTestSuite) TestAdd_BadFlag() {
	cmd := &AddCommand{Meta: s.meta("")}

	s.Equal(1, cmd.Run([]string{"-nope"}))
	s.Contains(s.ui.ErrorWriter.String(), "Usage: sqlcol add")
}

func (s *CommandTestSuite) TestRemove_ParseError() {
	cmd := &RemoveCommand{Meta: s.meta("INSERT INTO users (id, name VALUES (1, 'John')")}

	code := cmd.Run([]string{"-column", "name"})

	s.Equal(1, code)
	s.Contains(s.ui.ErrorWriter.String(), "syntax error at character 28")
	s.Empty(s.out.String())
}

func (s *CommandTestSuite) TestRemove_DebugLogging() {
	cmd := &RemoveCommand{Meta: s.meta("INSERT INTO users (id, name) VALUES (1, 'John')")}

	code := cmd.Run([]string{"-column", "name", "-log-level", "debug"})

	s.Equal(0, code, s.ui.ErrorWriter.String())
	s.Equal("INSERT INTO users (id) VALUES\n  ((1))", s.out.String())
	s.Contains(s.logs.String(), "mapper=remove_column")
}

func (s *CommandTestSuite) TestRemove_BadLogLevel() {
	cmd := &RemoveCommand{Meta: s.meta("")}

	s.Equal(1, cmd.Run([]string{"-column", "name", "-log-level", "loud"}))
	s.Contains(s.ui.ErrorWriter.String(), "Error parsing log level")
}

func (s *CommandTestSuite) TestApply() {
	config := s.writeFile("edits.yaml", `
log_level: info
edits:
  - op: add
    column: created_at
    value: now()
  - op: remove
    column: legacy_id
`)

	cmd := &ApplyCommand{Meta: s.meta("INSERT INTO users (id, legacy_id) VALUES (1, 7), (2, 8);")}
	code := cmd.Run([]string{"-config", config})

	s.Equal(0, code, s.ui.ErrorWriter.String())
	// the second edit reparses the output of the first, so now() is a call by then
	s.Equal("INSERT INTO users (id, created_at) VALUES\n  ((1), (now())),\n  ((2), (now()));", s.out.String())
	s.Empty(s.logs.String())
}

func (s *CommandTestSuite) TestApply_UnknownOp() {
	config := s.writeFile("edits.yaml", `
edits:
  - op: rename
    column: a
`)

	cmd := &ApplyCommand{Meta: s.meta("")}

	s.Equal(1, cmd.Run([]string{"-config", config}))
	s.Contains(s.ui.ErrorWriter.String(), `edit 1: unknown op "rename"`)
}

func (s *CommandTestSuite) TestApply_MissingConfig() {
	cmd := &ApplyCommand{Meta: s.meta("")}

	s.Equal(1, cmd.Run([]string{"-config", path.Join(s.tempDir, "missing.yaml")}))
	s.Contains(s.ui.ErrorWriter.String(), "Error parsing config file")
}

func (s *CommandTestSuite) TestLoadApplyConfig() {
	config, err := LoadApplyConfig(s.writeFile("edits.yaml", `
log_level: debug
edits:
  - op: remove
    column: email
`))
	s.NoError(err)
	s.Equal(&ApplyConfig{
		LogLevel: logrus.DebugLevel,
		Edits:    []Edit{{Op: "remove", Column: "email"}},
	}, config)

	_, err = LoadApplyConfig(s.writeFile("empty_value.yaml", `
edits:
  - op: add
    column: email
`))
	s.True(errors.Is(err, rewrite.ErrInvalidArgument))

	_, err = LoadApplyConfig(s.writeFile("unknown_field.yaml", `
edits:
  - op: add
    colum: email
`))
	s.Error(err)
}
