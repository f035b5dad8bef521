package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/joeandaverde/sqlcol/rewrite"
)

// Edit is one step of an edit script
type Edit struct {
	// Op is either add or remove
	Op     string `yaml:"op"`
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

// ApplyConfig is the edit script read by the apply command
type ApplyConfig struct {
	LogLevel logrus.Level `yaml:"log_level"`
	Edits    []Edit       `yaml:"edits"`
}

// LoadApplyConfig decodes an edit script and checks its edits
func LoadApplyConfig(path string) (*ApplyConfig, error) {
	configFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer configFile.Close()

	configDecoder := yaml.NewDecoder(configFile)
	configDecoder.SetStrict(true)

	config := &ApplyConfig{LogLevel: logrus.WarnLevel}
	if err := configDecoder.Decode(config); err != nil {
		return nil, err
	}

	for i, edit := range config.Edits {
		switch {
		case edit.Op != "add" && edit.Op != "remove":
			return nil, fmt.Errorf("edit %d: unknown op %q", i+1, edit.Op)
		case edit.Column == "":
			return nil, fmt.Errorf("edit %d: %w: column must not be empty", i+1, rewrite.ErrInvalidArgument)
		case edit.Op == "add" && edit.Value == "":
			return nil, fmt.Errorf("edit %d: %w: value must not be empty", i+1, rewrite.ErrInvalidArgument)
		}
	}

	return config, nil
}

func (e Edit) mapper() rewrite.Mapper {
	if e.Op == "add" {
		return rewrite.AddColumnMapper(e.Column, e.Value)
	}

	return rewrite.RemoveColumnMapper(e.Column)
}

type ApplyCommand struct {
	Meta
}

func (c *ApplyCommand) Help() string {
	helpText := `
Usage: sqlcol apply [options] -config=FILE

  Applies the edits of a YAML edit script in order, each one to the
  output of the previous:

	log_level: info
	edits:
	  - op: add
	    column: created_at
	    value: now()
	  - op: remove
	    column: legacy_id

Options:

	-config=""	Edit script
	-in=""	File to read SQL from, defaults to stdin
	-out=""	File to write SQL to, defaults to stdout
	-log-level=""	Log level, overrides log_level of the script
`

	return strings.TrimSpace(helpText)
}

func (c *ApplyCommand) Synopsis() string {
	return "Applies an edit script to INSERT statements"
}

func (c *ApplyCommand) Run(args []string) int {
	var configPath string

	cmdFlags := c.flagSet("apply")
	cmdFlags.StringVar(&configPath, "config", "", "edit script")

	if err := cmdFlags.Parse(args); err != nil {
		c.Ui.Error(c.Help())
		return 1
	}

	config, err := LoadApplyConfig(configPath)
	if err != nil {
		c.Ui.Error(fmt.Sprintf("Error parsing config file: %s", err))
		return 1
	}

	return c.run(config.LogLevel, func(r *rewrite.Rewriter, sql string) (string, error) {
		for _, edit := range config.Edits {
			var err error

			if sql, err = r.Apply(edit.mapper(), sql); err != nil {
				return "", fmt.Errorf("%s %s: %w", edit.Op, edit.Column, err)
			}
		}

		return sql, nil
	})
}
