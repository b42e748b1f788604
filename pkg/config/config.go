// Package config loads the optional sqlfmt.yaml project file and lowers it
// to the library's FormatOptions.
package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfmt/pkg/sqlfmt"
	"gopkg.in/yaml.v3"
)

// Config represents a sqlfmt.yaml file. Every field is optional; zero values
// fall back to sqlfmt.Defaults.
type Config struct {
	// Indent is the number of spaces per indentation level. Ignored when
	// Tabs is set.
	Indent int `yaml:"indent,omitempty"`

	// Tabs switches indentation to one tab per level.
	Tabs bool `yaml:"tabs,omitempty"`

	// Uppercase folds keywords to upper case when true, lower case when
	// false, and leaves them untouched when absent.
	Uppercase *bool `yaml:"uppercase,omitempty"`

	// IgnoreCaseConvert lists keywords exempted from case folding.
	IgnoreCaseConvert []string `yaml:"ignore_case_convert,omitempty"`

	// LinesBetweenQueries is the number of newlines emitted after each
	// statement separator.
	LinesBetweenQueries int `yaml:"lines_between_queries,omitempty"`

	// Inline renders each statement on a single line.
	Inline bool `yaml:"inline,omitempty"`

	// MaxInlineBlock is the length ceiling for one-line parenthesized blocks.
	MaxInlineBlock int `yaml:"max_inline_block,omitempty"`

	// MaxInlineArguments keeps comma-separated arguments on one line while
	// the surrounding clause fits within it.
	MaxInlineArguments int `yaml:"max_inline_arguments,omitempty"`

	// MaxInlineTopLevel folds short top-level clauses onto the keyword line.
	MaxInlineTopLevel int `yaml:"max_inline_top_level,omitempty"`

	// JoinsAsTopLevel treats JOIN clauses as top-level keywords.
	JoinsAsTopLevel bool `yaml:"joins_as_top_level,omitempty"`

	// Dialect selects lexical quirks: "generic", "postgresql", or
	// "sqlserver".
	Dialect string `yaml:"dialect,omitempty"`
}

// LoadConfig parses a configuration from the provided io.Reader.
//
// The function expects YAML-formatted data. Absent keys keep their
// sqlfmt.Defaults values when the config is lowered with Options.
//
// Example:
//
//	yamlData := `
//	indent: 4
//	uppercase: true
//	dialect: postgresql
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	options, err := cfg.Options()
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal sqlfmt config")
	}
	return &cfg, nil
}

// LoadConfigFile loads a configuration from the specified file path. This is
// a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}

// Options lowers the configuration onto sqlfmt.Defaults. It fails only on an
// unknown dialect name.
func (c *Config) Options() (sqlfmt.FormatOptions, error) {
	options := sqlfmt.Defaults

	if c.Tabs {
		options.Indent = sqlfmt.Tabs()
	} else if c.Indent > 0 {
		options.Indent = sqlfmt.Spaces(c.Indent)
	}

	if c.Uppercase != nil {
		if *c.Uppercase {
			options.Uppercase = sqlfmt.CaseUpper
		} else {
			options.Uppercase = sqlfmt.CaseLower
		}
	}
	options.IgnoreCaseConvert = c.IgnoreCaseConvert

	if c.LinesBetweenQueries > 0 {
		options.LinesBetweenQueries = c.LinesBetweenQueries
	}
	if c.MaxInlineBlock > 0 {
		options.MaxInlineBlock = c.MaxInlineBlock
	}
	options.Inline = c.Inline
	options.MaxInlineArguments = c.MaxInlineArguments
	options.MaxInlineTopLevel = c.MaxInlineTopLevel
	options.JoinsAsTopLevel = c.JoinsAsTopLevel

	switch strings.ToLower(c.Dialect) {
	case "", "generic":
		options.Dialect = sqlfmt.Generic
	case "postgresql", "postgres":
		options.Dialect = sqlfmt.PostgreSql
	case "sqlserver", "mssql":
		options.Dialect = sqlfmt.SQLServer
	default:
		return options, errors.Errorf("unknown dialect: %s", c.Dialect)
	}

	return options, nil
}
