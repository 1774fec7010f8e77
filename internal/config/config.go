// Package config manages application configuration.
package config

import (
	"fmt"
	"regexp"
	"runtime"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/roboco-io/ppr2docx/internal/export"
	"github.com/roboco-io/ppr2docx/internal/logging"
	"github.com/roboco-io/ppr2docx/internal/markup"
)

// Config represents the application configuration.
type Config struct {
	Lexer  LexerConfig  `yaml:"lexer"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// LexerConfig contains source lexing options.
type LexerConfig struct {
	Separator string `yaml:"separator"` // single character
	Workers   int    `yaml:"workers"`   // 0 = number of CPUs
}

// MarshalYAML writes the separator as a double-quoted scalar. A plain
// scalar cannot hold a lone line break or keep a backslash readable.
func (c LexerConfig) MarshalYAML() (interface{}, error) {
	return struct {
		Separator yaml.Node `yaml:"separator"`
		Workers   int       `yaml:"workers"`
	}{
		Separator: yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Style: yaml.DoubleQuotedStyle,
			Value: c.Separator,
		},
		Workers: c.Workers,
	}, nil
}

// ExportConfig contains document export options.
type ExportConfig struct {
	UnderlineColor string `yaml:"underline_color"`
	HeadingSizes   []int  `yaml:"heading_sizes"` // half-points, six entries
}

// LogConfig contains logging options.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var hexColorPattern = regexp.MustCompile(`^(?i:[0-9a-f]{6}|auto)$`)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	sizes := export.DefaultHeadingSizes
	return &Config{
		Lexer: LexerConfig{
			Separator: string(markup.DefaultSeparator),
			Workers:   0,
		},
		Export: ExportConfig{
			UnderlineColor: export.DefaultUnderlineColor,
			HeadingSizes:   sizes[:],
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that every option holds a usable value.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Lexer.Separator) != 1 {
		return fmt.Errorf("lexer.separator must be a single character: %q", c.Lexer.Separator)
	}
	if c.Lexer.Workers < 0 {
		return fmt.Errorf("lexer.workers must not be negative: %d", c.Lexer.Workers)
	}
	if !hexColorPattern.MatchString(c.Export.UnderlineColor) {
		return fmt.Errorf("export.underline_color must be a 6-digit hex color: %s", c.Export.UnderlineColor)
	}
	if len(c.Export.HeadingSizes) != len(export.DefaultHeadingSizes) {
		return fmt.Errorf("export.heading_sizes must have %d entries, got %d",
			len(export.DefaultHeadingSizes), len(c.Export.HeadingSizes))
	}
	for _, s := range c.Export.HeadingSizes {
		if s <= 0 {
			return fmt.Errorf("export.heading_sizes must be positive: %v", c.Export.HeadingSizes)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("log.format: %w", err)
	}
	return nil
}

// LexerOptions converts the lexer section to lexer options.
func (c *Config) LexerOptions() markup.Options {
	opts := markup.DefaultOptions()
	if r, size := utf8.DecodeRuneInString(c.Lexer.Separator); size > 0 {
		opts.Separator = r
	}
	opts.Workers = c.Lexer.Workers
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return opts
}

// ExportOptions converts the export section to exporter options.
func (c *Config) ExportOptions() export.Options {
	opts := export.DefaultOptions()
	if c.Export.UnderlineColor != "" {
		opts.UnderlineColor = c.Export.UnderlineColor
	}
	if len(c.Export.HeadingSizes) == len(opts.HeadingSizes) {
		copy(opts.HeadingSizes[:], c.Export.HeadingSizes)
	}
	return opts
}
