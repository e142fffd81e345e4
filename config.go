package p2c

import (
	"github.com/0xoc/P2C/internal/compiler"
	"github.com/0xoc/P2C/internal/pattern"
)

var (
	// A C type name: one or more identifier words ("float", "long double").
	typeName = pattern.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(?: [A-Za-z_][A-Za-z0-9_]*)*$`)
	// A prefix must itself be a valid C identifier.
	identName = pattern.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Config holds configuration options for translation.
type Config struct {
	// NumericType is the C type of every variable and temporary
	// (default: "float"). Use "int" when the program relies on %.
	NumericType string

	// Format enables whitespace normalization of the generated text:
	// blank-line runs collapse and lines are indented by brace depth.
	// Nil means true.
	Format *bool

	// Filename is attached to positions in errors and log records.
	Filename string

	// TempPrefix names temporaries TempPrefix1, TempPrefix2, ... (default: "t").
	TempPrefix string

	// LabelPrefix names labels LabelPrefix1, LabelPrefix2, ... (default: "l").
	LabelPrefix string
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.NumericType == "" {
		c.NumericType = compiler.DefaultNumericType
	}
	if c.TempPrefix == "" {
		c.TempPrefix = compiler.DefaultTempPrefix
	}
	if c.LabelPrefix == "" {
		c.LabelPrefix = compiler.DefaultLabelPrefix
	}
}

// validate rejects settings that would produce malformed C.
func (c *Config) validate() error {
	if !typeName.MatchString(c.NumericType) {
		return &ConfigError{Field: "NumericType", Value: c.NumericType}
	}
	if !identName.MatchString(c.TempPrefix) {
		return &ConfigError{Field: "TempPrefix", Value: c.TempPrefix}
	}
	if !identName.MatchString(c.LabelPrefix) {
		return &ConfigError{Field: "LabelPrefix", Value: c.LabelPrefix}
	}
	return nil
}

// format reports whether the formatting pass runs.
func (c *Config) format() bool {
	return c.Format == nil || *c.Format
}

func (c *Config) compilerConfig() compiler.Config {
	return compiler.Config{
		NumericType: c.NumericType,
		TempPrefix:  c.TempPrefix,
		LabelPrefix: c.LabelPrefix,
	}
}
