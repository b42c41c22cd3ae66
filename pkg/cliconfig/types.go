// Package cliconfig provides configuration types and loading for the netlenium CLI.
package cliconfig

// CLIConfig represents the complete configuration for the netlenium CLI.
// Configuration values can come from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.netleniumrc.yaml in current directory)
// 4. Global config file (~/.config/netlenium/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Server settings
	Endpoint   string `yaml:"endpoint" json:"endpoint"`
	Secret     string `yaml:"secret,omitempty" json:"-"`
	SecretFile string `yaml:"secretFile,omitempty" json:"secretFile,omitempty"`

	// Transport settings
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds
	Method  string `yaml:"method" json:"method"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// Sources tracks where each value came from (for debugging)
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which keys were explicitly present in the source,
	// so an explicit false or empty value can still override.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
	SourceFile    = "file"
)
