package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// App holds the optional TOML application configuration and its flag
type App struct {
	path string
}

// AppConfig represents the application configuration file
type AppConfig struct {
	// Prompt overrides the enricher's analysis instruction
	Prompt string `toml:"prompt"`

	// PipelineConcurrency caps concurrently running capture pipelines;
	// zero means the built-in default
	PipelineConcurrency int64 `toml:"pipeline_concurrency"`
}

// Validate checks if the AppConfig is valid
func (c *AppConfig) Validate() error {
	if c.PipelineConcurrency < 0 {
		return goerr.Wrap(ErrInvalidConcurrency, "negative value", goerr.V("concurrency", c.PipelineConcurrency))
	}
	return nil
}

// Flags returns CLI flags for application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML application configuration file",
			Sources:     cli.EnvVars("MNEMOSYNE_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Configure loads and validates the configuration file. Without a path
// it returns defaults.
func (a *App) Configure() (*AppConfig, error) {
	var config AppConfig
	if a.path == "" {
		return &config, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", a.path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", a.path))
	}

	return &config, nil
}
