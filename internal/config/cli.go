package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Method        string
	Level         string
	SessionCmd    string
	Driver        string
	NoBlocking    bool
	DisableNotify bool
	LogAbandoned  bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// It must be applied after WithViperConfig so flags win over the file.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Method:        ctx.String("method"),
			Level:         ctx.String("level"),
			SessionCmd:    ctx.String("session-cmd"),
			Driver:        ctx.String("driver"),
			NoBlocking:    ctx.Bool("no-blocking"),
			DisableNotify: ctx.Bool("disable-notification"),
			LogAbandoned:  ctx.Bool("log-abandoned"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.Method != "" {
		c.CLI.Method = opts.Method
	}

	if opts.Level != "" {
		c.Blocking.Level = opts.Level
		c.Blocking.Enabled = true
	}

	if opts.NoBlocking {
		c.Blocking.Enabled = false
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.Driver != "" {
		c.Storage.Driver = opts.Driver
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.LogAbandoned {
		c.Settings.LogAbandoned = true
	}
}
