package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type CLITest struct {
	Name   string
	Flags  map[string]string
	Bools  []string
	Verify func(t *testing.T, c *Config)
}

var cliTestCases = []CLITest{
	{
		Name:  "Choose a method for this run",
		Flags: map[string]string{"method": "focus"},
		Verify: func(t *testing.T, c *Config) {
			assert.Equal(t, "focus", c.CLI.Method)
			assert.Equal(t, "pomodoro", c.Settings.DefaultMethod)
		},
	},
	{
		Name:  "A level turns blocking on",
		Flags: map[string]string{"level": "strict"},
		Verify: func(t *testing.T, c *Config) {
			assert.Equal(t, "strict", c.Blocking.Level)
			assert.True(t, c.Blocking.Enabled)
		},
	},
	{
		Name:  "Disable blocking and notifications",
		Bools: []string{"no-blocking", "disable-notification"},
		Verify: func(t *testing.T, c *Config) {
			assert.False(t, c.Blocking.Enabled)
			assert.False(t, c.Notifications.Enabled)
		},
	},
	{
		Name:  "Command, driver and abandoned logging",
		Flags: map[string]string{"session-cmd": "echo done", "driver": "memory"},
		Bools: []string{"log-abandoned"},
		Verify: func(t *testing.T, c *Config) {
			assert.Equal(t, "echo done", c.Settings.Cmd)
			assert.Equal(t, "memory", c.Storage.Driver)
			assert.True(t, c.Settings.LogAbandoned)
		},
	},
	{
		Name: "No flags keep the file settings",
		Verify: func(t *testing.T, c *Config) {
			assert.Equal(t, "standard", c.Blocking.Level)
			assert.True(t, c.Blocking.Enabled)
			assert.True(t, c.Notifications.Enabled)
			assert.Equal(t, "bolt", c.Storage.Driver)
		},
	},
}

func TestCLIConfig(t *testing.T) {
	for _, tc := range cliTestCases {
		t.Run(tc.Name, func(t *testing.T) {
			f := flag.NewFlagSet("studyfocus", flag.PanicOnError)

			for k, v := range tc.Flags {
				_ = f.String(k, "", "")

				require.NoError(t, f.Set(k, v))
			}

			for _, k := range tc.Bools {
				_ = f.Bool(k, false, "")

				require.NoError(t, f.Set(k, "true"))
			}

			ctx := cli.NewContext(&cli.App{}, f, nil)

			c := &Config{
				Settings:      SettingsConfig{DefaultMethod: "pomodoro"},
				Blocking:      BlockingConfig{Level: "standard", Enabled: true},
				Notifications: NotificationConfig{Enabled: true},
				Storage:       StorageConfig{Driver: "bolt"},
			}

			require.NoError(t, WithCLIConfig(ctx)(c))

			tc.Verify(t, c)
		})
	}
}

func TestApplyPromptOptions(t *testing.T) {
	c := &Config{}

	applyPromptOptions(c, PromptOptions{DefaultMethod: "focus", Level: "off"})

	assert.Equal(t, "focus", c.Settings.DefaultMethod)
	assert.False(t, c.Blocking.Enabled)
	assert.Equal(t, "standard", c.Blocking.Level)

	applyPromptOptions(c, PromptOptions{DefaultMethod: "quick", Level: "strict"})

	assert.True(t, c.Blocking.Enabled)
	assert.Equal(t, "strict", c.Blocking.Level)
}
