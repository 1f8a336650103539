// Package config loads studyfocus settings from the config file, the
// first-run prompt and command-line flags.
package config

import (
	"io"
	"os"
	"sort"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/method"
)

type (
	// Config holds all configuration settings
	Config struct {
		Methods       map[string]MethodConfig `mapstructure:"methods"`
		CLI           CLIConfig               `mapstructure:"-"`
		Settings      SettingsConfig          `mapstructure:"settings"`
		Blocking      BlockingConfig          `mapstructure:"blocking"`
		Slots         SlotsConfig             `mapstructure:"slots"`
		Storage       StorageConfig           `mapstructure:"storage"`
		Log           LogConfig               `mapstructure:"log"`
		Notifications NotificationConfig      `mapstructure:"notifications"`
		Display       DisplayConfig           `mapstructure:"display"`
	}

	// MethodConfig describes one study method.
	MethodConfig struct {
		Name        string        `mapstructure:"name"`
		Description string        `mapstructure:"description"`
		Duration    time.Duration `mapstructure:"duration"`
	}

	// SettingsConfig holds general session settings.
	SettingsConfig struct {
		DefaultMethod  string        `mapstructure:"default_method"`
		Cmd            string        `mapstructure:"cmd"`
		TickInterval   time.Duration `mapstructure:"tick_interval"`
		LogAbandoned   bool          `mapstructure:"log_abandoned"`
		TwentyFourHour bool          `mapstructure:"24hr_clock"`
	}

	// BlockingConfig holds focus-guard settings.
	BlockingConfig struct {
		Level   string `mapstructure:"level"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// SlotsConfig holds free-slot search settings. Earliest and Latest are
	// "HH:MM" bounds of the search window.
	SlotsConfig struct {
		Earliest    string   `mapstructure:"earliest"`
		Latest      string   `mapstructure:"latest"`
		Suggest     []string `mapstructure:"suggest"`
		MinDuration int      `mapstructure:"min_duration"`
		Max         int      `mapstructure:"max"`
	}

	// StorageConfig selects the session log backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver"`
	}

	// LogConfig holds the rotating log file settings.
	LogConfig struct {
		Level      string `mapstructure:"level"`
		MaxSize    int    `mapstructure:"max_size"`
		MaxBackups int    `mapstructure:"max_backups"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// CLIConfig holds values that only exist for a single invocation.
	CLIConfig struct {
		Method string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// MethodKey is the method a session should start with: the CLI choice if
// any, the configured default otherwise.
func (c *Config) MethodKey() string {
	if c.CLI.Method != "" {
		return c.CLI.Method
	}

	return c.Settings.DefaultMethod
}

// MethodKeys returns the configured method keys in natural order.
func (c *Config) MethodKeys() []string {
	keys := make([]string, 0, len(c.Methods))
	for k := range c.Methods {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(keys[i], keys[j])
	})

	return keys
}

// BuildCatalog turns the configured methods into a catalog.
func (c *Config) BuildCatalog() (*method.Catalog, error) {
	list := make([]method.Method, 0, len(c.Methods))

	for _, k := range c.MethodKeys() {
		m := c.Methods[k]

		list = append(list, method.Method{
			Key:         k,
			Name:        m.Name,
			Description: m.Description,
			Duration:    m.Duration,
		})
	}

	return method.NewCatalog(list...)
}

// BlockingLevel returns the parsed blocking level.
func (c *Config) BlockingLevel() blocking.Level {
	l, _ := blocking.ParseLevel(c.Blocking.Level)
	return l
}

// SlotWindow returns the search window on the given day.
func (c *Config) SlotWindow(day time.Time) (start, end time.Time, err error) {
	from, err := timeutil.ParseClock(c.Slots.Earliest)
	if err != nil {
		return start, end, err
	}

	to, err := timeutil.ParseClock(c.Slots.Latest)
	if err != nil {
		return start, end, err
	}

	at := func(mins int) time.Time {
		return time.Date(
			day.Year(), day.Month(), day.Day(),
			mins/60, mins%60, 0, 0,
			day.Location(),
		)
	}

	return at(from), at(to), nil
}
