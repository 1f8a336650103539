package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/studyfocus/method"
	"github.com/ayoisaiah/studyfocus/slots"
	"github.com/ayoisaiah/studyfocus/store"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyMethods              = "methods"
	keyDefaultMethod        = "settings.default_method"
	keySessionCmd           = "settings.cmd"
	keyLogAbandoned         = "settings.log_abandoned"
	keyTwentyFourHour       = "settings.24hr_clock"
	keyTickInterval         = "settings.tick_interval"
	keyBlockingEnabled      = "blocking.enabled"
	keyBlockingLevel        = "blocking.level"
	keyNotificationsEnabled = "notifications.enabled"
	keySlotsMinDuration     = "slots.min_duration"
	keySlotsEarliest        = "slots.earliest"
	keySlotsLatest          = "slots.latest"
	keySlotsMax             = "slots.max"
	keySlotsSuggest         = "slots.suggest"
	keyStorageDriver        = "storage.driver"
	keyLogLevel             = "log.level"
	keyLogMaxSize           = "log.max_size"
	keyLogMaxBackups        = "log.max_backups"
	keyDarkTheme            = "display.dark_theme"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing config file is created with the defaults.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	for _, m := range method.Defaults() {
		prefix := keyMethods + "." + m.Key

		v.SetDefault(prefix+".name", m.Name)
		v.SetDefault(prefix+".description", m.Description)
		v.SetDefault(prefix+".duration", formatMinutes(m))
	}

	v.SetDefault(keyDefaultMethod, "pomodoro")
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogAbandoned, false)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyTickInterval, "1s")
	v.SetDefault(keyBlockingEnabled, true)
	v.SetDefault(keyBlockingLevel, "standard")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySlotsMinDuration, slots.DefaultMinDuration)
	v.SetDefault(keySlotsEarliest, "08:00")
	v.SetDefault(keySlotsLatest, "22:00")
	v.SetDefault(keySlotsMax, 5)
	v.SetDefault(keySlotsSuggest, slots.DefaultSuggestions)
	v.SetDefault(keyStorageDriver, store.DriverBolt)
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogMaxSize, 10)
	v.SetDefault(keyLogMaxBackups, 3)
	v.SetDefault(keyDarkTheme, true)

	// Answers from the first-run prompt end up in the written file.
	if c.Settings.DefaultMethod != "" {
		v.Set(keyDefaultMethod, c.Settings.DefaultMethod)
	}

	if c.Blocking.Level != "" {
		v.Set(keyBlockingLevel, c.Blocking.Level)
		v.Set(keyBlockingEnabled, c.Blocking.Enabled)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	cli := c.CLI

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("decoding config failed: %w", err)
	}

	c.CLI = cli

	return nil
}

func formatMinutes(m method.Method) string {
	return fmt.Sprintf("%dm", m.DurationMinutes())
}
