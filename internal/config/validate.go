package config

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ayoisaiah/studyfocus/blocking"
	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/store"
)

var (
	// Minimum and maximum method duration constraints.
	minMethodDuration = 1 * time.Minute
	maxMethodDuration = 720 * time.Minute // 12 hours

	minTickInterval = 100 * time.Millisecond
	maxTickInterval = 1 * time.Second

	drivers = []string{store.DriverBolt, store.DriverSQLite, store.DriverMemory}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateMethods(); err != nil {
		return err
	}

	if err := c.validateSettings(); err != nil {
		return err
	}

	if _, err := blocking.ParseLevel(c.Blocking.Level); err != nil {
		return errInvalidLevel.Wrap(err)
	}

	if err := c.validateSlots(); err != nil {
		return err
	}

	if !slices.Contains(drivers, strings.ToLower(c.Storage.Driver)) {
		return errUnknownDriver.Fmt(c.Storage.Driver)
	}

	return c.validateLog()
}

// validateMethods checks every configured method.
func (c *Config) validateMethods() error {
	if len(c.Methods) == 0 {
		return errNoMethods
	}

	for _, k := range c.MethodKeys() {
		d := c.Methods[k].Duration
		if d < minMethodDuration || d > maxMethodDuration {
			return errInvalidDuration.Fmt(k, minMethodDuration, maxMethodDuration)
		}
	}

	return nil
}

// validateSettings validates the SettingsConfig.
func (c *Config) validateSettings() error {
	if _, ok := c.Methods[c.MethodKey()]; !ok {
		return errUnknownDefaultMethod.Fmt(c.MethodKey())
	}

	if c.Settings.TickInterval < minTickInterval ||
		c.Settings.TickInterval > maxTickInterval {
		return errInvalidTickInterval.Fmt(
			minTickInterval,
			maxTickInterval,
			c.Settings.TickInterval,
		)
	}

	return nil
}

func (c *Config) validateSlots() error {
	from, err := timeutil.ParseClock(c.Slots.Earliest)
	if err != nil {
		return errInvalidClock.Wrap(err)
	}

	to, err := timeutil.ParseClock(c.Slots.Latest)
	if err != nil {
		return errInvalidClock.Wrap(err)
	}

	if from >= to {
		return errInvalidSlotWindow.Fmt(c.Slots.Earliest, c.Slots.Latest)
	}

	if c.Slots.MinDuration < 1 {
		return errInvalidMinDuration.Fmt(c.Slots.MinDuration)
	}

	if c.Slots.Max < 0 {
		return errNegativeMax.Fmt(c.Slots.Max)
	}

	for _, k := range c.Slots.Suggest {
		if _, ok := c.Methods[k]; !ok {
			return errUnknownSuggestion.Fmt(k)
		}
	}

	return nil
}

func (c *Config) validateLog() error {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errInvalidLogLevel.Fmt(c.Log.Level)
	}

	if c.Log.MaxSize < 0 || c.Log.MaxBackups < 0 {
		return errInvalidLogRotation
	}

	return nil
}

// LogLevel returns the configured slog level, defaulting to Info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level

	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}
