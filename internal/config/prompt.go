package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/studyfocus/method"
)

const asciiLogo = `
 ___ _            _      ___
/ __| |_ _  _ __| |_  _| __|__  __ _  _ ___
\__ \  _| || / _' | || | _/ _ \/ _| || (_-<
|___/\__|\_,_\__,_|\_, |_|\___/\__|\_,_/__/
                   |__/`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	DefaultMethod string
	Level         string
}

// WithPromptConfig returns an Option that configures settings via
// interactive prompts. It only runs when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure StudyFocus for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'studyfocus edit-config' to change any settings.`, " ").
		Render()

	methodOpts := make([]huh.Option[string], 0)

	for _, m := range method.Defaults() {
		o := huh.NewOption(
			fmt.Sprintf("%s (%d minutes)", m.Name, m.DurationMinutes()),
			m.Key,
		)

		if m.Key == "pomodoro" {
			o = o.Selected(true)
		}

		methodOpts = append(methodOpts, o)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default study method").
				Options(methodOpts...).
				Value(&opts.DefaultMethod),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Focus guard while a session runs").
				Options(
					huh.NewOption("Standard: reminder every 30 seconds", "standard").Selected(true),
					huh.NewOption("Strict: reminder every 15 seconds", "strict"),
					huh.NewOption("Screen time: persistent indicator", "screen-time"),
					huh.NewOption("Off", "off"),
				).
				Value(&opts.Level),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Settings.DefaultMethod = opts.DefaultMethod

	if opts.Level == "off" {
		c.Blocking.Level = "standard"
		c.Blocking.Enabled = false

		return
	}

	c.Blocking.Level = opts.Level
	c.Blocking.Enabled = true
}
