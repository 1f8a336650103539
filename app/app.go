// Package app wires the studyfocus command-line interface.
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studyfocus/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the studyfocus app instance.
func Get() *cli.App {
	return &cli.App{
		Name: "studyfocus",
		Usage: `
		StudyFocus is a study timer for the command-line. It runs focus sessions
		with fixed study methods, reminds you to come back when you leave, keeps
		a streak of study days, and finds free time between your calendar events.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start a study session (default command)",
				Flags:  sessionFlags(),
				Action: startAction,
			},
			{
				Name:   "slots",
				Usage:  "Find free study time between calendar events",
				Flags:  []cli.Flag{calendarFlag, dateFlag, fromFlag, toFlag, minFlag, recommendFlag, jsonFlag, driverFlag},
				Action: slotsAction,
			},
			{
				Name:   "stats",
				Usage:  "Show your streak and study statistics",
				Flags:  []cli.Flag{daysFlag, jsonFlag, driverFlag},
				Action: statsAction,
			},
			{
				Name:   "history",
				Usage:  "List recent sessions, newest first",
				Flags:  []cli.Flag{daysFlag, jsonFlag, driverFlag},
				Action: historyAction,
			},
			{
				Name:   "methods",
				Usage:  "List the configured study methods",
				Action: methodsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running session",
				Action: statusAction,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded sessions and the streak",
				Flags:  []cli.Flag{yesFlag, driverFlag},
				Action: clearAction,
			},
			{
				Name:   "export",
				Usage:  "Write all sessions and the streak to a JSON archive",
				Flags:  []cli.Flag{fileFlag, driverFlag},
				Action: exportAction,
			},
			{
				Name:   "import",
				Usage:  "Add the sessions from a JSON archive",
				Flags:  []cli.Flag{fileFlag, driverFlag},
				Action: importAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags:  append(sessionFlags(), noColorFlag),
		Action: startAction,
		Before: beforeAction,
		After:  afterAction,
	}
}
