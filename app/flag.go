package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	methodFlag = &cli.StringFlag{
		Name:    "method",
		Aliases: []string{"m"},
		Usage:   "Study method for this session (see 'studyfocus methods')",
	}

	levelFlag = &cli.StringFlag{
		Name:    "level",
		Aliases: []string{"l"},
		Usage:   "Focus guard level: standard, strict or screen-time",
	}

	noBlockingFlag = &cli.BoolFlag{
		Name:  "no-blocking",
		Usage: "Do not remind you to come back when you leave a running session",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable desktop notifications",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	logAbandonedFlag = &cli.BoolFlag{
		Name:  "log-abandoned",
		Usage: "Record stopped sessions that ran for at least a minute as incomplete",
	}

	driverFlag = &cli.StringFlag{
		Name:  "driver",
		Usage: "Storage backend: bolt, sqlite or memory",
	}

	daysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of calendar days to include, today included",
		Value: 7,
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print JSON instead of a table",
	}

	calendarFlag = &cli.StringFlag{
		Name:    "calendar",
		Aliases: []string{"c"},
		Usage:   "Calendar file with busy times (.ics or .yml)",
	}

	dateFlag = &cli.StringFlag{
		Name:  "date",
		Usage: "Day to search for free time (e.g. 'tomorrow', '2024-03-04')",
	}

	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "Start of the search window (e.g. 'today 9am'); overrides slots.earliest",
	}

	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "End of the search window (e.g. 'today 6pm'); overrides slots.latest",
	}

	minFlag = &cli.IntFlag{
		Name:  "min",
		Usage: "Shortest free slot to report, in minutes",
	}

	recommendFlag = &cli.BoolFlag{
		Name:    "recommend",
		Aliases: []string{"r"},
		Usage:   "Rank free slots against your study history",
	}

	fileFlag = &cli.StringFlag{
		Name:     "file",
		Aliases:  []string{"f"},
		Usage:    "Path to the JSON archive",
		Required: true,
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Skip the confirmation prompt",
	}
)

// sessionFlags configure a study session.
func sessionFlags() []cli.Flag {
	return []cli.Flag{
		methodFlag,
		levelFlag,
		noBlockingFlag,
		disableNotificationFlag,
		sessionCmdFlag,
		logAbandonedFlag,
		driverFlag,
	}
}
