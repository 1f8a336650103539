package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/studyfocus/calendar"
	"github.com/ayoisaiah/studyfocus/export"
	"github.com/ayoisaiah/studyfocus/internal/config"
	"github.com/ayoisaiah/studyfocus/internal/notify"
	"github.com/ayoisaiah/studyfocus/internal/pathutil"
	"github.com/ayoisaiah/studyfocus/internal/timeutil"
	"github.com/ayoisaiah/studyfocus/internal/ui"
	"github.com/ayoisaiah/studyfocus/slots"
)

const (
	envNoColor           = "NO_COLOR"
	envStudyFocusNoColor = "STUDYFOCUS_NO_COLOR"
)

const noSessionsMsg = "No sessions found for the specified time range"

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(config.Stdout, string(b))

	return nil
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// statsAction prints the streak summary and statistics of the last days.
func statsAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	days := max(ctx.Int("days"), 1)

	sum, sumErr := e.agg.Recompute()

	st, stErr := e.agg.StudyStats(days)

	if err := errors.Join(sumErr, stErr); err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(struct {
			Summary any `json:"summary"`
			Stats   any `json:"stats"`
		}{sum, st})
	}

	ui.PrintStats(config.Stdout, sum, st, days)

	return nil
}

// historyAction lists the sessions of the last days, newest first.
func historyAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := e.agg.History(max(ctx.Int("days"), 1))
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		return printJSON(records)
	}

	if len(records) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return nil
	}

	layout := "Jan 02 " + ui.ClockLayout(e.cfg.Settings.TwentyFourHour)

	ui.PrintTable(ui.HistoryHeader, ui.HistoryRows(records, layout), config.Stdout)

	return nil
}

// methodsAction lists the study methods from shortest to longest.
func methodsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	catalog, err := cfg.BuildCatalog()
	if err != nil {
		return err
	}

	rows := ui.MethodRows(catalog.ByDuration(), cfg.Settings.DefaultMethod)

	ui.PrintTable(ui.MethodHeader, rows, config.Stdout)

	return nil
}

// statusAction prints the state of the running session, if any.
func statusAction(_ *cli.Context) error {
	s, err := notify.ReadStatus(pathutil.StatusFilePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			pterm.Info.Println("No session is running")
			return nil
		}

		return err
	}

	fmt.Fprintln(config.Stdout, ui.StatusLine(s, time.Now()))

	return nil
}

// slotsAction finds free study slots on a day.
func slotsAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	now := time.Now()

	from, to, err := slotWindow(ctx, e.cfg, now)
	if err != nil {
		return err
	}

	var events []slots.CalendarEvent

	if path := ctx.String("calendar"); path != "" {
		p, err := calendar.Open(path)
		if err != nil {
			return err
		}

		events, err = p.Events(ctx.Context, from, to)
		if err != nil {
			return err
		}
	}

	suggest, err := e.catalog.Subset(e.cfg.Slots.Suggest...)
	if err != nil {
		return err
	}

	minDuration := e.cfg.Slots.MinDuration
	if ctx.IsSet("min") {
		minDuration = ctx.Int("min")
	}

	found := slots.New(slots.WithSuggestions(suggest)).Find(events, from, to, minDuration)

	e.logger.Debug("slots found",
		slog.Int("events", len(events)),
		slog.Int("slots", len(found)),
	)

	layout := ui.ClockLayout(e.cfg.Settings.TwentyFourHour)

	if ctx.Bool("recommend") {
		st, err := e.agg.StudyStats(30)
		if err != nil {
			e.logger.Warn("study history unavailable", "error", err)
		}

		recs := slots.Recommend(found, st.History(), e.cfg.Slots.Max)

		if ctx.Bool("json") {
			return printJSON(recs)
		}

		if len(recs) == 0 {
			pterm.Info.Println("No free time found")
			return nil
		}

		ui.PrintTable(ui.RecommendationHeader, ui.RecommendationRows(recs, layout), config.Stdout)

		return nil
	}

	found = slots.Optimal(found, e.cfg.Slots.Max)

	if ctx.Bool("json") {
		return printJSON(found)
	}

	if len(found) == 0 {
		pterm.Info.Println("No free time found")
		return nil
	}

	ui.PrintTable(ui.SlotHeader, ui.SlotRows(found, layout), config.Stdout)

	return nil
}

// slotWindow resolves the search window from --date, --from and --to,
// falling back to the configured daily bounds.
func slotWindow(ctx *cli.Context, cfg *config.Config, now time.Time) (from, to time.Time, err error) {
	day := now

	if s := ctx.String("date"); s != "" {
		day, err = timeutil.ParseDate(s, now)
		if err != nil {
			return from, to, errInvalidDate.Fmt(s).Wrap(err)
		}
	}

	from, to, err = cfg.SlotWindow(day)
	if err != nil {
		return from, to, err
	}

	if s := ctx.String("from"); s != "" {
		from, err = timeutil.ParseDate(s, now)
		if err != nil {
			return from, to, errInvalidDate.Fmt(s).Wrap(err)
		}
	}

	if s := ctx.String("to"); s != "" {
		to, err = timeutil.ParseDate(s, now)
		if err != nil {
			return from, to, errInvalidDate.Fmt(s).Wrap(err)
		}
	}

	return from, to, nil
}

// clearAction deletes every session and the streak after confirmation.
func clearAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if !ctx.Bool("yes") {
		var confirm bool

		err := huh.NewConfirm().
			Title("Delete all sessions and reset your streak?").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirm).
			Run()
		if err != nil {
			return err
		}

		if !confirm {
			pterm.Info.Println("Nothing was deleted")
			return nil
		}
	}

	if err := e.agg.Reset(); err != nil {
		return err
	}

	pterm.Success.Println("All study data cleared")

	return nil
}

// exportAction writes the session log and streak to a JSON archive.
func exportAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := e.sessions.All()
	if err != nil {
		return err
	}

	streak, err := e.agg.Streak()
	if err != nil {
		return err
	}

	path := ctx.String("file")

	if err := export.ToFile(path, export.New(records, streak, time.Now())); err != nil {
		return err
	}

	pterm.Success.Printfln("Exported %d sessions to %s", len(records), path)

	return nil
}

// importAction adds the sessions of a JSON archive that are not already
// stored and merges its streak.
func importAction(ctx *cli.Context) error {
	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := export.FromFile(ctx.String("file"))
	if err != nil {
		return err
	}

	n, err := e.sessions.Import(a.Sessions)
	if err != nil {
		return err
	}

	if _, err := e.agg.MergeStreak(a.Streak); err != nil {
		return err
	}

	pterm.Success.Printfln("Imported %d of %d sessions", n, a.Count)

	return nil
}

func beforeAction(ctx *cli.Context) error {
	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if STUDYFOCUS_NO_COLOR is set
	if _, exists := os.LookupEnv(envStudyFocusNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return pathutil.Initialize()
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting studyfocus")

	return nil
}
