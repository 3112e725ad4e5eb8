package cmd

import (
	"context"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/taskroster/internal/cmd/config"
	"github.com/Iron-Ham/taskroster/internal/cmd/tasks"
	appconfig "github.com/Iron-Ham/taskroster/internal/config"
	"github.com/Iron-Ham/taskroster/internal/logging"
	"github.com/Iron-Ham/taskroster/internal/tui"
)

func runStart(cmd *cobra.Command, args []string) error {
	// Cancelled on exit so requests still in flight are abandoned.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := tasks.Open(ctx, "tui")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	st, err := config.Styles(s.Config)
	if err != nil {
		s.Logger.Warn("failed to load theme file, using default theme",
			"theme_file", s.Config.TUI.ThemeFile, "error", err.Error())
	}

	opts := tui.Options{
		Context:   ctx,
		Styles:    st,
		NameWidth: s.Config.TUI.NameWidth,
	}
	// Seed the layout so the first frame isn't "Loading..."
	if width, height, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		opts.Width, opts.Height = width, height
	}

	app := tui.NewApp(tui.New(s.Roster, opts))
	watchConfig(app, s.Logger)

	s.Logger.Info("tui started", "tasks", s.Roster.Len())
	err = app.Run()
	s.Logger.Info("tui stopped", "tasks", s.Roster.Len())
	return err
}

// watchConfig re-resolves the theme whenever the config file changes and
// hands the new styles to the running program.
func watchConfig(app *tui.App, logger *logging.Logger) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		reloadTheme(app, logger, e)
	})
	viper.WatchConfig()
}

func reloadTheme(app *tui.App, logger *logging.Logger, e fsnotify.Event) {
	st, err := config.Styles(appconfig.Get())
	if err != nil {
		logger.Warn("config changed but theme could not be loaded", "file", e.Name, "error", err.Error())
		return
	}
	logger.Debug("config changed, theme reloaded", "file", e.Name, "op", e.Op.String())
	app.Send(tui.ThemeChangedMsg{Styles: st})
}
