package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/justyntemme/novel-t/internal/api"
	"github.com/justyntemme/novel-t/internal/config"
	"github.com/justyntemme/novel-t/internal/logger"
	"github.com/justyntemme/novel-t/internal/prefs"
	"github.com/justyntemme/novel-t/internal/server"
	"github.com/justyntemme/novel-t/internal/store"
	"github.com/justyntemme/novel-t/internal/ui"
	"github.com/justyntemme/novel-t/internal/ui/terminal"
)

const (
	appName     = "novel-t"
	version     = "0.1.0"
	defaultAddr = "127.0.0.1:8000"
)

// env is what Before prepares for the commands
type env struct {
	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
}

func (e *env) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	if e.cfg, err = config.Load(cmd.String("config")); err != nil {
		return ctx, fmt.Errorf("unable to load configuration: %w", err)
	}

	// Override server URL if provided via flag
	if url := cmd.String("url"); url != "" {
		e.cfg.ServerURL = url
		if err := e.cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save server URL to config: %v\n", err)
		}
	}

	level := e.cfg.Log.Level
	if l := cmd.String("log-level"); l != "" {
		level = l
	}
	conf := logger.Config{Level: level, Path: e.cfg.LogPath(), Append: true}
	if cmd.Args().First() == "serve" {
		conf.Console = true
		if level == config.LogNone {
			conf.Level = config.LogNormal
		}
	}
	if e.log, e.closeLog, err = logger.New(conf); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}

	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", version), zap.String("runtime", runtime.Version()))
	for _, field := range e.cfg.Fallbacks {
		e.log.Warn("Invalid configuration value, using default", zap.String("field", field), zap.String("config", e.cfg.Path()))
	}
	return ctx, nil
}

func (e *env) after(context.Context, *cli.Command) error {
	if e.log == nil {
		return nil
	}
	e.log.Debug("Program ended")
	return e.closeLog()
}

// read runs the terminal reader
func (e *env) read(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		return e.printSettings(cmd)
	}

	prefsPath := cmd.String("prefs")
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	saved, err := prefs.Load(prefsPath)
	if err != nil {
		e.log.Warn("Ignoring unreadable preferences", zap.String("path", prefsPath), zap.Error(err))
	}

	st := store.New(store.Options{DarkThemes: e.cfg.DarkThemeColors(), Logger: e.log})
	if !saved.IsZero() {
		st.Dispatch(saved.Event())
	}

	client := api.NewClient(e.cfg.ServerURL, api.WithRoutes(e.cfg.APIRoutes()), api.WithLogger(e.log))
	app := ui.NewApp(ui.Options{
		Store:     st,
		Catalog:   client,
		Config:    e.cfg,
		PrefsPath: prefsPath,
		Logger:    e.log,
		Context:   ctx,
		ImageMode: terminal.DetectTerminalMode(),
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// serve runs the book server over a directory of EPUB files
func (e *env) serve(ctx context.Context, cmd *cli.Command) error {
	return server.New(cmd.String("dir"), e.log).ListenAndServe(ctx, cmd.String("addr"))
}

func (e *env) printSettings(cmd *cli.Command) error {
	prefsPath := cmd.String("prefs")
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	fmt.Printf("Config path: %s\n", e.cfg.Path())
	fmt.Printf("Server URL: %s\n", e.cfg.ServerURL)
	fmt.Printf("Routes: %s, %s, %s\n", e.cfg.Routes.Books, e.cfg.Routes.TOC, e.cfg.Routes.Chapter)
	fmt.Printf("Preferences: %s\n", prefsPath)
	fmt.Printf("Log: %s (%s)\n", e.cfg.LogPath(), e.cfg.Log.Level)
	fmt.Printf("Images: %s\n", terminal.DetectTerminalMode())
	for _, field := range e.cfg.Fallbacks {
		fmt.Printf("Invalid value replaced by default: %s\n", field)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	e := &env{}
	app := &cli.Command{
		Name:            appName,
		Usage:           "terminal e-book reader",
		Version:         version + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          e.before,
		After:           e.after,
		Action:          e.read,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Aliases: []string{"s"}, Usage: "server `URL` (saved to config)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (JSON)"},
			&cli.StringFlag{Name: "prefs", Aliases: []string{"p"}, Usage: "reading preferences `FILE` (TOML)", DefaultText: prefs.DefaultPath()},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: "file log `LEVEL`: none, debug or normal"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "print resolved settings and exit"},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serves a directory of EPUB files over the reader REST API",
				Action: e.serve,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "dir", Value: ".", Usage: "`DIRECTORY` holding the EPUB files"},
					&cli.StringFlag{Name: "addr", Value: defaultAddr, Usage: "listen `ADDRESS`"},
				},
			},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		// Log is closed by now, report directly
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
