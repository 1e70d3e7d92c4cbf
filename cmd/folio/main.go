package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/config"
	"github.com/csheth/folio/internal/content"
	"github.com/csheth/folio/internal/form"
	"github.com/csheth/folio/internal/prefs"
	"github.com/csheth/folio/internal/tui"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stdout)
	if errors.Is(err, config.ErrHelp) || errors.Is(err, config.ErrVersion) {
		return
	}
	if err != nil {
		fmt.Println("folio:", err)
		os.Exit(1)
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		fmt.Println("failed to open log file:", err)
		os.Exit(1)
	}
	defer closeLog()

	page := content.Default()
	if cfg.ContentPath != "" {
		page, err = content.Load(cfg.ContentPath)
		if err != nil {
			fmt.Println("failed to load content:", err)
			os.Exit(1)
		}
	}

	var store prefs.Store
	fileStore, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		slog.Warn("preferences unavailable, using defaults", "path", cfg.PrefsPath, "error", err)
		store = prefs.NewMemoryStore()
	} else {
		store = fileStore
	}

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen && term.IsTerminal(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Page:          page,
			Fetcher:       advice.NewClient(cfg.AdviceEndpoint, nil),
			Prefs:         store,
			SystemDark:    lipgloss.HasDarkBackground(),
			ReducedMotion: cfg.ReducedMotion,
			FormTimings: form.Timings{
				AutoHide:       cfg.Timings.AutoHide,
				HideCompletion: cfg.Timings.HideCompletion,
				SubmitDelay:    cfg.Timings.SubmitDelay,
			},
			Pulse: cfg.Timings.Pulse,
		}),
		opts...,
	)

	if _, err := program.Run(); err != nil {
		fmt.Println("program error:", err)
		os.Exit(1)
	}
}

// setupLogging sends both the job log and slog records to path, or drops
// them when no path is set so nothing writes over the terminal UI.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "folio")
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return func() { _ = f.Close() }, nil
}
