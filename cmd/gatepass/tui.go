package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/tinytelemetry/gatepass/internal/nav"
	"github.com/tinytelemetry/gatepass/internal/page"
	"github.com/tinytelemetry/gatepass/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func runTUI(cfg appConfig) error {
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "gatepass")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	snap, err := page.Load(cfg.PageFile)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	selection, err := nav.ParseSelectionMode(cfg.Selection)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Store:            store,
		Page:             snap,
		Location:         cfg.StartPath,
		Selection:        selection,
		MobileBreakpoint: cfg.MobileBreakpoint,
		ClockInterval:    cfg.ClockInterval,
	}

	if cfg.PageFile != "" {
		opts.Reload = func() (*page.Snapshot, error) { return page.Load(cfg.PageFile) }
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.WatchPage && cfg.PageFile != "" {
		changes, err := page.Watch(ctx, cfg.PageFile)
		if err != nil {
			return fmt.Errorf("watching page file: %w", err)
		}
		opts.PageChanges = changes
	}

	dashboard := tui.NewDashboardModel(opts)
	app := tui.NewApp(tui.NewDashboardPage(dashboard))

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("dashboard requires a real terminal")
		}
		return fmt.Errorf("error running dashboard: %w", err)
	}
	return nil
}
