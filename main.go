package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"daywise/internal/state"
	"daywise/internal/store"
	"daywise/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return err
	}

	s, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	initial, err := s.LoadState()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	saver := store.NewSaver(s)
	mgr := state.NewManager(initial, saver.Notify)

	// Streaks depend on the current date, so rewrite them on startup.
	mgr.Dispatch(state.RecalculateStreaks{Today: time.Now()})

	app := tui.NewApp(mgr, s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		saver.Close()
		return err
	}

	if err := saver.Close(); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
