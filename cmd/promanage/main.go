package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/promanage/promanage/internal/app"
	"github.com/promanage/promanage/internal/model"
	"github.com/promanage/promanage/internal/store"
	"github.com/promanage/promanage/internal/ui"
)

func main() {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "promanage: %v\n", err)
		os.Exit(1)
	}

	s := store.New(store.DefaultSeed(), cfg.Display.DarkMode)
	lipgloss.SetHasDarkBackground(s.DarkMode())

	p := tea.NewProgram(app.New(s, cfg.Display), tea.WithAltScreen())

	// Every store mutation repaints the UI, so pages always render the
	// latest domain state no matter which page made the change.
	s.Subscribe(func() {
		p.Send(ui.RefreshMsg{})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "promanage: %v\n", err)
		os.Exit(1)
	}
}
