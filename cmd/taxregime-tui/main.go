package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxregime/internal/tui"
)

func main() {
	// Optional regimes file; the built-in tables are used without one
	regimesPath := ""
	if len(os.Args) > 1 {
		regimesPath = os.Args[1]
		if _, err := os.Stat(regimesPath); os.IsNotExist(err) {
			fmt.Printf("Error: Regimes file not found: %s\n", regimesPath)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(regimesPath),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
