package tui

import (
	"github.com/rgehrsitz/taxregime/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResults
	SceneSweep
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Form"
	case SceneResults:
		return "Results"
	case SceneSweep:
		return "Sweep"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RegimesLoadedMsg signals the regime tables are ready
type RegimesLoadedMsg struct {
	Regimes *domain.RegimeSet
}
