package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/taxregime/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.formModel.SetSize(msg.Width, msg.Height)
		m.resultsModel.SetSize(msg.Width, msg.Height)
		m.sweepModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RegimesLoadedMsg:
		m.loading = false
		m.regimes = msg.Regimes
		m.years = msg.Regimes.AvailableYears()
		m.yearIndex = 0
		for i, y := range m.years {
			if y == msg.Regimes.DefaultYear {
				m.yearIndex = i
			}
		}
		return m, nil

	case tuimsg.CalculateRequestedMsg:
		if m.regimes == nil {
			return m, nil
		}
		in := msg.Input
		m.lastInput = &in
		m.lastOptions = msg.Options
		m.loading = true
		m.loadingMessage = "Comparing regimes..."
		return m, m.calculateCmd(msg.Input, msg.Options)

	case tuimsg.CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.resultsModel.SetComparison(msg.Comparison)
		return m.navigate(SceneResults)

	case tuimsg.SweepRequestedMsg:
		if m.regimes == nil {
			return m, nil
		}
		in, opts := m.formModel.Input(), m.formModel.Options()
		m.lastInput = &in
		m.lastOptions = opts
		m.loading = true
		m.loadingMessage = "Sweeping incomes..."
		return m, m.sweepCmd(in, opts)

	case tuimsg.SweepCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.sweepModel.SetResults(msg.Points, msg.BreakEven)
		return m.navigate(SceneSweep)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m, func() tea.Msg { return NavigateMsg{Scene: scene} }
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		if m.currentScene != SceneForm {
			return m, tea.Quit
		}

	case "?":
		return m.navigate(SceneHelp)

	case "y":
		return m.cycleYear()

	case "esc", "e":
		if m.currentScene != SceneForm {
			return m.navigate(SceneForm)
		}

	case "r":
		if m.currentScene != SceneForm && m.resultsModel.Report() != nil {
			return m.navigate(SceneResults)
		}

	case "s":
		if m.currentScene != SceneForm {
			return m, func() tea.Msg { return tuimsg.SweepRequestedMsg{} }
		}
	}

	return m.updateCurrentScene(msg)
}

// cycleYear selects the next assessment year and recomputes whatever is on screen
func (m Model) cycleYear() (tea.Model, tea.Cmd) {
	if len(m.years) == 0 {
		return m, nil
	}
	m.yearIndex = (m.yearIndex + 1) % len(m.years)
	if m.lastInput == nil {
		return m, nil
	}
	switch m.currentScene {
	case SceneResults:
		return m, m.calculateCmd(*m.lastInput, m.lastOptions)
	case SceneSweep:
		return m, m.sweepCmd(*m.lastInput, m.lastOptions)
	}
	return m, nil
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneForm:
		m.formModel, cmd = m.formModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneSweep:
		m.sweepModel, cmd = m.sweepModel.Update(msg)
	}
	return m, cmd
}
