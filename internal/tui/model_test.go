package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/tui/tuimsg"
)

func salaried() domain.TaxInput {
	return domain.TaxInput{
		GrossIncome: decimal.NewFromInt(850000),
		Section80C:  decimal.NewFromInt(100000),
		HRAReceived: decimal.NewFromInt(60000),
		RentPaid:    decimal.NewFromInt(120000),
		BasicSalary: decimal.NewFromInt(400000),
		Age:         35,
	}
}

// step feeds msg to the model and then every message its commands
// produce, until no command is left
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	for msg != nil {
		next, cmd := m.Update(msg)
		m = next.(Model)
		msg = nil
		if cmd != nil {
			msg = cmd()
		}
	}
	return m
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := NewModel("")
	cmd := m.Init()
	require.NotNil(t, cmd)
	return step(t, m, cmd())
}

func TestModel_LoadsDefaultYear(t *testing.T) {
	m := loaded(t)
	assert.Equal(t, "2024-25", m.Year())
	assert.Equal(t, SceneForm, m.CurrentScene())
	assert.Contains(t, m.View(), "AY 2024-25")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("/nonexistent/regimes.yaml")
	m = step(t, m, m.Init()())
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), "Error:")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.NoError(t, m.Err())
}

func TestModel_CalculateShowsResults(t *testing.T) {
	m := loaded(t)
	m = step(t, m, tuimsg.CalculateRequestedMsg{Input: salaried()})

	assert.Equal(t, SceneResults, m.CurrentScene())
	report := m.resultsModel.Report()
	require.NotNil(t, report)
	assert.True(t, decimal.NewFromInt(40500).Equal(report.Comparison.Old.TaxPayable))
	assert.True(t, decimal.NewFromInt(32500).Equal(report.Comparison.New.TaxPayable))

	view := m.View()
	assert.Contains(t, view, "New Regime saves ₹8,000")
	assert.Contains(t, view, "Share of combined tax")
}

func TestModel_CycleYearRecalculates(t *testing.T) {
	m := loaded(t)
	m = step(t, m, tuimsg.CalculateRequestedMsg{Input: salaried()})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Equal(t, "2025-26", m.Year())
	report := m.resultsModel.Report()
	require.NotNil(t, report)
	assert.True(t, report.Comparison.New.TaxPayable.IsZero())

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	assert.Equal(t, "2024-25", m.Year())
}

func TestModel_SweepScene(t *testing.T) {
	m := loaded(t).WithInput(salaried())
	m = step(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})

	assert.Equal(t, SceneSweep, m.CurrentScene())
	view := m.View()
	assert.Contains(t, view, "Tax payable by gross income")
	assert.Contains(t, view, "Break-even")
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t)

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, SceneHelp, m.CurrentScene())
	assert.Contains(t, m.View(), "KEYBOARD SHORTCUTS")

	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneForm, m.CurrentScene())

	// q is ignored on the form, where it cannot be typed into a field anyway
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ErrorMsg(t *testing.T) {
	m := loaded(t)
	m = step(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")
}

func TestScene_String(t *testing.T) {
	assert.Equal(t, "Form", SceneForm.String())
	assert.Equal(t, "Results", SceneResults.String())
	assert.Equal(t, "Sweep", SceneSweep.String())
	assert.Equal(t, "Help", SceneHelp.String())
	assert.Equal(t, "Unknown", Scene(42).String())
}
