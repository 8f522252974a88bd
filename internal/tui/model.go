// Package tui is the interactive regime comparison form.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/tui/scenes"
	"github.com/rgehrsitz/taxregime/internal/tui/tuimsg"
)

// sweepPoints is how many incomes the sweep scene charts
const sweepPoints = 41

// minSweepCeiling keeps the sweep chart useful for small incomes
var minSweepCeiling = decimal.NewFromInt(2000000)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Regime tables and the selected assessment year
	regimesPath string
	regimes     *domain.RegimeSet
	years       []string
	yearIndex   int

	calcEngine *calculation.CalculationEngine
	solver     *breakeven.Solver

	// Last computed input, for recalculation when the year changes
	lastInput   *domain.TaxInput
	lastOptions domain.EvaluationOptions

	formModel    *scenes.FormModel
	resultsModel *scenes.ResultsModel
	sweepModel   *scenes.SweepModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates the application model. An empty regimesPath uses the
// built-in tables.
func NewModel(regimesPath string) Model {
	calc := calculation.NewCalculationEngine()
	return Model{
		currentScene:   SceneForm,
		regimesPath:    regimesPath,
		calcEngine:     calc,
		solver:         breakeven.NewDefaultSolver(calc),
		formModel:      scenes.NewFormModel(),
		resultsModel:   scenes.NewResultsModel(),
		sweepModel:     scenes.NewSweepModel(),
		width:          80,
		height:         24,
		loading:        true,
		loadingMessage: "Loading regime tables...",
	}
}

// WithInput pre-fills the form
func (m Model) WithInput(in domain.TaxInput) Model {
	m.formModel.SetInput(in)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadRegimesCmd(m.regimesPath)
}

// Year returns the selected assessment year, or "" before tables load
func (m Model) Year() string {
	if len(m.years) == 0 {
		return ""
	}
	return m.years[m.yearIndex]
}

// CurrentScene returns the visible scene
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Err returns the error being displayed, if any
func (m Model) Err() error {
	return m.err
}

// loadRegimesCmd returns a command that loads the regime tables
func loadRegimesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		set, err := config.NewInputParser().LoadRegimesOrDefault(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RegimesLoadedMsg{Regimes: set}
	}
}

// calculateCmd compares both regimes for the selected year
func (m Model) calculateCmd(input domain.TaxInput, opts domain.EvaluationOptions) tea.Cmd {
	regimes, engine := m.regimes, m.calcEngine
	year := m.Year()
	return func() tea.Msg {
		yr, err := regimes.Lookup(year)
		if err != nil {
			return tuimsg.CalculationCompleteMsg{Err: err}
		}
		comparison, err := engine.CompareYear(input, yr, opts)
		return tuimsg.CalculationCompleteMsg{Comparison: comparison, Err: err}
	}
}

// sweepCmd charts both regimes from zero to twice the current income and
// searches the same range for the break-even income
func (m Model) sweepCmd(input domain.TaxInput, opts domain.EvaluationOptions) tea.Cmd {
	regimes, engine, solver := m.regimes, m.calcEngine, m.solver
	year := m.Year()
	return func() tea.Msg {
		yr, err := regimes.Lookup(year)
		if err != nil {
			return tuimsg.SweepCompleteMsg{Err: err}
		}

		ceiling := decimal.Max(input.GrossIncome.Mul(decimal.NewFromInt(2)), minSweepCeiling).Round(-5)
		sweep := calculation.IncomeSweep{
			From: decimal.Zero,
			To:   ceiling,
			Step: ceiling.Div(decimal.NewFromInt(sweepPoints - 1)).Ceil(),
		}
		ctx := context.Background()
		points, err := engine.Sweep(ctx, input, yr, opts, sweep)
		if err != nil {
			return tuimsg.SweepCompleteMsg{Err: err}
		}

		be, err := solver.Solve(ctx, breakeven.Request{
			Target:    breakeven.TargetIncome,
			Input:     input,
			Regimes:   yr,
			Options:   opts,
			MinIncome: sweep.From,
			MaxIncome: sweep.To,
		})
		if err != nil {
			return tuimsg.SweepCompleteMsg{Err: fmt.Errorf("break-even search failed: %w", err)}
		}
		return tuimsg.SweepCompleteMsg{Points: points, BreakEven: be}
	}
}
