package scenes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/tui/tuimsg"
	"github.com/rgehrsitz/taxregime/internal/tui/tuistyles"
)

// Field indexes, in tab order
const (
	FieldGrossIncome = iota
	FieldOtherIncome
	FieldSection80C
	FieldSection80D
	FieldHRAReceived
	FieldRentPaid
	FieldBasicSalary
	FieldAge
	FieldStandardDeduction
	FieldRebate
	fieldCount
)

const textFieldCount = FieldAge + 1

var fieldLabels = [fieldCount]string{
	"Gross income",
	"Other income",
	"Section 80C",
	"Section 80D",
	"HRA received",
	"Rent paid",
	"Basic salary",
	"Age",
	"Standard deduction",
	"Section 87A rebate",
}

// FormKeyMap lists the form's key bindings
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Submit key.Binding
	Clear  key.Binding
	Sweep  key.Binding
}

// DefaultFormKeyMap returns the standard bindings
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "compute")),
		Clear:  key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear field")),
		Sweep:  key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "break-even & sweep")),
	}
}

// FormModel is the input scene: one text field per TaxInput figure plus the
// two evaluation switches
type FormModel struct {
	inputs  []textinput.Model
	focused int
	options domain.EvaluationOptions
	keys    FormKeyMap
	width   int
	height  int
}

// NewFormModel creates a form focused on gross income
func NewFormModel() *FormModel {
	m := &FormModel{keys: DefaultFormKeyMap()}
	m.inputs = make([]textinput.Model, textFieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "₹ "
		ti.Placeholder = "0"
		ti.CharLimit = 15
		ti.Width = 18
		if i == FieldAge {
			ti.Prompt = "  "
			ti.CharLimit = 3
		}
		m.inputs[i] = ti
	}
	m.inputs[FieldGrossIncome].Focus()
	return m
}

// SetSize updates the scene dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Focused returns the index of the focused field
func (m *FormModel) Focused() int {
	return m.focused
}

// Options returns the current switches
func (m *FormModel) Options() domain.EvaluationOptions {
	return m.options
}

// SetInput fills the fields from an input
func (m *FormModel) SetInput(in domain.TaxInput) {
	set := func(i int, v string) {
		if v == "0" {
			v = ""
		}
		m.inputs[i].SetValue(v)
	}
	set(FieldGrossIncome, in.GrossIncome.String())
	set(FieldOtherIncome, in.OtherIncome.String())
	set(FieldSection80C, in.Section80C.String())
	set(FieldSection80D, in.Section80D.String())
	set(FieldHRAReceived, in.HRAReceived.String())
	set(FieldRentPaid, in.RentPaid.String())
	set(FieldBasicSalary, in.BasicSalary.String())
	set(FieldAge, strconv.Itoa(in.Age))
}

// Input reads the fields. Empty or malformed fields count as zero.
func (m *FormModel) Input() domain.TaxInput {
	amount := func(i int) string { return m.inputs[i].Value() }
	return domain.TaxInput{
		GrossIncome: domain.ParseAmount(amount(FieldGrossIncome)),
		OtherIncome: domain.ParseAmount(amount(FieldOtherIncome)),
		Section80C:  domain.ParseAmount(amount(FieldSection80C)),
		Section80D:  domain.ParseAmount(amount(FieldSection80D)),
		HRAReceived: domain.ParseAmount(amount(FieldHRAReceived)),
		RentPaid:    domain.ParseAmount(amount(FieldRentPaid)),
		BasicSalary: domain.ParseAmount(amount(FieldBasicSalary)),
		Age:         domain.ParseAge(amount(FieldAge)),
	}
}

// Update handles messages for the form scene
func (m *FormModel) Update(msg tea.Msg) (*FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocusedInput(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Next):
		return m, m.setFocus((m.focused + 1) % fieldCount)
	case key.Matches(keyMsg, m.keys.Prev):
		return m, m.setFocus((m.focused + fieldCount - 1) % fieldCount)
	case key.Matches(keyMsg, m.keys.Submit):
		input, opts := m.Input(), m.options
		return m, func() tea.Msg { return tuimsg.CalculateRequestedMsg{Input: input, Options: opts} }
	case key.Matches(keyMsg, m.keys.Sweep):
		return m, func() tea.Msg { return tuimsg.SweepRequestedMsg{} }
	case key.Matches(keyMsg, m.keys.Toggle) && m.focused >= textFieldCount:
		m.toggle(m.focused)
		return m, nil
	case key.Matches(keyMsg, m.keys.Clear) && m.focused < textFieldCount:
		m.inputs[m.focused].SetValue("")
		return m, nil
	}

	if keyMsg.Type == tea.KeyRunes && !numeric(keyMsg.Runes) {
		return m, nil
	}
	return m, m.updateFocusedInput(msg)
}

func (m *FormModel) updateFocusedInput(msg tea.Msg) tea.Cmd {
	if m.focused >= textFieldCount {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return cmd
}

func (m *FormModel) setFocus(i int) tea.Cmd {
	if m.focused < textFieldCount {
		m.inputs[m.focused].Blur()
	}
	m.focused = i
	if i < textFieldCount {
		return m.inputs[i].Focus()
	}
	return nil
}

func (m *FormModel) toggle(field int) {
	switch field {
	case FieldStandardDeduction:
		m.options.DisableStandardDeduction = !m.options.DisableStandardDeduction
	case FieldRebate:
		m.options.DisableRebate = !m.options.DisableRebate
	}
}

// numeric accepts digits and the separators ParseAmount tolerates
func numeric(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != ',' && r != '.' {
			return false
		}
	}
	return true
}

// View renders the form
func (m *FormModel) View() string {
	var sb strings.Builder
	sb.WriteString(tuistyles.TableHeaderStyle.Render("Taxpayer details"))
	sb.WriteString("\n\n")

	for i := 0; i < fieldCount; i++ {
		labelStyle := tuistyles.FieldLabelStyle
		cursor := "  "
		if i == m.focused {
			labelStyle = tuistyles.FocusedFieldLabelStyle
			cursor = tuistyles.StatusKeyStyle.Render("▸ ")
		}
		sb.WriteString(cursor)
		sb.WriteString(labelStyle.Render(fieldLabels[i]))
		if i < textFieldCount {
			sb.WriteString(m.inputs[i].View())
		} else {
			sb.WriteString(checkbox(m.switchOn(i)))
		}
		sb.WriteString("\n")
		if i == FieldAge {
			sb.WriteString("\n")
		}
	}

	help := lipgloss.JoinHorizontal(lipgloss.Left,
		helpItem(m.keys.Next), " • ", helpItem(m.keys.Prev), " • ",
		helpItem(m.keys.Toggle), " • ", helpItem(m.keys.Submit), " • ", helpItem(m.keys.Sweep))
	sb.WriteString("\n")
	sb.WriteString(help)
	return tuistyles.BorderStyle.Render(sb.String())
}

func (m *FormModel) switchOn(field int) bool {
	switch field {
	case FieldStandardDeduction:
		return !m.options.DisableStandardDeduction
	case FieldRebate:
		return !m.options.DisableRebate
	}
	return false
}

func checkbox(on bool) string {
	if on {
		return tuistyles.MetricPositiveStyle.Render("[x] applied")
	}
	return tuistyles.MetricNegativeStyle.Render("[ ] ignored")
}

func helpItem(b key.Binding) string {
	h := b.Help()
	return tuistyles.HelpKeyStyle.Render(h.Key) + " " + tuistyles.HelpDescStyle.Render(h.Desc)
}
