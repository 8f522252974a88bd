package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("⠋ " + m.loadingMessage))
	}
	if m.err != nil {
		return m.renderApp(ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error())))
	}

	var content string
	switch m.currentScene {
	case SceneForm:
		content = m.formModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneSweep:
		content = m.sweepModel.View()
	case SceneHelp:
		content = renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Income Tax: Old vs New Regime")
	crumb := m.currentScene.String()
	if year := m.Year(); year != "" {
		crumb = fmt.Sprintf("%s / AY %s", crumb, year)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(crumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{formatShortcut("y", "year")}
	if m.currentScene == SceneForm {
		shortcuts = append(shortcuts, formatShortcut("enter", "compute"), formatShortcut("ctrl+b", "sweep"))
	} else {
		shortcuts = append(shortcuts, formatShortcut("esc", "edit"), formatShortcut("r", "results"),
			formatShortcut("s", "sweep"), formatShortcut("q", "quit"))
	}
	shortcuts = append(shortcuts, formatShortcut("?", "help"), formatShortcut("ctrl+c", "exit"))

	return StatusBarStyle.Width(max(m.width, 20)).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func renderHelp() string {
	rows := [][2]string{
		{"tab / shift+tab", "Move between form fields"},
		{"space", "Toggle the standard deduction or 87A rebate"},
		{"enter", "Compare both regimes"},
		{"ctrl+b", "Chart tax across incomes and find the break-even"},
		{"ctrl+u", "Clear the focused field"},
		{"y", "Cycle the assessment year"},
		{"r / s", "Show results / sweep"},
		{"esc", "Back to the form"},
		{"q / ctrl+c", "Quit"},
	}
	var sb strings.Builder
	sb.WriteString("KEYBOARD SHORTCUTS\n\n")
	for _, r := range rows {
		sb.WriteString(HelpKeyStyle.Width(18).Render(r[0]))
		sb.WriteString(HelpDescStyle.Render(r[1]))
		sb.WriteString("\n")
	}
	sb.WriteString("\nAmounts are annual rupees; commas are allowed. Empty fields count as zero.")
	return BorderStyle.Render(sb.String())
}
