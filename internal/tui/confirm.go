package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// confirmModel is a yes/no dialog rendered as a bordered box.
//
// Navigation: left/right/tab move focus between Yes and No. Enter
// activates the focused button. y/n/esc are shortcut accelerators.
// Focus defaults to No, the safe choice for destructive actions.
type confirmModel struct {
	message   string
	focusYes  bool
	confirmed bool
	done      bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		m.confirmed = true
		m.done = true
		return m, tea.Quit
	case "n", "N", "esc", "ctrl+c":
		m.done = true
		return m, tea.Quit
	case "enter":
		m.confirmed = m.focusYes
		m.done = true
		return m, tea.Quit
	case "left", "right", "tab", "shift+tab", "h", "l":
		m.focusYes = !m.focusYes
		return m, nil
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}

	question := lipgloss.NewStyle().
		Width(48).
		Align(lipgloss.Center).
		Render(m.message)

	var yesBtn, noBtn string
	if m.focusYes {
		yesBtn = dialogActiveButtonStyle.Render("Yes")
		noBtn = dialogButtonStyle.Render("No")
	} else {
		yesBtn = dialogButtonStyle.Render("Yes")
		noBtn = dialogActiveButtonStyle.Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)
	ui := lipgloss.JoinVertical(lipgloss.Center, question, "", buttons)
	return dialogBoxStyle.Render(ui)
}

// Confirm shows a yes/no dialog and reports the user's answer. Errors
// (e.g. no TTY) count as a decline.
func Confirm(message string) bool {
	p := tea.NewProgram(confirmModel{message: message})
	final, err := p.Run()
	if err != nil {
		fmt.Println("confirmation unavailable, assuming no")
		return false
	}
	return final.(confirmModel).confirmed
}
