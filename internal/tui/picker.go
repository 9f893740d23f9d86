// Package tui provides the interactive widgets used by `reincheck
// setup`: a preset picker and a confirmation dialog. The installer core
// never imports this package; widgets are wired in by the CLI layer.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/barysiuk/reincheck/internal/catalog"
	"github.com/barysiuk/reincheck/internal/installer"
)

// PresetChoice is one selectable preset with its computed readiness.
type PresetChoice struct {
	Preset catalog.Preset
	Status installer.PresetStatus
}

type presetItem struct {
	choice PresetChoice
}

func (i presetItem) FilterValue() string { return i.choice.Preset.Name }

type presetDelegate struct{}

func (presetDelegate) Height() int                             { return 2 }
func (presetDelegate) Spacing() int                            { return 1 }
func (presetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (presetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(presetItem)
	if !ok {
		return
	}

	badge := statusBadge(pi.choice.Status)
	title := fmt.Sprintf("%s %s · %s", badge, pi.choice.Preset.Name, pi.choice.Preset.Strategy)
	desc := mutedStyle.Render("   " + pi.choice.Preset.Description)

	if index == m.Index() {
		title = selectedStyle.Render("> " + title)
	} else {
		title = "  " + title
	}
	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func statusBadge(status installer.PresetStatus) string {
	switch status {
	case installer.StatusGreen:
		return greenStyle.Render("●")
	case installer.StatusPartial:
		return amberStyle.Render("●")
	default:
		return redStyle.Render("●")
	}
}

// pickerModel drives the preset selection list.
type pickerModel struct {
	list     list.Model
	selected *PresetChoice
	quit     bool
}

func newPickerModel(choices []PresetChoice) pickerModel {
	items := make([]list.Item, 0, len(choices))
	for _, c := range choices {
		items = append(items, presetItem{choice: c})
	}

	l := list.New(items, presetDelegate{}, 60, min(3*len(choices)+4, 24))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, min(msg.Height-4, 24))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(presetItem); ok {
				m.selected = &item.choice
			}
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quit || m.selected != nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select installation strategy"))
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter select · q cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// PickPreset runs the interactive preset picker and returns the chosen
// preset, or ok=false if the user cancelled.
func PickPreset(choices []PresetChoice) (PresetChoice, bool, error) {
	p := tea.NewProgram(newPickerModel(choices))
	final, err := p.Run()
	if err != nil {
		return PresetChoice{}, false, fmt.Errorf("running preset picker: %w", err)
	}
	m := final.(pickerModel)
	if m.selected == nil {
		return PresetChoice{}, false, nil
	}
	return *m.selected, true, nil
}
