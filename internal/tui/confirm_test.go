package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestConfirmDefaultFocusNo(t *testing.T) {
	m := confirmModel{message: "Run this?"}
	if m.focusYes {
		t.Error("default focus should be on No")
	}
}

func TestConfirmYesKey(t *testing.T) {
	m := confirmModel{message: "Run this?"}
	updated, cmd := m.Update(keyRune('y'))

	result := updated.(confirmModel)
	if !result.confirmed {
		t.Error("y should confirm")
	}
	if !result.done {
		t.Error("y should finish the dialog")
	}
	if cmd == nil {
		t.Error("y should quit the program")
	}
}

func TestConfirmNoKey(t *testing.T) {
	for _, key := range []tea.KeyMsg{keyRune('n'), keyRune('N'), {Type: tea.KeyEscape}} {
		m := confirmModel{message: "Run this?"}
		updated, cmd := m.Update(key)

		result := updated.(confirmModel)
		if result.confirmed {
			t.Errorf("key %q should decline", key.String())
		}
		if !result.done {
			t.Errorf("key %q should finish the dialog", key.String())
		}
		if cmd == nil {
			t.Errorf("key %q should quit the program", key.String())
		}
	}
}

func TestConfirmEnterActivatesFocusedButton(t *testing.T) {
	// Default focus is No, so enter declines.
	m := confirmModel{message: "Run this?"}
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if updated.(confirmModel).confirmed {
		t.Error("enter on No confirmed")
	}

	// Tab to Yes, then enter confirms.
	m = confirmModel{message: "Run this?"}
	moved, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !moved.(confirmModel).focusYes {
		t.Fatal("tab should move focus to Yes")
	}
	updated, _ = moved.(confirmModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !updated.(confirmModel).confirmed {
		t.Error("enter on Yes did not confirm")
	}
}

func TestConfirmFocusToggles(t *testing.T) {
	m := confirmModel{message: "Run this?"}
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyLeft},
		{Type: tea.KeyRight},
		{Type: tea.KeyTab},
		{Type: tea.KeyShiftTab},
		keyRune('h'),
		keyRune('l'),
	} {
		before := m.focusYes
		updated, _ := m.Update(key)
		m = updated.(confirmModel)
		if m.focusYes == before {
			t.Errorf("key %q did not toggle focus", key.String())
		}
		if m.done {
			t.Errorf("key %q finished the dialog", key.String())
		}
	}
}

func TestConfirmOtherKeysIgnored(t *testing.T) {
	m := confirmModel{message: "Run this?"}
	updated, cmd := m.Update(keyRune('q'))
	result := updated.(confirmModel)
	if result.done || result.confirmed {
		t.Errorf("unrelated key changed state: %+v", result)
	}
	if cmd != nil {
		t.Error("unrelated key produced a command")
	}
}

func TestConfirmNonKeyMsgIgnored(t *testing.T) {
	m := confirmModel{message: "Run this?"}
	updated, cmd := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if updated.(confirmModel).done || cmd != nil {
		t.Error("non-key message changed state")
	}
}

func TestConfirmView(t *testing.T) {
	m := confirmModel{message: "Execute this command?"}
	v := m.View()
	if !strings.Contains(v, "Execute this command?") {
		t.Errorf("view missing message:\n%s", v)
	}
	if !strings.Contains(v, "Yes") || !strings.Contains(v, "No") {
		t.Errorf("view missing buttons:\n%s", v)
	}
}

func TestConfirmViewEmptyWhenDone(t *testing.T) {
	m := confirmModel{message: "Run this?", done: true}
	if v := m.View(); v != "" {
		t.Errorf("View() = %q, want empty after dismissal", v)
	}
}
