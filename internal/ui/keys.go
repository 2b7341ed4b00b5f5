package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/search-popup/internal/form"
	"github.com/atomicstack/search-popup/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.Type == tea.KeyCtrlC {
		if m.alert != nil {
			events.Form.DismissAlert(events.AlertReasonQuit)
		}
		return tea.Quit
	}
	if m.alert != nil {
		return m.handleAlertKey(keyMsg)
	}
	if m.mode != ModeReady {
		switch keyMsg.String() {
		case "esc", "q":
			return tea.Quit
		}
		return nil
	}

	switch keyMsg.Type {
	case tea.KeyEsc:
		return tea.Quit
	case tea.KeyTab, tea.KeyShiftTab:
		m.toggleFocus()
		return nil
	case tea.KeyEnter:
		return m.submit()
	case tea.KeySpace:
		if m.focus == focusButton {
			return m.submit()
		}
	}
	if m.focus != focusInput {
		return nil
	}
	return m.editInput(keyMsg)
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	events.Form.Focus(m.focus.String())
}

// editInput forwards the key to the text field and commits the resulting
// value to the form controller.
func (m *Model) editInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.commitInput()
	return cmd
}

// commitInput copies the field's value into the form controller so submit
// always sees what the user sees, including clipboard pastes.
func (m *Model) commitInput() {
	value := m.input.Value()
	if m.form.Edit(value) {
		events.Form.Edit(len(value))
	}
}

// submit validates the current text and dispatches it to the capability.
func (m *Model) submit() tea.Cmd {
	sub, err := m.form.Submit()
	if errors.Is(err, form.ErrEmptyInput) {
		m.alert = newAlert(alertTitle, alertMessage)
		events.Form.Reject(m.form.Rejections())
		return nil
	}
	if err != nil {
		return nil
	}
	events.Form.Submit(sub.ID, len(sub.Text))
	m.forceClearInfo()
	if m.form.ClearOnSubmit() {
		m.input.SetValue(m.form.Text())
	}
	cmd := m.bus.Command(m.ref, sub.ID, sub.Text)
	if cmd != nil {
		m.inflight++
	}
	return cmd
}
