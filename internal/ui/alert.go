package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/search-popup/internal/logging/events"
)

// alert is the blocking acknowledgment prompt. While it is open no other
// input reaches the form.
type alert struct {
	title   string
	message string
}

func newAlert(title, message string) *alert {
	return &alert{title: title, message: message}
}

const alertHint = "enter/esc to dismiss"

// handleAlertKey consumes every key while the alert is open. Only the dismiss
// keys close it.
func (m *Model) handleAlertKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
		m.alert = nil
		events.Form.DismissAlert(events.AlertReasonKey)
	}
	return nil
}

// AlertOpen reports whether the acknowledgment prompt is showing.
func (m *Model) AlertOpen() bool { return m.alert != nil }
