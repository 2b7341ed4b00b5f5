package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/search-popup/internal/logging"
	"github.com/atomicstack/search-popup/internal/ui/command"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withResult applies the common completion flow for capability calls: errors
// are logged and never shown, info is shown only in verbose mode.
func (m *Model) withResult(action func() promptResult) tea.Cmd {
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		logging.Error(result.Err)
		return result.Cmd
	}
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleQueryResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.QueryResult)
	if !ok {
		return nil
	}
	return m.withResult(func() promptResult {
		m.moduleDone = true
		if res.Err != nil {
			m.moduleName = moduleNameFallback
			return promptResult{Err: fmt.Errorf("get module name: %w", res.Err)}
		}
		m.moduleName = res.Name
		return promptResult{}
	})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(command.CommandResult)
	if !ok {
		return nil
	}
	return m.withResult(func() promptResult {
		if m.inflight > 0 {
			m.inflight--
		}
		if res.Err != nil {
			return promptResult{Err: fmt.Errorf("perform search %s: %w", res.ID, res.Err)}
		}
		info := fmt.Sprintf("Sent to %s", m.ref.Name())
		if m.inflight > 0 {
			info = fmt.Sprintf("%s (%d pending)", info, m.inflight)
		}
		return promptResult{Info: info}
	})
}
