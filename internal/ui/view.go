package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text is pre-rendered; skip style wrapping
}

const (
	readyFooter       = "tab switch focus  enter submit  esc quit"
	unavailableFooter = "esc/q quit"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode != ModeReady {
		return m.viewUnavailable()
	}
	return m.viewReady()
}

// diagnosticLines explains why the form is missing.
func diagnosticLines(name string) []string {
	return []string{
		fmt.Sprintf("Error: capability '%s' failed to load.", name),
		"Check that it is registered with the host (built-in catalogue,",
		"manifest entry, or tmux socket), then rebuild and relaunch",
		"search-popup (go install .).",
	}
}

func (m *Model) viewUnavailable() string {
	lines := make([]styledLine, 0, 6)
	for _, text := range diagnosticLines(m.ref.Name()) {
		lines = append(lines, styledLine{text: text, style: styles.Error})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: unavailableFooter, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) viewReady() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: titleText, style: styles.Title})
	if m.showModuleName {
		name := m.moduleName
		if !m.moduleDone {
			name = moduleNamePending
		}
		lines = append(lines, styledLine{text: "Module: " + name, style: styles.ModuleName})
	}
	lines = append(lines, styledLine{text: m.input.View(), raw: true})
	lines = append(lines, m.buttonLine())
	if m.alert != nil {
		lines = append(lines, styledLine{})
		for _, text := range strings.Split(m.renderAlert(), "\n") {
			lines = append(lines, styledLine{text: text, raw: true})
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: readyFooter, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(applyWidth(lines, m.width))
}

func (m *Model) buttonLine() styledLine {
	style := styles.Button
	if m.focus == focusButton && styles.FocusedButton != nil {
		style = styles.FocusedButton
	}
	return styledLine{text: buttonText, style: style}
}

func (m *Model) renderAlert() string {
	body := []string{
		render(styles.AlertTitle, m.alert.title),
		render(styles.AlertBody, m.alert.message),
		"",
		render(styles.AlertHint, alertHint),
	}
	content := strings.Join(body, "\n")
	if styles.AlertBox == nil {
		return content
	}
	return styles.AlertBox.Render(content)
}

func render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if !line.raw && line.style != nil && text != "" {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width cells, keeping ANSI sequences intact.
func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(text, width, "…")
}
