package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/search-popup/internal/capability"
	"github.com/atomicstack/search-popup/internal/form"
	"github.com/atomicstack/search-popup/internal/theme"
	"github.com/atomicstack/search-popup/internal/ui/command"
)

type Mode int

const (
	ModeUnavailable Mode = iota
	ModeReady
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

func (f focusTarget) String() string {
	if f == focusButton {
		return SubmitButtonID
	}
	return "input"
}

// SubmitButtonID identifies the submit control for automation.
const SubmitButtonID = "start_execution_button"

const (
	titleText          = "Tool:"
	placeholderText    = "Enter text to search..."
	buttonText         = "[ Start execution ]"
	alertTitle         = "Notice"
	alertMessage       = "Please enter some text before sending."
	moduleNameFallback = "Failed to get module name"
	moduleNamePending  = "loading…"
	inputWidth         = 40
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options carries the presentation switches from configuration.
type Options struct {
	Width          int
	Height         int
	ShowFooter     bool
	Verbose        bool
	ShowModuleName bool
	ClearOnSubmit  bool
}

// Model implements the Bubble Tea model for the search popup.
type Model struct {
	ref  capability.Reference
	mode Mode

	form  *form.Controller
	input textinput.Model
	focus focusTarget
	alert *alert

	showModuleName bool
	moduleQueried  bool
	moduleName     string
	moduleDone     bool

	inflight   int
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	bus      *command.Bus
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model. Whether the form is usable is decided here, once,
// from ref.
func NewModel(ref capability.Reference, opts Options) *Model {
	return NewModelWithBus(ref, opts, command.New())
}

// NewModelWithBus is NewModel with an explicit command bus.
func NewModelWithBus(ref capability.Reference, opts Options, bus *command.Bus) *Model {
	if bus == nil {
		bus = command.New()
	}
	m := &Model{
		ref:            ref,
		mode:           ModeUnavailable,
		form:           form.New(form.WithClearOnSubmit(opts.ClearOnSubmit)),
		showModuleName: opts.ShowModuleName,
		showFooter:     opts.ShowFooter,
		verbose:        opts.Verbose,
		bus:            bus,
	}
	if ref.Present() {
		m.mode = ModeReady
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.input = newTextInput()
	m.registerHandlers()
	return m
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholderText
	ti.Prompt = "> "
	ti.Width = inputWidth
	if styles.InputPrompt != nil {
		ti.PromptStyle = *styles.InputPrompt
	}
	if styles.InputText != nil {
		ti.TextStyle = *styles.InputText
	}
	if styles.InputPlaceholder != nil {
		ti.PlaceholderStyle = *styles.InputPlaceholder
	}
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return ti
}

// Mode reports which of the two static views the model renders.
func (m *Model) Mode() Mode { return m.mode }

// Text returns the current contents of the text field.
func (m *Model) Text() string { return m.form.Text() }

// ModuleName returns the displayed module name, empty until the query answers.
func (m *Model) ModuleName() string { return m.moduleName }

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.mode != ModeReady || !m.showModuleName || m.moduleQueried {
		return nil
	}
	m.moduleQueried = true
	return m.bus.Query(m.ref)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	if m.mode == ModeReady && m.alert == nil {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.commitInput()
		return m, cmd
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):            m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):     m.handleWindowSizeMsg,
		reflect.TypeOf(command.QueryResult{}):   m.handleQueryResultMsg,
		reflect.TypeOf(command.CommandResult{}): m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
