package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/lyrics"
	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/services"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/desertthunder/lyrix/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	EditView ViewState = iota
	LanguageView
	PreviewView
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusErr
)

const (
	firstField = iota
	secondField
)

// ModelOpts configures a [Model].
type ModelOpts struct {
	Connectivity    shared.Connectivity
	Timeout         time.Duration
	Debounce        time.Duration
	Indicator       time.Duration
	DefaultLanguage string
	Format          formatter.Format
	Style           formatter.Style
	ExportPath      string
	Logger          *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	machine    *tasks.Machine
	events     chan tasks.Event
	fields     [2]textarea.Model
	focus      int
	preview    viewport.Model
	doc        models.Document
	langList   list.Model
	lang       *models.Language
	status     string
	statusKind statusKind
	format     formatter.Format
	style      formatter.Style
	exportPath string
	width      int
	height     int
	help       help.Model
	keys       keyMap
	logger     *log.Logger
}

// NewModel creates a new TUI model that translates with translator.
func NewModel(ctx context.Context, translator services.Translator, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Format == "" {
		opts.Format = formatter.Text
	}

	events := make(chan tasks.Event, 64)
	machine := tasks.NewMachine(translator, tasks.MachineOpts{
		Connectivity: opts.Connectivity,
		Timeout:      opts.Timeout,
		Debounce:     opts.Debounce,
		Indicator:    opts.Indicator,
		Logger:       opts.Logger,
		Observer:     tasks.ChannelObserver(events),
		Context:      ctx,
	})

	m := &Model{
		ctx:        ctx,
		view:       EditView,
		machine:    machine,
		events:     events,
		preview:    viewport.New(0, 0),
		format:     opts.Format,
		style:      opts.Style,
		exportPath: opts.ExportPath,
		help:       help.New(),
		keys:       newKeyMap(),
		logger:     opts.Logger,
	}

	m.fields[firstField] = newField("Paste the original lyrics...")
	m.fields[secondField] = newField("Paste the translated lyrics, or press ctrl+t to translate...")
	m.fields[firstField].Focus()

	m.langList = list.New(languageItems(models.Languages), list.NewDefaultDelegate(), 0, 0)
	m.langList.Title = "Target Language"

	if l, ok := models.ResolveLanguage(opts.DefaultLanguage); ok {
		m.lang = &l
	}
	return m
}

func newField(placeholder string) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	return ta
}

// Init starts the cursor blink and the translation event listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The machine ignores messages that are not addressed to it.
	if cmd := m.machine.Update(msg); cmd != nil {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			return m, tea.Quit
		}
		switch m.view {
		case EditView:
			return m.handleEditKeys(msg)
		case LanguageView:
			return m.handleLanguageKeys(msg)
		case PreviewView:
			return m.handlePreviewKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgTranslationEvent:
		m.applyEvent(msg.data.(tasks.Event))
		return m, m.waitForEvent()
	case MsgExportComplete:
		res := msg.data.(exportResult)
		if res.err != nil {
			m.setStatus(statusErr, fmt.Sprintf("Export failed: %v", res.err))
		} else {
			m.setStatus(statusOK, fmt.Sprintf("Exported to %s", res.path))
		}
	}
	return m, nil
}

// applyEvent reflects pipeline output in the status line and the second field.
func (m *Model) applyEvent(e tasks.Event) {
	switch e.Kind {
	case tasks.EventPending, tasks.EventProgress:
		m.setStatus(statusInfo, e.Message())
	case tasks.EventSucceeded:
		m.fields[secondField].SetValue(e.Text)
		m.setStatus(statusOK, fmt.Sprintf("Translated to %s.", models.LanguageName(e.Lang)))
	case tasks.EventFailed:
		m.setStatus(statusErr, e.Message())
	case tasks.EventCancelled:
		m.setStatus(statusWarn, e.Message())
	case tasks.EventReset:
		m.setStatus(statusInfo, "Translation cache cleared.")
	}
}

func (m *Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.focus):
		m.fields[m.focus].Blur()
		m.focus = (m.focus + 1) % len(m.fields)
		return m, m.fields[m.focus].Focus()
	case key.Matches(msg, m.keys.translate):
		return m, m.translate()
	case key.Matches(msg, m.keys.cancel):
		return m, m.machine.Cancel()
	case key.Matches(msg, m.keys.reset):
		return m, m.machine.Reset()
	case key.Matches(msg, m.keys.language):
		m.view = LanguageView
		return m, nil
	case key.Matches(msg, m.keys.preview):
		m.merge()
		return m, nil
	}
	return m.updateFocused(msg)
}

func (m *Model) handleLanguageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.langList.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.back):
			m.view = EditView
			return m, nil
		case key.Matches(msg, m.keys.enter):
			if item, ok := m.langList.SelectedItem().(languageItem); ok {
				l := item.language
				m.lang = &l
				m.setStatus(statusInfo, fmt.Sprintf("Target language: %s", l.Name))
			}
			m.view = EditView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.langList, cmd = m.langList.Update(msg)
	return m, cmd
}

func (m *Model) handlePreviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.view = EditView
		return m, nil
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, m.keys.swap):
		m.doc = m.doc.Swap()
		m.preview.SetContent(m.renderDocument())
		return m, nil
	case key.Matches(msg, m.keys.export):
		return m, m.export()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.view != EditView {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	return m, cmd
}

// translate submits the first field for translation into the selected language.
func (m *Model) translate() tea.Cmd {
	lang := ""
	if m.lang != nil {
		lang = m.lang.Code
	}
	return m.machine.Submit(m.fields[firstField].Value(), lang)
}

// merge aligns both fields and switches to the preview.
func (m *Model) merge() {
	doc, err := lyrics.MergeText(m.fields[firstField].Value(), m.fields[secondField].Value())
	if err != nil {
		if errors.Is(err, shared.ErrMissingInput) {
			m.setStatus(statusErr, "Please fill in both lyrics fields.")
		} else {
			m.setStatus(statusErr, err.Error())
		}
		return
	}

	m.doc = doc
	m.preview.SetContent(m.renderDocument())
	m.preview.GotoTop()
	m.view = PreviewView
	m.setStatus(statusOK, fmt.Sprintf("Merged %d line pairs.", doc.Len()))
}

func (m *Model) export() tea.Cmd {
	doc, path, format, style := m.doc, m.exportPath, m.format, m.style
	return func() tea.Msg {
		written, err := formatter.WriteExport(doc, path, format, style)
		return exportCompleteMsg(written, err)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-m.events:
			return translationEventMsg(e)
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

func (m *Model) layout() {
	fieldWidth := max((m.width-6)/2, 10)
	fieldHeight := max(m.height-10, 3)
	for i := range m.fields {
		m.fields[i].SetWidth(fieldWidth)
		m.fields[i].SetHeight(fieldHeight)
	}

	m.langList.SetSize(m.width-4, m.height-6)
	m.preview.Width = m.width - 4
	m.preview.Height = max(m.height-8, 3)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case EditView:
		body = m.renderEdit()
	case LanguageView:
		body = m.langList.View()
	case PreviewView:
		body = m.renderPreview()
	}

	return fmt.Sprintf("%s\n%s\n%s", body, m.renderStatus(), m.renderHelp())
}

func (m *Model) renderEdit() string {
	lang := "none"
	if m.lang != nil {
		lang = m.lang.Name
	}
	title := styles.title.Render(fmt.Sprintf("lyrix • target: %s", lang))

	panes := make([]string, len(m.fields))
	for i, f := range m.fields {
		style := styles.pane
		if i == m.focus {
			style = styles.active
		}
		panes[i] = style.Render(f.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, panes...))
}

func (m *Model) renderPreview() string {
	title := styles.title.Render(fmt.Sprintf("Merged Lyrics (%d pairs)", m.doc.Len()))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.preview.View())
}

// renderDocument lays out each pair as two styled lines separated by a blank line.
func (m *Model) renderDocument() string {
	first, second := lineStyles(m.style)
	var b strings.Builder
	for i, p := range m.doc.Pairs() {
		if i > 0 {
			b.WriteString("\n")
		}
		if p.First != "" {
			b.WriteString(first.Render(p.First) + "\n")
		}
		if p.Second != "" {
			b.WriteString(second.Render(p.Second) + "\n")
		}
	}
	return b.String()
}

func (m *Model) renderStatus() string {
	switch m.statusKind {
	case statusOK:
		return styles.ok.Render(m.status)
	case statusWarn:
		return styles.warn.Render(m.status)
	case statusErr:
		return styles.err.Render(m.status)
	default:
		return styles.info.Render(m.status)
	}
}

func (m *Model) renderHelp() string {
	var keys []key.Binding
	switch m.view {
	case EditView:
		keys = []key.Binding{m.keys.focus, m.keys.translate, m.keys.cancel, m.keys.language, m.keys.preview, m.keys.reset, m.keys.quit}
	case LanguageView:
		keys = []key.Binding{m.keys.enter, m.keys.back, m.keys.quit}
	case PreviewView:
		keys = []key.Binding{m.keys.swap, m.keys.export, m.keys.back, m.keys.quit}
	}
	return m.help.ShortHelpView(keys)
}
