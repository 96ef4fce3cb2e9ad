package ui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrix/internal/formatter"
	"github.com/desertthunder/lyrix/internal/shared"
	"github.com/desertthunder/lyrix/internal/tasks"
	tu "github.com/desertthunder/lyrix/internal/testing"
)

func newTestModel(t *testing.T, tr *tu.MockTranslator, opts ModelOpts) *Model {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	opts.Logger = shared.NewLogger(io.Discard)
	opts.Indicator = time.Hour
	m := NewModel(ctx, tr, opts)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m
}

func ctrl(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// nextEvent feeds the next pipeline event back into the model.
func nextEvent(t *testing.T, m *Model) tasks.Event {
	t.Helper()
	select {
	case e := <-m.events:
		m.Update(translationEventMsg(e))
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for translation event")
		return tasks.Event{}
	}
}

// runRequest executes the request half of a submit command and feeds the response back.
func runRequest(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		msg = batch[0]()
	}
	m.Update(msg)
}

func TestModel(t *testing.T) {
	t.Run("NewModel", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{DefaultLanguage: "Japanese"})

		if m.view != EditView {
			t.Errorf("expected EditView, got %v", m.view)
		}
		if m.lang == nil || m.lang.Code != "ja" {
			t.Errorf("expected default language ja, got %+v", m.lang)
		}
		if m.format != formatter.Text {
			t.Errorf("expected text format by default, got %s", m.format)
		}
		if !strings.Contains(m.View(), "target: Japanese") {
			t.Error("expected target language in view")
		}
	})

	t.Run("Tab switches fields", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{})
		m.Update(runes("Hello"))
		m.Update(ctrl(tea.KeyTab))
		m.Update(runes("Bonjour"))

		if m.fields[firstField].Value() != "Hello" || m.fields[secondField].Value() != "Bonjour" {
			t.Errorf("unexpected field values %q / %q", m.fields[firstField].Value(), m.fields[secondField].Value())
		}
	})

	t.Run("Merge opens the preview", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{})
		m.fields[firstField].SetValue("Hello\n[verse]\nWorld")
		m.fields[secondField].SetValue("Bonjour\nMonde")

		m.Update(ctrl(tea.KeyCtrlP))

		if m.view != PreviewView {
			t.Fatalf("expected PreviewView, got %v", m.view)
		}
		if m.doc.Len() != 2 || m.doc.At(1).Second != "Monde" {
			t.Errorf("unexpected document %v", m.doc.Pairs())
		}
		if !strings.Contains(m.View(), "Merged Lyrics (2 pairs)") {
			t.Error("expected preview title")
		}

		m.Update(runes("s"))
		if m.doc.At(0).First != "Bonjour" {
			t.Errorf("expected swapped document, got %v", m.doc.Pairs())
		}

		m.Update(ctrl(tea.KeyEsc))
		if m.view != EditView {
			t.Errorf("expected EditView after esc, got %v", m.view)
		}
	})

	t.Run("Merge requires both fields", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{})
		m.fields[secondField].SetValue("Hi")

		m.Update(ctrl(tea.KeyCtrlP))

		if m.view != EditView {
			t.Errorf("expected to stay on EditView, got %v", m.view)
		}
		if m.statusKind != statusErr || m.status != "Please fill in both lyrics fields." {
			t.Errorf("unexpected status %q", m.status)
		}
	})

	t.Run("Language selection", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{})

		m.Update(ctrl(tea.KeyCtrlL))
		if m.view != LanguageView {
			t.Fatalf("expected LanguageView, got %v", m.view)
		}

		m.Update(ctrl(tea.KeyDown))
		m.Update(ctrl(tea.KeyEnter))

		if m.view != EditView {
			t.Errorf("expected EditView after selection, got %v", m.view)
		}
		if m.lang == nil || m.lang.Code != "hi" {
			t.Errorf("expected Hindi, got %+v", m.lang)
		}
	})
}

func TestModelTranslation(t *testing.T) {
	t.Run("Missing language", func(t *testing.T) {
		tr := &tu.MockTranslator{}
		m := newTestModel(t, tr, ModelOpts{})
		m.fields[firstField].SetValue("Hello")

		m.Update(ctrl(tea.KeyCtrlT))
		nextEvent(t, m)

		if m.status != "Please select the desired language." {
			t.Errorf("unexpected status %q", m.status)
		}
		if tr.CallCount() != 0 {
			t.Error("translator should not be called")
		}
	})

	t.Run("Offline", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{DefaultLanguage: "ja", Connectivity: shared.Static(false)})
		m.fields[firstField].SetValue("Hello")

		m.Update(ctrl(tea.KeyCtrlT))
		nextEvent(t, m)

		if m.status != "Network error: Please connect to the Internet." {
			t.Errorf("unexpected status %q", m.status)
		}
	})

	t.Run("Success fills the second field", func(t *testing.T) {
		tr := &tu.MockTranslator{Responses: map[string]string{"ja": "UniqueRef 1\nKonnichiwa\n7"}}
		m := newTestModel(t, tr, ModelOpts{DefaultLanguage: "ja"})
		m.fields[firstField].SetValue("Hello")

		_, cmd := m.Update(ctrl(tea.KeyCtrlT))
		if e := nextEvent(t, m); e.Kind != tasks.EventPending {
			t.Fatalf("expected pending event, got %s", e.Kind)
		}
		if m.status != "Translating" {
			t.Errorf("expected indicator in status, got %q", m.status)
		}

		runRequest(t, m, cmd)
		if e := nextEvent(t, m); e.Kind != tasks.EventSucceeded {
			t.Fatalf("expected succeeded event, got %s", e.Kind)
		}

		if m.fields[secondField].Value() != "Konnichiwa" {
			t.Errorf("expected cleaned translation, got %q", m.fields[secondField].Value())
		}
		if m.statusKind != statusOK {
			t.Errorf("expected ok status, got %q", m.status)
		}
	})

	t.Run("Cancel and reset", func(t *testing.T) {
		m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{DefaultLanguage: "ja"})
		m.fields[firstField].SetValue("Hello")

		m.Update(ctrl(tea.KeyCtrlT))
		nextEvent(t, m)
		m.Update(ctrl(tea.KeyEsc))
		if e := nextEvent(t, m); e.Kind != tasks.EventCancelled {
			t.Fatalf("expected cancelled event, got %s", e.Kind)
		}
		if m.statusKind != statusWarn {
			t.Errorf("expected warning status, got %q", m.status)
		}

		m.Update(ctrl(tea.KeyCtrlR))
		if e := nextEvent(t, m); e.Kind != tasks.EventReset {
			t.Fatalf("expected reset event, got %s", e.Kind)
		}
	})
}

func TestModelExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.md")
	m := newTestModel(t, &tu.MockTranslator{}, ModelOpts{Format: formatter.Markdown, ExportPath: path})
	m.fields[firstField].SetValue("Hello")
	m.fields[secondField].SetValue("Bonjour")
	m.Update(ctrl(tea.KeyCtrlP))

	_, cmd := m.Update(runes("e"))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	m.Update(cmd())

	if m.statusKind != statusOK || !strings.Contains(m.status, path) {
		t.Errorf("unexpected status %q", m.status)
	}
	tu.AssertFileExists(t, path)
}
