package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrix/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgTranslationEvent MsgKind = iota
	MsgExportComplete
)

// translationEventMsg is the constructor for [MsgTranslationEvent]
func translationEventMsg(e tasks.Event) Msg {
	return Msg{kind: MsgTranslationEvent, data: e}
}

type exportResult struct {
	path string
	err  error
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(path string, err error) Msg {
	return Msg{kind: MsgExportComplete, data: exportResult{path: path, err: err}}
}
