// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for building bilingual lyric sheets:
//  1. [EditView] : Paste the two lyric versions side by side and translate the first into the second
//  2. [LanguageView] : Pick the translation target from the language registry
//  3. [PreviewView] : Scroll the merged document, swap sides and export it
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Translation runs through a [tasks.Machine] owned by the model; its events flow through a channel and come back
// as messages, so the in-progress indicator and notices never block input.
//
// Key bindings are shown with charmbracelet/bubbles/help.
package ui
