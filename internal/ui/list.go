package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/lyrix/internal/models"
)

var _ list.Item = languageItem{}

// languageItem wraps [models.Language] to implement [list.Item].
type languageItem struct {
	language models.Language
}

func (i languageItem) FilterValue() string { return i.language.Name }
func (i languageItem) Title() string       { return i.language.Name }
func (i languageItem) Description() string { return i.language.Code }

func languageItems(languages []models.Language) []list.Item {
	items := make([]list.Item, len(languages))
	for i, l := range languages {
		items[i] = languageItem{language: l}
	}
	return items
}
