// Package models defines the value types shared by the lyrics, translation and presentation layers.
//
// The package contains:
//   - [Pair] and [Document] : a merged bilingual lyrics document, immutable once built
//   - [TranslationRequest] : one submission to the translation endpoint
//   - [Language] : the registry of target languages offered to the user
//
// Documents are handed to export and preview collaborators by value. Any edit, such as [Document.Swap], returns a new document.
package models
