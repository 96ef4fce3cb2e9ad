// package models defines the data model for merged lyrics and translation requests
package models

import (
	"strings"
	"time"
)

// Pair is one aligned line from each language. Either side may be empty, never both.
type Pair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// Empty reports whether both sides are blank.
func (p Pair) Empty() bool {
	return p.First == "" && p.Second == ""
}

// Document is an ordered, line-interleaved bilingual lyrics document.
type Document struct {
	pairs []Pair
}

// NewDocument builds a [Document] from pairs, copying the slice.
func NewDocument(pairs []Pair) Document {
	return Document{pairs: append([]Pair(nil), pairs...)}
}

// Len returns the number of pairs.
func (d Document) Len() int { return len(d.pairs) }

// At returns the i-th pair.
func (d Document) At(i int) Pair { return d.pairs[i] }

// Pairs returns a copy of the pairs.
func (d Document) Pairs() []Pair {
	return append([]Pair(nil), d.pairs...)
}

// Swap returns a new document with the two languages exchanged.
func (d Document) Swap() Document {
	swapped := make([]Pair, len(d.pairs))
	for i, p := range d.pairs {
		swapped[i] = Pair{First: p.Second, Second: p.First}
	}
	return Document{pairs: swapped}
}

// Lines renders each pair as two lines, first language then second.
//
// An empty side stays as an empty line so that line parity identifies the language.
func (d Document) Lines() []string {
	lines := make([]string, 0, len(d.pairs)*2)
	for _, p := range d.pairs {
		lines = append(lines, p.First, p.Second)
	}
	return lines
}

func (d Document) String() string {
	return strings.Join(d.Lines(), "\n")
}

// ParseDocument reads back the output of [Document.String].
//
// A trailing unpaired line becomes a pair with an empty second side; pairs with both sides empty are dropped.
func ParseDocument(text string) Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return Document{}
	}

	lines := strings.Split(text, "\n")
	pairs := make([]Pair, 0, (len(lines)+1)/2)
	for i := 0; i < len(lines); i += 2 {
		p := Pair{First: strings.TrimSpace(lines[i])}
		if i+1 < len(lines) {
			p.Second = strings.TrimSpace(lines[i+1])
		}
		if p.Empty() {
			continue
		}
		pairs = append(pairs, p)
	}
	return Document{pairs: pairs}
}

// TranslationRequest is a single submission to the translation endpoint.
//
// Requests are created on submit and discarded once resolved or cancelled.
type TranslationRequest struct {
	ID          string
	SourceText  string
	TargetLang  string
	SubmittedAt time.Time
	Generation  uint64
}
