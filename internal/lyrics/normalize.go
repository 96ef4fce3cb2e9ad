package lyrics

import (
	"regexp"
	"strings"
)

// Step is a pure transform applied to a single line.
type Step func(string) string

// DropRule reports whether a cleaned, non-empty line should be discarded.
type DropRule func(string) bool

// Profile parameterizes the line filter shared by every normalization.
type Profile struct {
	Name  string
	Steps []Step
	Drop  []DropRule
	// MaxNewlines is the longest run of newlines kept by [Profile.Text].
	MaxNewlines int
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// replace returns a [Step] replacing every match of pattern with repl.
func replace(pattern, repl string) Step {
	re := regexp.MustCompile(pattern)
	return func(s string) string { return re.ReplaceAllString(s, repl) }
}

// matches returns a [DropRule] for pattern.
func matches(pattern string) DropRule {
	re := regexp.MustCompile(pattern)
	return re.MatchString
}

// LyricsProfile cleans user-supplied lyrics before alignment.
var LyricsProfile = Profile{
	Name: "lyrics",
	Steps: []Step{
		replace(`\[.*?\]`, ""),     // [Chorus]
		replace(`\(.*?\)`, ""),     // (x2), (feat. ...)
		replace(`- .*`, ""),        // trailing "- comment"
		replace(`["'“”‘’]+`, ""),   // quotes
		replace(`\b\d+\b`, ""),     // standalone numbers
		replace(`[\\/]`, ""),       // slashes
		replace(`[-–—]`, ""),       // dashes
		replace(`,`, ""),           // commas
		replace(`\.+`, ""),         // periods
		replace(`\|\|.*?\|\|`, ""), // ||refrain||, after the punctuation that could split a pair
		replace(`\s{2,}`, " "),     // whitespace runs
	},
	MaxNewlines: 2,
}

// TranslationProfile cleans a response from the translation endpoint.
var TranslationProfile = Profile{
	Name: "translation",
	Drop: []DropRule{
		matches(`^\d+$`),
		matches(`^UniqueRef\b`),
		matches(`(?i)^UDC\b`),
	},
	MaxNewlines: 2,
}

// Lines splits raw into lines and returns the cleaned, non-empty survivors in order.
func (p Profile) Lines(raw string) []string {
	lines := []string{}
	for _, line := range lineBreak.Split(raw, -1) {
		if cleaned, ok := p.clean(line); ok {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// Text returns the surviving lines joined by newlines with blank runs collapsed.
func (p Profile) Text(raw string) string {
	return collapseNewlines(strings.Join(p.Lines(raw), "\n"), p.MaxNewlines)
}

func (p Profile) clean(line string) (string, bool) {
	for _, step := range p.Steps {
		line = step(line)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	for _, drop := range p.Drop {
		if drop(line) {
			return "", false
		}
	}
	return line, true
}

// collapseNewlines shortens every run of more than max newlines to exactly max.
func collapseNewlines(s string, max int) string {
	if max <= 0 {
		return s
	}
	run := strings.Repeat("\n", max)
	for strings.Contains(s, run+"\n") {
		s = strings.ReplaceAll(s, run+"\n", run)
	}
	return s
}

// Normalize cleans raw lyrics with [LyricsProfile].
func Normalize(raw string) []string {
	return LyricsProfile.Lines(raw)
}

// CleanTranslation cleans an endpoint response with [TranslationProfile].
func CleanTranslation(raw string) string {
	return TranslationProfile.Text(raw)
}
