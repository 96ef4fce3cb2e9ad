// package formatter exports merged lyric documents to various formats (plain text, Markdown, HTML, CSV, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/lyrix/internal/models"
	"github.com/desertthunder/lyrix/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	HTML     Format = "html"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{Text, Markdown, HTML, CSV, JSON}

// ParseFormat resolves a format name or file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "text", "txt", "plain":
		return Text, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm", "doc":
		return HTML, nil
	case "csv":
		return CSV, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case CSV:
		return ".csv"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case Markdown:
		return "text/markdown; charset=utf-8"
	case HTML:
		return "text/html; charset=utf-8"
	case CSV:
		return "text/csv; charset=utf-8"
	case JSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Style controls emphasis of each side of a pair in rich formats.
type Style struct {
	FirstBold    bool
	FirstItalic  bool
	SecondBold   bool
	SecondItalic bool
}

// StyleFromConfig builds a [Style] from the export section of the config file.
func StyleFromConfig(c shared.ExportConfig) Style {
	return Style{
		FirstBold:    c.FirstBold,
		FirstItalic:  c.FirstItalic,
		SecondBold:   c.SecondBold,
		SecondItalic: c.SecondItalic,
	}
}

// ExportToText writes the two lines of each pair, first then second, skipping empty sides.
func ExportToText(doc models.Document) ([]byte, error) {
	var buf bytes.Buffer
	for _, p := range doc.Pairs() {
		if p.First != "" {
			buf.WriteString(p.First + "\n")
		}
		if p.Second != "" {
			buf.WriteString(p.Second + "\n")
		}
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown writes an optional title followed by one paragraph per pair.
func ExportToMarkdown(doc models.Document, title string, style Style) ([]byte, error) {
	var buf bytes.Buffer

	if title != "" {
		buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	}

	for i, p := range doc.Pairs() {
		if i > 0 {
			buf.WriteString("\n")
		}
		var lines []string
		if p.First != "" {
			lines = append(lines, emphasize(p.First, style.FirstBold, style.FirstItalic))
		}
		if p.Second != "" {
			lines = append(lines, emphasize(p.Second, style.SecondBold, style.SecondItalic))
		}
		// Two trailing spaces keep both lines in the same paragraph.
		buf.WriteString(strings.Join(lines, "  \n") + "\n")
	}

	return buf.Bytes(), nil
}

func emphasize(s string, bold, italic bool) string {
	switch {
	case bold && italic:
		return "***" + s + "***"
	case bold:
		return "**" + s + "**"
	case italic:
		return "*" + s + "*"
	default:
		return s
	}
}

// ExportToHTML writes a standalone page that word processors open as a document.
func ExportToHTML(doc models.Document, title string, style Style) ([]byte, error) {
	var buf bytes.Buffer

	if title == "" {
		title = "Exported Lyrics"
	}

	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	buf.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	buf.WriteString("<style>.bold { font-weight: bold; } .italic { font-style: italic; }</style>\n")
	buf.WriteString("</head>\n<body>\n")

	for _, p := range doc.Pairs() {
		buf.WriteString("<p>\n")
		if p.First != "" {
			buf.WriteString(fmt.Sprintf("<span class=\"%s\">%s</span><br>\n",
				classes("first-line", style.FirstBold, style.FirstItalic), html.EscapeString(p.First)))
		}
		if p.Second != "" {
			buf.WriteString(fmt.Sprintf("<span class=\"%s\">%s</span><br>\n",
				classes("second-line", style.SecondBold, style.SecondItalic), html.EscapeString(p.Second)))
		}
		buf.WriteString("</p>\n")
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

func classes(base string, bold, italic bool) string {
	c := []string{base}
	if bold {
		c = append(c, "bold")
	}
	if italic {
		c = append(c, "italic")
	}
	return strings.Join(c, " ")
}

// ExportToCSV converts a Document to CSV format with columns: Line, First, Second
func ExportToCSV(doc models.Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Line", "First", "Second"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, p := range doc.Pairs() {
		if err := writer.Write([]string{strconv.Itoa(i + 1), p.First, p.Second}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes the pairs as an indented JSON array.
func ExportToJSON(doc models.Document) ([]byte, error) {
	return shared.MarshalJSON(doc.Pairs(), true)
}

// Export encodes doc in the given format.
func Export(doc models.Document, format Format, title string, style Style) ([]byte, error) {
	switch format {
	case Text:
		return ExportToText(doc)
	case Markdown:
		return ExportToMarkdown(doc, title, style)
	case HTML:
		return ExportToHTML(doc, title, style)
	case CSV:
		return ExportToCSV(doc)
	case JSON:
		return ExportToJSON(doc)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport exports doc to path, creating parent directories as needed.
//
// Defaults to merged_lyrics{ext} when path is empty.
func WriteExport(doc models.Document, path string, format Format, style Style) (string, error) {
	if doc.Len() == 0 {
		return "", fmt.Errorf("%w: no lyrics to export", shared.ErrMissingInput)
	}
	if path == "" {
		path = "merged_lyrics" + format.Extension()
	}

	data, err := Export(doc, format, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), style)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
