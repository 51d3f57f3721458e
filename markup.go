package cookbook

import (
	"bytes"
	"html"
	"strconv"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// inlineMarkdown renders short Markdown fragments (commentary, notes) to
// HTML. Only inline syntax applies: the text is passed through literal first,
// so every character of the record reaches the output.
type inlineMarkdown struct {
	md goldmark.Markdown
}

func newInlineMarkdown() *inlineMarkdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)
	return &inlineMarkdown{md: md}
}

// Render converts text. A single paragraph is unwrapped so the result can
// sit inside a <p>, <li> or <blockquote>.
func (m *inlineMarkdown) Render(text string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(literal(text)), &buf); err != nil {
		return html.EscapeString(text)
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") &&
		strings.Count(out, "<p>") == 1 {
		out = out[len("<p>") : len(out)-len("</p>")]
	}
	return out
}

// literal escapes the parts of text goldmark would drop or restructure:
// tag-like text, entities, backslashes, line-leading block markers and
// asterisks between letters or digits. Emphasis, code spans and links
// written on purpose still render.
func literal(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = literalLine(strings.TrimLeft(line, " \t"))
	}
	return strings.Join(lines, "\n")
}

func literalLine(line string) string {
	var b strings.Builder
	rest := line
	switch {
	case line == "":
		return ""
	case strings.HasPrefix(line, "#"), strings.HasPrefix(line, "```"),
		strings.HasPrefix(line, "~~~"), strings.Trim(line, "-=_* ") == "":
		b.WriteByte('\\')
	case strings.ContainsRune("-+*", rune(line[0])) &&
		(len(line) == 1 || line[1] == ' ' || line[1] == '\t'):
		b.WriteByte('\\')
	default:
		if n := orderedMarker(line); n > 0 {
			b.WriteString(line[:n] + "\\")
			rest = line[n:]
		}
	}
	escapeInline(&b, rest)
	return b.String()
}

// orderedMarker returns the number of digits opening an ordered list item
// ("12. " or "3)"), or 0.
func orderedMarker(line string) int {
	n := 0
	for n < len(line) && n < 10 && line[n] >= '0' && line[n] <= '9' {
		n++
	}
	if n == 0 || n == len(line) || (line[n] != '.' && line[n] != ')') {
		return 0
	}
	if n+1 < len(line) && line[n+1] != ' ' && line[n+1] != '\t' {
		return 0
	}
	return n
}

func escapeInline(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\\':
			b.WriteString(`\\`)
		case '*':
			if i > 0 && i+1 < len(s) && isWordByte(s[i-1]) && isWordByte(s[i+1]) {
				b.WriteByte('\\')
			}
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
}

func isWordByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// writeItemGroups writes groups as <h4> subheadings followed by a list.
// listTag is "ul" or "ol"; ordered lists restart at 1 in every group.
func writeItemGroups(b *strings.Builder, groups []Group, listTag string) {
	for _, g := range groups {
		if g.Heading != "" {
			b.WriteString("<h4>" + html.EscapeString(g.Heading) + "</h4>\n")
		}
		b.WriteString("<" + listTag + ">\n")
		for _, item := range g.Items {
			b.WriteString("<li>" + html.EscapeString(item) + "</li>\n")
		}
		b.WriteString("</" + listTag + ">\n")
	}
}

// writeNotes writes a single note as a paragraph and several as a list.
func writeNotes(b *strings.Builder, notes []string, md *inlineMarkdown) {
	if len(notes) == 1 {
		b.WriteString("<p>" + md.Render(notes[0]) + "</p>\n")
		return
	}
	b.WriteString("<ul>\n")
	for _, note := range notes {
		b.WriteString("<li>" + md.Render(note) + "</li>\n")
	}
	b.WriteString("</ul>\n")
}

// anchor turns a recipe id into an HTML id: lowercase letters and digits,
// everything else collapsed to single hyphens.
func anchor(id string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(id) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "recipe"
	}
	return out
}

func sectionAnchor(index int) string {
	return "section-" + strconv.Itoa(index)
}
