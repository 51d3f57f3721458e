package cookbook

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-cookbook/internal/yamlutil"
)

// Page boundaries understood by pandoc: \newpage for LaTeX-backed output
// and a raw OpenXML break for DOCX.
const (
	markdownPageBreak = "\\newpage\n\n"
	openXMLPageBreak  = "```{=openxml}\n<w:p><w:r><w:br w:type=\"page\"/></w:r></w:p>\n```\n\n"
)

// frontMatter is the YAML metadata block of the Markdown output.
type frontMatter struct {
	Title string `yaml:"title"`
}

// markdownSink writes pandoc Markdown.
type markdownSink struct {
	pageBreak string
	b         strings.Builder
	err       error
}

func newMarkdownSink() *markdownSink {
	return &markdownSink{pageBreak: markdownPageBreak}
}

func (s *markdownSink) Begin(title string) {
	meta, err := yamlutil.Marshal(frontMatter{Title: title})
	if err != nil {
		s.err = fmt.Errorf("writing title metadata: %w", err)
		return
	}
	s.b.WriteString("---\n")
	s.b.Write(meta)
	s.b.WriteString("---\n\n")
}

func (s *markdownSink) SectionHeading(name string) {
	s.b.WriteString("# " + markdownInline(name) + "\n\n")
}

func (s *markdownSink) EmptySection() {
	s.b.WriteString("*" + NoticeEmptySection + "*\n\n")
}

func (s *markdownSink) EndSection() {}

func (s *markdownSink) BeginRecipe(string) {}

func (s *markdownSink) RecipeTitle(title string) {
	s.b.WriteString("## " + markdownInline(title) + "\n\n")
}

func (s *markdownSink) Commentary(text string) {
	for _, line := range markdownLines(text) {
		s.b.WriteString(strings.TrimRight("> "+line, " ") + "\n")
	}
	s.b.WriteString("\n")
}

func (s *markdownSink) Meta(prepTime, cookTime, servings string) {
	fmt.Fprintf(&s.b, "**Prep Time**: %s  |  **Cook Time**: %s  |  **Servings**: %s\n\n",
		markdownInline(prepTime), markdownInline(cookTime), markdownInline(servings))
}

func (s *markdownSink) Ingredients(groups []Group) {
	s.b.WriteString("### Ingredients\n\n")
	s.writeGroups(groups, func(int) string { return "-" })
}

func (s *markdownSink) Instructions(groups []Group) {
	s.b.WriteString("### Instructions\n\n")
	s.writeGroups(groups, func(i int) string { return strconv.Itoa(i) + "." })
}

func (s *markdownSink) Notes(notes []string) {
	s.b.WriteString("### Notes\n\n")
	if len(notes) == 1 {
		s.b.WriteString(strings.Join(markdownLines(notes[0]), "\n") + "\n\n")
		return
	}
	for _, note := range notes {
		s.writeItem("-", note)
	}
	s.b.WriteString("\n")
}

func (s *markdownSink) Attribution(text string) {
	s.b.WriteString("*Attribution: " + markdownInline(text) + "*\n\n")
}

func (s *markdownSink) Placeholder(id, notice string) {
	s.b.WriteString("## " + markdownInline(id) + "\n\n*" + notice + "*\n\n")
}

func (s *markdownSink) EndRecipe() {
	s.b.WriteString(s.pageBreak)
}

// Finish writes the Markdown to w.
func (s *markdownSink) Finish(ctx context.Context, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := io.WriteString(w, s.b.String()); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// writeGroups writes each group as an optional #### subheading and a list.
// marker returns the bullet for the 1-based position within the group.
func (s *markdownSink) writeGroups(groups []Group, marker func(int) string) {
	for _, g := range groups {
		if g.Heading != "" {
			s.b.WriteString("#### " + markdownInline(g.Heading) + "\n\n")
		}
		for i, item := range g.Items {
			s.writeItem(marker(i+1), item)
		}
		s.b.WriteString("\n")
	}
}

// writeItem writes one list item. Continuation lines are indented to the
// item's content column so blank lines inside the item do not end the list.
func (s *markdownSink) writeItem(marker, text string) {
	indent := strings.Repeat(" ", len(marker)+1)
	for i, line := range markdownLines(text) {
		switch {
		case i == 0:
			s.b.WriteString(marker + " " + line + "\n")
		case line == "":
			s.b.WriteString("\n")
		default:
			s.b.WriteString(indent + line + "\n")
		}
	}
}

// markdownSpecials are the characters pandoc reads as markup anywhere in a
// line: emphasis, code, links, raw HTML, entities, math, citations, tables.
const markdownSpecials = "\\`*_[]<>#~^$@&|"

// markdownLines splits record text into lines escaped for pandoc.
func markdownLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = escapeMarkdownLine(line)
	}
	return lines
}

// markdownInline escapes text for a single-line context such as a heading.
func markdownInline(text string) string {
	return strings.Join(strings.Fields(strings.Join(markdownLines(text), " ")), " ")
}

// escapeMarkdownLine backslash-escapes markup characters and any block
// marker opening the line (list item, definition, setext underline).
func escapeMarkdownLine(line string) string {
	line = strings.TrimLeft(line, " \t")
	var b strings.Builder
	if n := orderedMarker(line); n > 0 {
		b.WriteString(line[:n] + "\\")
		line = line[n:]
	} else if line != "" && strings.IndexByte("-+=:", line[0]) >= 0 {
		b.WriteByte('\\')
	}
	for i := 0; i < len(line); i++ {
		if strings.IndexByte(markdownSpecials, line[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(line[i])
	}
	return b.String()
}

// documentSink writes the same Markdown with DOCX page breaks and converts
// it with pandoc.
type documentSink struct {
	*markdownSink
	pandoc *pandocConverter
}

func newDocumentSink(runner CommandRunner) *documentSink {
	md := newMarkdownSink()
	md.pageBreak = openXMLPageBreak
	return &documentSink{markdownSink: md, pandoc: &pandocConverter{runner: runner}}
}

// Finish converts the buffered Markdown to DOCX and writes it to w.
func (s *documentSink) Finish(ctx context.Context, w io.Writer) error {
	if s.err != nil {
		return s.err
	}
	docx, err := s.pandoc.ToDocx(ctx, s.b.String())
	if err != nil {
		return fmt.Errorf("converting to document: %w", err)
	}
	if _, err := w.Write(docx); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ Sink = (*markdownSink)(nil)
	_ Sink = (*documentSink)(nil)
)
