package cookbook

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"strings"
)

const pageBreak = "<div class=\"page-break\"></div>\n"

// printData is the data of the print page template.
type printData struct {
	Title string
	CSS   template.CSS
	Body  template.HTML
}

// pdfSink lays the cookbook out as paginated HTML (title page, one page per
// section heading, one page per recipe) and prints it through a pdfConverter.
type pdfSink struct {
	tmpl      *template.Template
	css       string
	md        *inlineMarkdown
	converter pdfConverter
	opts      *pdfOptions

	title       string
	body        strings.Builder
	sectionOpen bool
}

func newPDFSink(loader AssetLoader, style string, md *inlineMarkdown, converter pdfConverter, opts *pdfOptions) (*pdfSink, error) {
	tmplContent, err := loader.LoadTemplate(printTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading print template: %w", err)
	}
	tmpl, err := template.New(printTemplate).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing print template: %v", ErrHTMLRender, err)
	}
	css, err := resolveStyle(loader, style, PrintStyle)
	if err != nil {
		return nil, err
	}
	return &pdfSink{
		tmpl:      tmpl,
		css:       css,
		md:        md,
		converter: converter,
		opts:      opts,
	}, nil
}

func (s *pdfSink) Begin(title string) {
	s.title = title
	s.body.WriteString(`<div class="title-page"><h1>` + html.EscapeString(title) + "</h1></div>\n")
	s.body.WriteString(pageBreak)
}

// SectionHeading opens the section page; it is closed by the first recipe
// or by EndSection.
func (s *pdfSink) SectionHeading(name string) {
	s.body.WriteString(`<div class="section-page"><h1>` + html.EscapeString(name) + "</h1>\n")
	s.sectionOpen = true
}

func (s *pdfSink) EmptySection() {
	s.body.WriteString(`<p class="empty-section">` + NoticeEmptySection + "</p>\n")
}

func (s *pdfSink) EndSection() {
	s.closeSectionPage()
}

func (s *pdfSink) BeginRecipe(string) {
	s.closeSectionPage()
}

func (s *pdfSink) RecipeTitle(title string) {
	s.body.WriteString("<div class=\"recipe\">\n<h2>" + html.EscapeString(title) + "</h2>\n")
}

func (s *pdfSink) Commentary(text string) {
	s.body.WriteString(`<p class="commentary">` + s.md.Render(text) + "</p>\n")
}

func (s *pdfSink) Meta(prepTime, cookTime, servings string) {
	fmt.Fprintf(&s.body,
		"<table class=\"meta\"><tr><td>Prep Time: %s</td><td>Cook Time: %s</td><td>Servings: %s</td></tr></table>\n",
		html.EscapeString(prepTime), html.EscapeString(cookTime), html.EscapeString(servings))
}

// Ingredients opens the two-column table that Instructions closes.
func (s *pdfSink) Ingredients(groups []Group) {
	s.body.WriteString("<table class=\"columns\">\n<tr><th>Ingredients</th><th>Instructions</th></tr>\n<tr><td class=\"ingredients\">\n")
	writeItemGroups(&s.body, groups, "ul")
	s.body.WriteString("</td>\n")
}

func (s *pdfSink) Instructions(groups []Group) {
	s.body.WriteString("<td class=\"instructions\">\n")
	writeItemGroups(&s.body, groups, "ol")
	s.body.WriteString("</td></tr>\n</table>\n")
}

func (s *pdfSink) Notes(notes []string) {
	s.body.WriteString("<div class=\"notes\"><h3>Notes</h3>\n")
	writeNotes(&s.body, notes, s.md)
	s.body.WriteString("</div>\n")
}

func (s *pdfSink) Attribution(text string) {
	s.body.WriteString(`<div class="attribution">Attribution: ` + html.EscapeString(text) + "</div>\n")
}

func (s *pdfSink) Placeholder(id, notice string) {
	s.body.WriteString("<div class=\"recipe missing\">\n<h2>" + html.EscapeString(id) + "</h2>\n")
	s.body.WriteString("<p><em>" + html.EscapeString(notice) + "</em></p>\n")
}

func (s *pdfSink) EndRecipe() {
	s.body.WriteString("</div>\n")
	s.body.WriteString(pageBreak)
}

// Finish renders the print page and converts it to PDF.
func (s *pdfSink) Finish(ctx context.Context, w io.Writer) error {
	htmlContent, err := s.html()
	if err != nil {
		return err
	}
	pdf, err := s.converter.ToPDF(ctx, htmlContent, s.opts)
	if err != nil {
		return fmt.Errorf("converting to PDF: %w", err)
	}
	if _, err := w.Write(pdf); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

// html returns the complete print document.
func (s *pdfSink) html() (string, error) {
	var buf bytes.Buffer
	data := printData{
		Title: s.title,
		CSS:   template.CSS(s.css),            // #nosec G203 -- trusted stylesheet
		Body:  template.HTML(s.body.String()), // #nosec G203 -- every field escaped above
	}
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	return buf.String(), nil
}

func (s *pdfSink) closeSectionPage() {
	if !s.sectionOpen {
		return
	}
	s.body.WriteString("</div>\n")
	s.body.WriteString(pageBreak)
	s.sectionOpen = false
}

// Compile-time interface check.
var _ Sink = (*pdfSink)(nil)
