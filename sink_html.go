package cookbook

import (
	"context"
	"fmt"
	"html"
	"html/template"
	"io"
	"strconv"
	"strings"
)

// siteData is the data of the site page template.
type siteData struct {
	Title string
	CSS   template.CSS
	Nav   []navSection
	Body  template.HTML
	Data  []recipeEntry
}

type navSection struct {
	Anchor  string
	Name    string
	Recipes []navRecipe
}

type navRecipe struct {
	ID    string
	Title string
}

// recipeEntry feeds the client-side search script of the site page.
type recipeEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Section     string `json:"section"`
	Ingredients string `json:"ingredients"`
	Missing     bool   `json:"missing,omitempty"`
}

// htmlSink builds a single self-contained HTML page with navigation.
type htmlSink struct {
	tmpl *template.Template
	css  string
	md   *inlineMarkdown

	title   string
	body    strings.Builder
	nav     []navSection
	entries []recipeEntry
	anchors map[string]int

	section      string
	recipeAnchor string
}

func newHTMLSink(loader AssetLoader, style string, md *inlineMarkdown) (*htmlSink, error) {
	tmplContent, err := loader.LoadTemplate(siteTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading site template: %w", err)
	}
	tmpl, err := template.New(siteTemplate).Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing site template: %v", ErrHTMLRender, err)
	}
	css, err := resolveStyle(loader, style, DefaultStyle)
	if err != nil {
		return nil, err
	}
	return &htmlSink{
		tmpl:    tmpl,
		css:     css,
		md:      md,
		anchors: make(map[string]int),
	}, nil
}

func (s *htmlSink) Begin(title string) {
	s.title = title
}

func (s *htmlSink) SectionHeading(name string) {
	s.section = name
	a := sectionAnchor(len(s.nav) + 1)
	s.nav = append(s.nav, navSection{Anchor: a, Name: name})
	s.body.WriteString(`<div class="section" id="` + a + `"><h1>` + html.EscapeString(name) + "</h1>\n")
}

func (s *htmlSink) EmptySection() {
	s.body.WriteString(`<p class="empty-section"><em>` + NoticeEmptySection + "</em></p>\n")
}

func (s *htmlSink) EndSection() {
	s.body.WriteString("</div>\n")
}

func (s *htmlSink) BeginRecipe(id string) {
	s.recipeAnchor = s.uniqueAnchor(id)
}

func (s *htmlSink) RecipeTitle(title string) {
	s.addEntry(title, false)
	s.body.WriteString(`<div class="recipe" id="` + s.recipeAnchor + "\">\n")
	s.body.WriteString("<h2>" + html.EscapeString(title) + "</h2>\n")
}

func (s *htmlSink) Commentary(text string) {
	s.body.WriteString(`<blockquote class="commentary">` + s.md.Render(text) + "</blockquote>\n")
}

func (s *htmlSink) Meta(prepTime, cookTime, servings string) {
	fmt.Fprintf(&s.body,
		"<div class=\"meta\"><strong>Prep Time:</strong> %s | <strong>Cook Time:</strong> %s | <strong>Servings:</strong> %s</div>\n",
		html.EscapeString(prepTime), html.EscapeString(cookTime), html.EscapeString(servings))
}

// Ingredients opens the two-column block that Instructions closes.
func (s *htmlSink) Ingredients(groups []Group) {
	if n := len(s.entries); n > 0 {
		s.entries[n-1].Ingredients = joinItems(groups)
	}
	s.body.WriteString("<div class=\"columns\">\n<div class=\"ingredients\"><h3>Ingredients</h3>\n")
	writeItemGroups(&s.body, groups, "ul")
	s.body.WriteString("</div>\n")
}

func (s *htmlSink) Instructions(groups []Group) {
	s.body.WriteString("<div class=\"instructions\"><h3>Instructions</h3>\n")
	writeItemGroups(&s.body, groups, "ol")
	s.body.WriteString("</div>\n</div>\n")
}

func (s *htmlSink) Notes(notes []string) {
	s.body.WriteString("<div class=\"notes\"><h4>Notes</h4>\n")
	writeNotes(&s.body, notes, s.md)
	s.body.WriteString("</div>\n")
}

func (s *htmlSink) Attribution(text string) {
	s.body.WriteString(`<div class="attribution">Attribution: ` + html.EscapeString(text) + "</div>\n")
}

func (s *htmlSink) Placeholder(id, notice string) {
	s.addEntry(id, true)
	s.body.WriteString(`<div class="recipe missing" id="` + s.recipeAnchor + "\">\n")
	s.body.WriteString("<h2>" + html.EscapeString(id) + "</h2>\n")
	s.body.WriteString("<p><em>" + html.EscapeString(notice) + "</em></p>\n")
}

func (s *htmlSink) EndRecipe() {
	s.body.WriteString("</div>\n")
}

// Finish renders the page template to w.
func (s *htmlSink) Finish(ctx context.Context, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := siteData{
		Title: s.title,
		CSS:   template.CSS(s.css), // #nosec G203 -- trusted stylesheet
		Nav:   s.nav,
		Body:  template.HTML(s.body.String()), // #nosec G203 -- every field escaped above
		Data:  s.entries,
	}
	if data.Data == nil {
		data.Data = []recipeEntry{}
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("%w: %v", ErrHTMLRender, err)
	}
	return nil
}

func (s *htmlSink) addEntry(title string, missing bool) {
	s.entries = append(s.entries, recipeEntry{
		ID:      s.recipeAnchor,
		Title:   title,
		Section: s.section,
		Missing: missing,
	})
	if n := len(s.nav); n > 0 {
		s.nav[n-1].Recipes = append(s.nav[n-1].Recipes, navRecipe{ID: s.recipeAnchor, Title: title})
	}
}

// uniqueAnchor suffixes repeated anchors so every recipe block keeps its own
// id. A suffix already taken by another recipe is skipped.
func (s *htmlSink) uniqueAnchor(id string) string {
	base := anchor(id)
	candidate := base
	for n := s.anchors[base] + 1; s.anchors[candidate] > 0; n++ {
		candidate = base + "-" + strconv.Itoa(n)
		s.anchors[base] = n
	}
	s.anchors[candidate]++
	return candidate
}

// joinItems flattens groups into one searchable line.
func joinItems(groups []Group) string {
	var items []string
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return strings.Join(items, ", ")
}

// Compile-time interface check.
var _ Sink = (*htmlSink)(nil)
