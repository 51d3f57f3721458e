package cookbook

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// mockPDFConverter implements pdfConverter for testing.
type mockPDFConverter struct {
	html   string
	opts   *pdfOptions
	result []byte
	err    error
	closed bool
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.html = htmlContent
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

func renderPrint(t *testing.T, doc Document, conv *mockPDFConverter, opts *pdfOptions) ([]byte, error) {
	t.Helper()
	sink, err := newPDFSink(embeddedAssetLoader(), "", newInlineMarkdown(), conv, opts)
	if err != nil {
		t.Fatalf("newPDFSink() error = %v", err)
	}
	if _, err := Render(context.Background(), doc, sink); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var buf bytes.Buffer
	err = sink.Finish(context.Background(), &buf)
	return buf.Bytes(), err
}

// ---------------------------------------------------------------------------
// TestPDFSink - Paginated print layout
// ---------------------------------------------------------------------------

func TestPDFSink_Layout(t *testing.T) {
	t.Parallel()

	conv := &mockPDFConverter{result: []byte("%PDF-1.4")}
	opts := &pdfOptions{Page: DefaultPageSettings()}
	out, err := renderPrint(t, soupDocument(), conv, opts)
	if err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if string(out) != "%PDF-1.4" {
		t.Errorf("Finish() wrote %q, want converter output", out)
	}
	if conv.opts != opts {
		t.Error("page options were not passed to the converter")
	}

	ordered := []string{
		`<div class="title-page"><h1>Family &lt;Recipes&gt;</h1></div>`,
		`<div class="page-break"></div>`,
		`<div class="section-page"><h1>Mains</h1>`,
		`<div class="page-break"></div>`,
		"<h2>Soup &amp; Bread</h2>",
		`<p class="commentary">Best with <strong>fresh</strong> bread.</p>`,
		"<td>Prep Time: 10 min</td><td>Cook Time: 30 min</td><td>Servings: 4</td>",
		"<tr><th>Ingredients</th><th>Instructions</th></tr>",
		`<td class="ingredients">`,
		"<h4>Broth</h4>",
		`<td class="instructions">`,
		"<li>serve</li>",
		"<h3>Notes</h3>",
		"Attribution: Grandma",
		`<div class="page-break"></div>`,
		`<div class="recipe missing">`,
		"<h2>missing-id</h2>",
		NoticeNotFound,
		`<div class="page-break"></div>`,
		`<div class="section-page"><h1>Desserts</h1>`,
		NoticeEmptySection,
		`<div class="page-break"></div>`,
	}

	pos := 0
	for _, want := range ordered {
		idx := strings.Index(conv.html[pos:], want)
		if idx < 0 {
			t.Fatalf("print HTML missing %q after position %d", want, pos)
		}
		pos += idx + len(want)
	}

	if strings.Count(conv.html, "<div") != strings.Count(conv.html, "</div>") {
		t.Error("print HTML has unbalanced divs")
	}
}

func TestPDFSink_KeepsTagLikeProse(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:     "T",
		Structure: &Structure{Sections: []Section{{Name: "S", Recipes: []string{"x"}}}},
		Loader: NewLoader(MapStore{"x": []byte(`title: X
commentary: "Serve with <salsa verde>"
notes: "Keeps <two> days"
`)}),
	}
	conv := &mockPDFConverter{result: []byte("pdf")}
	if _, err := renderPrint(t, doc, conv, nil); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}

	for _, want := range []string{
		`<p class="commentary">Serve with &lt;salsa verde&gt;</p>`,
		"<p>Keeps &lt;two&gt; days</p>",
	} {
		if !strings.Contains(conv.html, want) {
			t.Errorf("print HTML missing %q", want)
		}
	}
}

func TestPDFSink_ConverterError(t *testing.T) {
	t.Parallel()

	conv := &mockPDFConverter{err: ErrPDFGeneration}
	_, err := renderPrint(t, soupDocument(), conv, &pdfOptions{Page: DefaultPageSettings()})
	if !errors.Is(err, ErrPDFGeneration) {
		t.Errorf("Finish() error = %v, want ErrPDFGeneration", err)
	}
}

func TestPDFSink_CustomStyleFile(t *testing.T) {
	t.Parallel()

	path := t.TempDir() + "/custom.css"
	writeTestFile(t, path, "body { color: teal; }")

	conv := &mockPDFConverter{result: []byte("pdf")}
	sink, err := newPDFSink(embeddedAssetLoader(), path, newInlineMarkdown(), conv, nil)
	if err != nil {
		t.Fatalf("newPDFSink() error = %v", err)
	}
	sink.Begin("T")
	if err := sink.Finish(context.Background(), &bytes.Buffer{}); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if !strings.Contains(conv.html, "color: teal") {
		t.Error("custom stylesheet was not embedded")
	}
}

func TestNewPDFSink_MissingTemplate(t *testing.T) {
	t.Parallel()

	_, err := newPDFSink(&mockAssetLoader{}, "", newInlineMarkdown(), &mockPDFConverter{}, nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("newPDFSink() error = %v, want ErrTemplateNotFound", err)
	}
}
