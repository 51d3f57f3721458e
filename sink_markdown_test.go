package cookbook

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func renderMarkdown(t *testing.T, doc Document) string {
	t.Helper()
	sink := newMarkdownSink()
	if _, err := Render(context.Background(), doc, sink); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var buf bytes.Buffer
	if err := sink.Finish(context.Background(), &buf); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	return buf.String()
}

// ---------------------------------------------------------------------------
// TestMarkdownSink - Pandoc Markdown output
// ---------------------------------------------------------------------------

func TestMarkdownSink_Output(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title: "My Book",
		Structure: &Structure{Sections: []Section{
			{Name: "Mains", Recipes: []string{"soup", "missing-id"}},
			{Name: "Desserts"},
		}},
		Loader: NewLoader(MapStore{"soup": []byte(`title: Soup
commentary: |-
  Warm.
  Filling.
prep_time: 10 min
ingredients: [water, salt]
instructions:
  Prep: [chop]
  Cook: [boil, season]
notes: [freezes well, keeps a week]
attribution: Grandma
`)}),
	}

	want := "---\ntitle: My Book\n---\n\n" +
		"# Mains\n\n" +
		"## Soup\n\n" +
		"> Warm.\n> Filling.\n\n" +
		"**Prep Time**: 10 min  |  **Cook Time**:   |  **Servings**: \n\n" +
		"### Ingredients\n\n- water\n- salt\n\n" +
		"### Instructions\n\n#### Prep\n\n1. chop\n\n#### Cook\n\n1. boil\n2. season\n\n" +
		"### Notes\n\n- freezes well\n- keeps a week\n\n" +
		"*Attribution: Grandma*\n\n" +
		"\\newpage\n\n" +
		"## missing-id\n\n*" + NoticeNotFound + "*\n\n" +
		"\\newpage\n\n" +
		"# Desserts\n\n" +
		"*" + NoticeEmptySection + "*\n\n"

	if got := renderMarkdown(t, doc); got != want {
		t.Errorf("markdown output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdownSink_SingleNote(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:     "T",
		Structure: &Structure{Sections: []Section{{Name: "S", Recipes: []string{"x"}}}},
		Loader:    NewLoader(MapStore{"x": []byte("title: X\nnotes: serve hot\n")}),
	}
	if got := renderMarkdown(t, doc); !strings.Contains(got, "### Notes\n\nserve hot\n\n") {
		t.Errorf("single note should be a paragraph, got:\n%s", got)
	}
}

func TestMarkdownSink_EscapesRecordText(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:     "T",
		Structure: &Structure{Sections: []Section{{Name: "S", Recipes: []string{"x"}}}},
		Loader: NewLoader(MapStore{"x": []byte(`title: "Pie #2"
commentary: "From <grandma>"
ingredients: ["<salsa verde>", "2*3 cups", "1. sift the flour"]
`)}),
	}
	got := renderMarkdown(t, doc)

	for _, want := range []string{
		"## Pie \\#2\n",
		"> From \\<grandma\\>\n",
		"- \\<salsa verde\\>\n",
		"- 2\\*3 cups\n",
		"- 1\\. sift the flour\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q, got:\n%s", want, got)
		}
	}
}

func TestMarkdownSink_MultilineItemStaysInList(t *testing.T) {
	t.Parallel()

	doc := Document{
		Title:     "T",
		Structure: &Structure{Sections: []Section{{Name: "S", Recipes: []string{"x"}}}},
		Loader: NewLoader(MapStore{"x": []byte(`title: X
instructions:
  - |-
    Boil water.

    Add salt.
  - Serve
notes:
  - |-
    line one
    line two
  - short
`)}),
	}
	got := renderMarkdown(t, doc)

	if want := "1. Boil water.\n\n   Add salt.\n2. Serve\n"; !strings.Contains(got, want) {
		t.Errorf("instructions = %q, want them to contain %q", got, want)
	}
	if want := "- line one\n  line two\n- short\n"; !strings.Contains(got, want) {
		t.Errorf("notes = %q, want them to contain %q", got, want)
	}
}

func TestEscapeMarkdownLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want string
	}{
		{"plain words", "plain words"},
		{"<b>", `\<b\>`},
		{"a_b [c]", `a\_b \[c\]`},
		{"$5 & @ref", `\$5 \& \@ref`},
		{"- dash", `\- dash`},
		{"---", `\---`},
		{": term", `\: term`},
		{"10) step", `10\) step`},
		{"  indented", "indented"},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			if got := escapeMarkdownLine(tt.line); got != tt.want {
				t.Errorf("escapeMarkdownLine(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestMarkdownSink_CancelledFinish(t *testing.T) {
	t.Parallel()

	sink := newMarkdownSink()
	sink.Begin("T")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Finish(ctx, &bytes.Buffer{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Finish() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestDocumentSink - DOCX through pandoc
// ---------------------------------------------------------------------------

func TestDocumentSink_UsesOpenXMLBreaks(t *testing.T) {
	t.Parallel()

	runner := &mockCommandRunner{output: []byte("PK docx")}
	sink := newDocumentSink(runner)
	doc := Document{
		Title:     "T",
		Structure: &Structure{Sections: []Section{{Name: "S", Recipes: []string{"a", "b"}}}},
		Loader:    NewLoader(MapStore{}),
	}
	if _, err := Render(context.Background(), doc, sink); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var buf bytes.Buffer
	if err := sink.Finish(context.Background(), &buf); err != nil {
		t.Fatalf("Finish() error = %v", err)
	}
	if buf.String() != "PK docx" {
		t.Errorf("Finish() wrote %q, want pandoc output", buf.String())
	}
	if n := strings.Count(runner.input, `<w:br w:type="page"/>`); n != 2 {
		t.Errorf("got %d OpenXML page breaks, want 2", n)
	}
	if strings.Contains(runner.input, "\\newpage") {
		t.Error("document markdown should not contain \\newpage")
	}
}

func TestDocumentSink_PandocError(t *testing.T) {
	t.Parallel()

	sink := newDocumentSink(&mockCommandRunner{err: errors.New("exit status 1"), stderr: "boom"})
	sink.Begin("T")
	err := sink.Finish(context.Background(), &bytes.Buffer{})
	if !errors.Is(err, ErrPandoc) {
		t.Errorf("Finish() error = %v, want ErrPandoc", err)
	}
}

// readArg returns the argument following flag in args.
func readArg(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}

// mockCommandRunner implements CommandRunner for testing. It records the
// call, reads the pandoc input file and writes output to the -o path.
type mockCommandRunner struct {
	output []byte
	stderr string
	err    error

	name  string
	args  []string
	input string
}

func (m *mockCommandRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	m.name = name
	m.args = args
	if len(args) > 0 {
		if data, err := os.ReadFile(filepath.Clean(args[0])); err == nil {
			m.input = string(data)
		}
	}
	if m.err != nil {
		return "", m.stderr, m.err
	}
	if out := readArg(args, "-o"); out != "" {
		if err := os.WriteFile(out, m.output, 0o600); err != nil {
			return "", "", err
		}
	}
	return "", "", nil
}
