package cookbook

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	result  []byte
	err     error
	path    string
	content string
	opts    *pdfOptions
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	m.path = filePath
	m.opts = opts
	if data, err := os.ReadFile(filepath.Clean(filePath)); err == nil {
		m.content = string(data)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockCloser implements io.Closer for testing.
type mockCloser struct {
	closed bool
	err    error
}

func (m *mockCloser) Close() error {
	m.closed = true
	return m.err
}

// ---------------------------------------------------------------------------
// TestRodConverter - Temp file handling around the renderer
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	renderer := &mockRenderer{result: []byte("%PDF")}
	conv := &rodConverter{renderer: renderer}
	opts := &pdfOptions{Page: DefaultPageSettings()}

	got, err := conv.ToPDF(context.Background(), "<p>hello</p>", opts)
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if string(got) != "%PDF" {
		t.Errorf("ToPDF() = %q, want %q", got, "%PDF")
	}
	if renderer.content != "<p>hello</p>" {
		t.Errorf("renderer read %q, want the HTML content", renderer.content)
	}
	if !strings.Contains(filepath.Base(renderer.path), "cookbook-") || !strings.HasSuffix(renderer.path, ".html") {
		t.Errorf("temp path = %q, want cookbook-*.html", renderer.path)
	}
	if renderer.opts != opts {
		t.Error("options were not forwarded")
	}
	if _, err := os.Stat(renderer.path); !os.IsNotExist(err) {
		t.Error("temp file should be removed after rendering")
	}
}

func TestRodConverter_RendererError(t *testing.T) {
	t.Parallel()

	conv := &rodConverter{renderer: &mockRenderer{err: ErrPageLoad}}
	_, err := conv.ToPDF(context.Background(), "<p></p>", nil)
	if !errors.Is(err, ErrPageLoad) {
		t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
	}
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to closer", func(t *testing.T) {
		t.Parallel()

		closer := &mockCloser{}
		conv := &rodConverter{renderer: &mockRenderer{}, closer: closer}
		if err := conv.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		if !closer.closed {
			t.Error("closer was not called")
		}
	})

	t.Run("nil closer", func(t *testing.T) {
		t.Parallel()

		conv := &rodConverter{renderer: &mockRenderer{}}
		if err := conv.Close(); err != nil {
			t.Errorf("Close() error = %v, want nil", err)
		}
	})
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(0)
	if err := r.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
}

func TestRodRenderer_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(0)
	if _, err := r.RenderFromFile(ctx, "/nonexistent.html", nil); !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions - Paper geometry and footer
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         *pdfOptions
		wantWidth    float64
		wantHeight   float64
		wantMargin   float64
		wantBottom   float64
		wantFooterOn bool
	}{
		{
			name:       "nil options use letter portrait",
			opts:       nil,
			wantWidth:  8.5,
			wantHeight: 11,
			wantMargin: DefaultMargin,
			wantBottom: DefaultMargin,
		},
		{
			name:       "a4",
			opts:       &pdfOptions{Page: &PageSettings{Size: PageSizeA4, Orientation: OrientationPortrait, Margin: 1}},
			wantWidth:  8.27,
			wantHeight: 11.69,
			wantMargin: 1,
			wantBottom: 1,
		},
		{
			name:       "empty fields take defaults",
			opts:       &pdfOptions{Page: &PageSettings{Size: PageSizeA4}},
			wantWidth:  8.27,
			wantHeight: 11.69,
			wantMargin: DefaultMargin,
			wantBottom: DefaultMargin,
		},
		{
			name:       "legal landscape",
			opts:       &pdfOptions{Page: &PageSettings{Size: PageSizeLegal, Orientation: OrientationLandscape, Margin: 0.5}},
			wantWidth:  14,
			wantHeight: 8.5,
			wantMargin: 0.5,
			wantBottom: 0.5,
		},
		{
			name:         "footer reserves bottom margin",
			opts:         &pdfOptions{Page: DefaultPageSettings(), Footer: &Footer{ShowPageNumber: true}},
			wantWidth:    8.5,
			wantHeight:   11,
			wantMargin:   DefaultMargin,
			wantBottom:   DefaultMargin + footerMarginInches,
			wantFooterOn: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildPDFOptions(tt.opts)
			if *got.PaperWidth != tt.wantWidth || *got.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %vx%v, want %vx%v", *got.PaperWidth, *got.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			if *got.MarginTop != tt.wantMargin || *got.MarginLeft != tt.wantMargin || *got.MarginRight != tt.wantMargin {
				t.Errorf("margins = %v/%v/%v, want %v", *got.MarginTop, *got.MarginLeft, *got.MarginRight, tt.wantMargin)
			}
			if *got.MarginBottom != tt.wantBottom {
				t.Errorf("MarginBottom = %v, want %v", *got.MarginBottom, tt.wantBottom)
			}
			if got.DisplayHeaderFooter != tt.wantFooterOn {
				t.Errorf("DisplayHeaderFooter = %v, want %v", got.DisplayHeaderFooter, tt.wantFooterOn)
			}
			if !got.PrintBackground {
				t.Error("PrintBackground should be enabled")
			}
		})
	}
}

func TestBuildFooterTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		footer   *Footer
		contains []string
		equals   string
	}{
		{name: "nil footer", footer: nil, equals: "<span></span>"},
		{name: "nothing to show", footer: &Footer{}, equals: "<span></span>"},
		{
			name:     "page number right by default",
			footer:   &Footer{ShowPageNumber: true},
			contains: []string{`class="pageNumber"`, `class="totalPages"`, "text-align: right"},
		},
		{
			name:     "text centered and escaped",
			footer:   &Footer{Position: "Center", Text: "Mom & Dad"},
			contains: []string{"Mom &amp; Dad", "text-align: center"},
		},
		{
			name:     "both joined",
			footer:   &Footer{Position: "left", ShowPageNumber: true, Text: "Family"},
			contains: []string{`</span> - Family`, "text-align: left"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildFooterTemplate(tt.footer)
			if tt.equals != "" && got != tt.equals {
				t.Errorf("buildFooterTemplate() = %q, want %q", got, tt.equals)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("buildFooterTemplate() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestFooterAlign(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"": "right", "LEFT": "left", "center": "center", "right": "right", "top": "right"} {
		if got := footerAlign(in); got != want {
			t.Errorf("footerAlign(%q) = %q, want %q", in, got, want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBrowserSettingsFromEnv - Chrome launch configuration
// ---------------------------------------------------------------------------

func TestBrowserSettingsFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		bin       string
		noSandbox string
		ci        string
		want      browserSettings
	}{
		{"defaults", "", "", "", browserSettings{}},
		{"custom binary", "/usr/bin/chromium", "", "", browserSettings{bin: "/usr/bin/chromium"}},
		{"no sandbox", "", "1", "", browserSettings{noSandbox: true}},
		{"ci", "", "", "true", browserSettings{noSandbox: true}},
		{"sandbox flag must be 1", "", "yes", "", browserSettings{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ROD_BROWSER_BIN", tt.bin)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("CI", tt.ci)

			if got := browserSettingsFromEnv(); got != tt.want {
				t.Errorf("browserSettingsFromEnv() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
