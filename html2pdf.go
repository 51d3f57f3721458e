package cookbook

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-cookbook/internal/fileutil"
	"github.com/alnah/go-cookbook/internal/process"
)

// pdfConverter prints an HTML page to PDF.
type pdfConverter interface {
	ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints an HTML file already on disk. Split from pdfConverter
// so the temp-file handling is testable without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error)
}

var (
	_ pdfConverter = (*rodConverter)(nil)
	_ pdfRenderer  = (*rodRenderer)(nil)
)

// pdfOptions is the paper and footer setup of one print.
type pdfOptions struct {
	Page   *PageSettings
	Footer *Footer
}

const (
	footerMarginInches = 0.25 // added to the bottom margin when a footer is shown
	footerFontFamily   = "Arial, Helvetica, sans-serif"
	emptyFooter        = "<span></span>"
)

// browserSettings selects and configures the Chrome binary.
type browserSettings struct {
	bin       string // ROD_BROWSER_BIN; empty lets rod find or download one
	noSandbox bool   // ROD_NO_SANDBOX=1 or CI=true
}

func browserSettingsFromEnv() browserSettings {
	return browserSettings{
		bin:       os.Getenv("ROD_BROWSER_BIN"),
		noSandbox: os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true",
	}
}

func (s browserSettings) launcher() *launcher.Launcher {
	l := launcher.New()
	if s.bin != "" {
		l = l.Bin(s.bin)
	}
	if s.noSandbox {
		l = l.NoSandbox(true)
	}
	return l
}

// rodRenderer drives one headless Chrome, started on first use and reused
// for every print until Close.
type rodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration // page load limit when ctx has no deadline
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := browserSettingsFromEnv().launcher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// Close shuts the browser down and kills whatever Chrome left behind.
func (r *rodRenderer) Close() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	process.KillProcessGroup(r.launcher.PID())
	r.launcher.Kill()
	r.launcher = nil
}

// RenderFromFile loads filePath in a new tab and prints it. The tab is
// bound to ctx, so cancellation aborts the load and the print.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *pdfOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	if _, ok := ctx.Deadline(); !ok && r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = page.Close() }()
	page = page.Context(ctx)

	if err := page.WaitLoad(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	stream, err := page.PDF(buildPDFOptions(opts))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return data, nil
}

// buildPDFOptions maps page settings and the optional footer to Chrome's
// print parameters. Empty page fields take the defaults.
func buildPDFOptions(opts *pdfOptions) *proto.PagePrintToPDF {
	var page *PageSettings
	var footer *Footer
	if opts != nil {
		page, footer = opts.Page, opts.Footer
	}
	page = page.withDefaults()

	width, height := page.Dimensions()
	bottom := page.Margin
	if footer != nil {
		bottom += footerMarginInches
	}

	out := &proto.PagePrintToPDF{
		PaperWidth:      &width,
		PaperHeight:     &height,
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    &bottom,
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
	if footer != nil {
		out.DisplayHeaderFooter = true
		out.HeaderTemplate = emptyFooter
		out.FooterTemplate = buildFooterTemplate(footer)
	}
	return out
}

// buildFooterTemplate renders the footer for Chrome's header/footer
// engine, which fills the pageNumber and totalPages classes itself.
func buildFooterTemplate(footer *Footer) string {
	if footer == nil {
		return emptyFooter
	}

	var parts []string
	if footer.ShowPageNumber {
		parts = append(parts, `<span class="pageNumber"></span>/<span class="totalPages"></span>`)
	}
	if footer.Text != "" {
		parts = append(parts, html.EscapeString(footer.Text))
	}
	if len(parts) == 0 {
		return emptyFooter
	}

	return fmt.Sprintf(`<div style="font-size: 10px; font-family: %s; color: #aaa; width: 100%%; text-align: %s; padding: 0 0.5in;">%s</div>`,
		footerFontFamily, footerAlign(footer.Position), strings.Join(parts, " - "))
}

// footerAlign maps a footer position to a CSS text-align value.
func footerAlign(position string) string {
	switch p := strings.ToLower(position); p {
	case "left", "center":
		return p
	}
	return "right"
}

func floatPtr(v float64) *float64 {
	return &v
}

// rodConverter is the production pdfConverter.
type rodConverter struct {
	renderer pdfRenderer
	closer   io.Closer
}

func newRodConverter(timeout time.Duration) *rodConverter {
	r := newRodRenderer(timeout)
	return &rodConverter{renderer: r, closer: r}
}

// ToPDF writes the page to a temp file, so the browser loads it from a
// file URL, and prints it. The file is removed afterwards.
func (c *rodConverter) ToPDF(ctx context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	path, cleanup, err := fileutil.WriteTempFile(htmlContent, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return c.renderer.RenderFromFile(ctx, path, opts)
}

func (c *rodConverter) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
