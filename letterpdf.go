package notifyutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// A4 page dimensions in inches, with the margins of the letter layout.
const (
	letterPaperWidthInches  = 8.27
	letterPaperHeightInches = 11.69
	letterMarginInches      = 0.47
)

// defaultRenderTimeout bounds one letter render.
const defaultRenderTimeout = 30 * time.Second

// LetterRenderer turns letter preview HTML into a print-ready PDF using
// headless Chrome. The browser is connected lazily on first use and
// reused until Close.
// Rod automatically downloads Chromium on first run if not found.
type LetterRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// LetterRendererOption configures a LetterRenderer.
type LetterRendererOption func(*LetterRenderer)

// WithRenderTimeout sets the per-render timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithRenderTimeout(d time.Duration) LetterRendererOption {
	if d <= 0 {
		panic("notifyutils: WithRenderTimeout duration must be positive")
	}
	return func(r *LetterRenderer) {
		r.timeout = d
	}
}

// NewLetterRenderer creates a LetterRenderer.
func NewLetterRenderer(opts ...LetterRendererOption) *LetterRenderer {
	r := &LetterRenderer{timeout: defaultRenderTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ensureBrowser lazily connects to the browser.
func (r *LetterRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *LetterRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// RenderPDF loads the letter HTML in headless Chrome and prints it to
// an A4 PDF.
func (r *LetterRenderer) RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(htmlContent); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	// Check context after page load
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(letterPaperWidthInches),
		PaperHeight:     floatPtr(letterPaperHeightInches),
		MarginTop:       floatPtr(letterMarginInches),
		MarginBottom:    floatPtr(letterMarginInches),
		MarginLeft:      floatPtr(letterMarginInches),
		MarginRight:     floatPtr(letterMarginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
