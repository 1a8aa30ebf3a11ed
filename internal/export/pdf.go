// Package export turns a rendered resume preview into a PDF by printing it
// from headless Chrome, so the output matches the on-screen preview exactly.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// DefaultTimeout bounds a single PDF export.
const DefaultTimeout = 60 * time.Second

// Error represents a failure to produce a PDF.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures PDF generation.
type Options struct {
	Timeout time.Duration
}

// PrintPDF loads previewURL in headless Chrome and prints it to PDF with
// zero margins, matching the preview's own print stylesheet.
func PrintPDF(ctx context.Context, previewURL string, opts *Options) ([]byte, error) {
	timeout := DefaultTimeout
	if opts != nil && opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(previewURL),
		chromedp.WaitReady("#resume-preview"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, &Error{Message: "failed to print preview", Cause: err}
	}
	return pdf, nil
}
