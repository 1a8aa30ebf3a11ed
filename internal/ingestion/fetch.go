// Package ingestion retrieves a target-job posting from a URL and reduces it
// to plain text suitable for prompt context.
package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeStudio/1.0)"

// maxBodyBytes caps how much of a posting page is read.
const maxBodyBytes = 2 << 20

// Error represents an error during posting retrieval.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ingestion error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("ingestion error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures fetching behavior.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	UseBrowser bool // render JavaScript-heavy pages in headless Chrome
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Result holds the retrieved posting.
type Result struct {
	URL  string
	Text string
}

// FetchJobPosting retrieves the posting at urlStr and extracts its readable
// text. When the extracted text is suspiciously short and browser use is
// enabled, the page is re-rendered in headless Chrome first.
func FetchJobPosting(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	html, err := fetchHTML(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}

	text, err := ExtractText(html)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	if opts.UseBrowser && ShouldUseBrowser(text) {
		rendered, err := renderWithBrowser(ctx, urlStr, opts.Timeout)
		if err != nil {
			return nil, &Error{URL: urlStr, Message: "browser rendering failed", Cause: err}
		}
		if text, err = ExtractText(rendered); err != nil {
			return nil, &Error{URL: urlStr, Message: "failed to extract rendered text", Cause: err}
		}
	}

	return &Result{URL: urlStr, Text: text}, nil
}

func fetchHTML(ctx context.Context, urlStr string, opts *Options) (string, error) {
	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", opts.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read body", Cause: err}
	}
	return string(body), nil
}
