package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultFetchTimeout is the default HTTP timeout for FetchURL
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests
const DefaultUserAgent = "Mozilla/5.0 (compatible; Resu/1.0)"

// maxPageBytes bounds how much of a fetched page is read
const maxPageBytes = 5 << 20

var htmlTag = regexp.MustCompile(`(?i)<(html|body|div|p|ul|ol|li|br|h[1-6]|span|section|article|table)[\s>/]`)

// noiseSelectors are removed before text extraction
const noiseSelectors = "nav, footer, header, script, style, noscript, iframe, form, svg, " +
	".ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup, [aria-hidden='true']"

// blockSelectors end with a line break in the extracted text
const blockSelectors = "p, div, section, article, h1, h2, h3, h4, h5, h6, tr, ul, ol, li, dt, dd, blockquote"

// JobPostingSelectors returns selectors for the main content of job board pages,
// most specific first.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		".job-content",
		"#job-description",
		"#job-content",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		".content",
		"#content",
	}
}

// LooksLikeHTML reports whether s appears to be an HTML document or fragment
func LooksLikeHTML(s string) bool {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html") {
		return true
	}
	return htmlTag.MatchString(trimmed)
}

// HTMLToText extracts the main text of an HTML page. Noise elements are
// removed, block elements become line breaks and list items become
// markdown bullets.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(noiseSelectors).Remove()

	var main *goquery.Selection
	for _, selector := range JobPostingSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			main = selection.First()
			break
		}
	}
	if main == nil {
		main = doc.Find("body")
	}

	main.Find("br").ReplaceWithHtml("\n")
	main.Find("li").PrependHtml("- ")
	main.Find("h1, h2, h3").PrependHtml("\n")
	main.Find(blockSelectors).AppendHtml("\n")

	return cleanWhitespace(main.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

// FetchError represents an error during URL fetching
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchURL downloads a job posting page and prepares its text
func FetchURL(ctx context.Context, client *http.Client, urlStr string) (*Document, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", DefaultUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	doc, err := Prepare(string(body), SourceURL, urlStr)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	return doc, nil
}
