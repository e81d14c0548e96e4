// Package browser loads web pages for the browser screen and hands URLs to
// the outside world (clipboard, system browser).
package browser

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// Page is a loaded web page.
type Page struct {
	URL        string
	Title      string
	FaviconURL string
}

// DisplayTitle returns the page title, or the URL for untitled pages.
func (p Page) DisplayTitle() string {
	if p.Title == "" {
		return p.URL
	}
	return p.Title
}

// Loader fetches a page by URL.
type Loader interface {
	Load(ctx context.Context, rawURL string) (Page, error)
}

// maxPageBytes bounds how much of a response body is parsed.
const maxPageBytes = 2 << 20

// HTTPLoader loads pages over HTTP.
type HTTPLoader struct {
	Client *http.Client
	Log    zerolog.Logger
}

// NewHTTPLoader creates a loader with the given request timeout.
func NewHTTPLoader(timeout time.Duration, log zerolog.Logger) *HTTPLoader {
	return &HTTPLoader{
		Client: &http.Client{Timeout: timeout},
		Log:    log,
	}
}

// Load fetches rawURL and extracts its title and favicon.
func (l *HTTPLoader) Load(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("load %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; mbm/1.0)")

	resp, err := l.Client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("load %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Page{}, fmt.Errorf("load %s: HTTP %d", rawURL, resp.StatusCode)
	}

	page, err := ParsePage(resp.Request.URL.String(), io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return Page{}, err
	}
	l.Log.Debug().Str("url", page.URL).Str("title", page.Title).Msg("page loaded")
	return page, nil
}

// ParsePage extracts the <title> and icon link from an HTML document.
// Relative favicon links are resolved against pageURL; without an icon link
// the favicon defaults to /favicon.ico on the page's host.
func ParsePage(pageURL string, r io.Reader) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	page := Page{URL: pageURL}
	var icon string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if page.Title == "" {
					page.Title = strings.TrimSpace(textContent(n))
				}
			case "link":
				if icon == "" && isIconRel(attr(n, "rel")) {
					icon = attr(n, "href")
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	page.FaviconURL = resolveIcon(pageURL, icon)
	return page, nil
}

func isIconRel(rel string) bool {
	for _, part := range strings.Fields(strings.ToLower(rel)) {
		if part == "icon" {
			return true
		}
	}
	return false
}

func resolveIcon(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return ""
	}
	if href == "" {
		href = "/favicon.ico"
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// LetterIcon returns the placeholder icon for a bookmark: the upper-cased
// first letter of its host without a leading "www.". Hosts that do not
// start with a letter, such as IP addresses, fall back to the first letter
// of the title. Without either the icon is "#".
func LetterIcon(title, rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if l, ok := firstLetter(host); ok {
			return l
		}
	}
	if l, ok := firstLetter(title); ok {
		return l
	}
	return "#"
}

func firstLetter(s string) (string, bool) {
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return "", false
	}
	return strings.ToUpper(string(r)), true
}
