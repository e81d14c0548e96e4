// Package importer reads Netscape bookmark files into mobile-root nodes.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/mbm/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML. Top-level entries are
// parented to the mobile root and Position holds each node's index in the
// file, across folders and bookmarks. Pass the result to Store.ImportMerge.
func ParseHTMLBookmarks(r io.Reader) ([]model.Folder, []model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	p := &parser{stack: []string{model.MobileRoot}}
	p.walk(doc)
	return p.folders, p.bookmarks, nil
}

type parser struct {
	folders   []model.Folder
	bookmarks []model.Bookmark
	stack     []string // folder GUIDs, root at the bottom
	pending   string   // H3 folder waiting for its DL
	seq       int
}

// next returns the file index for the next node.
func (p *parser) next() int {
	p.seq++
	return p.seq
}

func (p *parser) parent() string {
	return p.stack[len(p.stack)-1]
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "h3":
			if title := textContent(n); title != "" {
				f := model.NewFolder(model.NewFolderParams{Title: title, ParentGUID: p.parent()})
				f.Position = p.next()
				p.folders = append(p.folders, f)
				p.pending = f.GUID
			}
			return

		case "a":
			href := attr(n, "href")
			if href == "" {
				return
			}
			b := model.NewBookmark(model.NewBookmarkParams{
				Title:      textContent(n),
				URL:        href,
				ParentGUID: p.parent(),
			})
			b.Position = p.next()
			if ts, ok := unixAttr(n, "add_date"); ok {
				b.CreatedAt = ts
			}
			if ts, ok := unixAttr(n, "last_visit"); ok {
				b.VisitedAt = &ts
			}
			p.bookmarks = append(p.bookmarks, b)
			return

		case "dl":
			pushed := false
			if p.pending != "" {
				p.stack = append(p.stack, p.pending)
				p.pending = ""
				pushed = true
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				p.walk(c)
			}
			if pushed {
				p.stack = p.stack[:len(p.stack)-1]
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func unixAttr(n *html.Node, key string) (time.Time, bool) {
	v := attr(n, key)
	if v == "" {
		return time.Time{}, false
	}
	ts, err := strconv.ParseInt(v, 10, 64)
	if err != nil || ts <= 0 {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// attr returns an attribute value, case-insensitive.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
