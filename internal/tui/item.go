package tui

import (
	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/model"
)

// Item is one row of the bookmarks list.
type Item struct {
	Node model.Node
	Icon string // letter icon such as "[G]", bookmarks only
}

// letterIcon renders the placeholder icon of a page.
func letterIcon(title, url string) string {
	return "[" + browser.LetterIcon(title, url) + "]"
}

func newItem(n model.Node) Item {
	item := Item{Node: n}
	if !n.IsFolder() {
		item.Icon = letterIcon(n.Title, n.URL)
	}
	return item
}

// GUID returns the node GUID.
func (i Item) GUID() string {
	return i.Node.GUID
}

// Title returns the display title. Untitled bookmarks show their URL.
func (i Item) Title() string {
	if i.Node.Title == "" && !i.IsFolder() {
		return i.Node.URL
	}
	return i.Node.Title
}

// URL returns the bookmark URL, empty for folders.
func (i Item) URL() string {
	return i.Node.URL
}

// IsFolder returns true if this item is a folder.
func (i Item) IsFolder() bool {
	return i.Node.IsFolder()
}
