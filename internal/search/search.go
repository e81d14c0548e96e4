// Package search provides fuzzy matching over bookmarks.
package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/mbm/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       model.Bookmark
	Path           string // folder path, e.g. "Bookmarks/Dev"
	MatchedIndexes []int  // indexes into the searched label
	Score          int
}

// label is what a bookmark is matched against: its title, or its URL for
// untitled bookmarks.
func label(title, url string) string {
	if title == "" {
		return url
	}
	return title
}

type bookmarkLabels []model.Bookmark

func (bl bookmarkLabels) String(i int) string {
	return label(bl[i].Title, bl[i].URL)
}

func (bl bookmarkLabels) Len() int {
	return len(bl)
}

// FuzzySearchBookmarks searches all bookmarks by title. Results are sorted
// by match score, best first.
func FuzzySearchBookmarks(store *model.Store, query string) []SearchResult {
	if query == "" {
		return nil
	}

	bookmarks := bookmarkLabels(store.Bookmarks)
	matches := fuzzy.FindFrom(query, bookmarks)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		b := bookmarks[m.Index]
		results[i] = SearchResult{
			Bookmark:       b,
			Path:           store.FolderPath(b.ParentGUID),
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

type nodeLabels []model.Node

func (nl nodeLabels) String(i int) string {
	return label(nl[i].Title, nl[i].URL)
}

func (nl nodeLabels) Len() int {
	return len(nl)
}

// FilterNodes keeps the nodes whose title fuzzy-matches query, in their
// original order. An empty query keeps everything.
func FilterNodes(nodes []model.Node, query string) []model.Node {
	if query == "" {
		return nodes
	}

	matches := fuzzy.FindFrom(query, nodeLabels(nodes))
	keep := make(map[int]bool, len(matches))
	for _, m := range matches {
		keep[m.Index] = true
	}

	var result []model.Node
	for i, n := range nodes {
		if keep[i] {
			result = append(result, n)
		}
	}
	return result
}
