package search_test

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/search"
)

func newStore(t *testing.T) *model.Store {
	t.Helper()
	s := model.NewStore()
	dev, err := s.AddFolder(model.Folder{Title: "Dev"})
	assert.NilError(t, err)
	for _, b := range []model.Bookmark{
		{Title: "GitHub", URL: "https://github.com", ParentGUID: dev.GUID},
		{Title: "GitLab", URL: "https://gitlab.com"},
		{Title: "Hacker News", URL: "https://news.ycombinator.com"},
		{URL: "https://gitea.io"},
	} {
		_, err := s.AddBookmark(b)
		assert.NilError(t, err)
	}
	return s
}

func TestFuzzySearchBookmarks(t *testing.T) {
	s := newStore(t)

	results := search.FuzzySearchBookmarks(s, "git")

	assert.Assert(t, is.Len(results, 3))
	paths := map[string]string{}
	for _, r := range results {
		paths[r.Bookmark.URL] = r.Path
	}
	assert.Equal(t, paths["https://github.com"], "Bookmarks/Dev")
	assert.Equal(t, paths["https://gitlab.com"], "Bookmarks")
	_, untitled := paths["https://gitea.io"]
	assert.Assert(t, untitled, "untitled bookmarks match on URL")
}

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	assert.Assert(t, search.FuzzySearchBookmarks(newStore(t), "") == nil)
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	assert.Check(t, is.Len(search.FuzzySearchBookmarks(newStore(t), "zzzz"), 0))
}

func TestFilterNodes_KeepsOrder(t *testing.T) {
	nodes := []model.Node{
		{Title: "Reading"},
		{Title: "GitHub"},
		{Title: "Go"},
		{Title: "News"},
	}

	got := search.FilterNodes(nodes, "g")

	var titles []string
	for _, n := range got {
		titles = append(titles, n.Title)
	}
	assert.DeepEqual(t, titles, []string{"Reading", "GitHub", "Go"})
	assert.Check(t, is.Len(search.FilterNodes(nodes, ""), 4))
}
