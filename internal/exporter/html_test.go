package exporter_test

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/exporter"
	"github.com/nikbrunner/mbm/internal/importer"
	"github.com/nikbrunner/mbm/internal/model"
)

func TestExportHTML_EmptyStore(t *testing.T) {
	got := exporter.ExportHTML(model.NewStore())

	assert.Check(t, strings.HasPrefix(got, "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Check(t, is.Contains(got, "<H1>Bookmarks</H1>"))
	assert.Check(t, !strings.Contains(got, "<DT>"))
}

func TestExportHTML_BookmarkInFolder(t *testing.T) {
	store := model.NewStore()
	created := time.Unix(1700000000, 0)
	visited := time.Unix(1700000500, 0)
	f, err := store.AddFolder(model.Folder{Title: "Dev"})
	assert.NilError(t, err)
	_, err = store.AddBookmark(model.Bookmark{
		Title: "Go", URL: "https://go.dev", ParentGUID: f.GUID,
		CreatedAt: created, VisitedAt: &visited,
	})
	assert.NilError(t, err)

	got := exporter.ExportHTML(store)

	assert.Check(t, is.Contains(got, "    <DT><H3>Dev</H3>\n"))
	assert.Check(t, is.Contains(got,
		`        <DT><A HREF="https://go.dev" ADD_DATE="1700000000" LAST_VISIT="1700000500">Go</A>`))
}

func TestExportHTML_KeepsStoredOrder(t *testing.T) {
	store := model.NewStore()
	_, err := store.AddBookmark(model.Bookmark{Title: "first", URL: "https://first.example"})
	assert.NilError(t, err)
	_, err = store.AddFolder(model.Folder{Title: "second"})
	assert.NilError(t, err)

	got := exporter.ExportHTML(store)

	assert.Assert(t, strings.Index(got, "first") < strings.Index(got, "second"))
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	store := model.NewStore()
	_, err := store.AddBookmark(model.Bookmark{Title: `Tom & "Jerry" <3`, URL: "https://x.example/?a=1&b=2"})
	assert.NilError(t, err)

	got := exporter.ExportHTML(store)

	assert.Check(t, is.Contains(got, "Tom &amp; &#34;Jerry&#34; &lt;3"))
	assert.Check(t, is.Contains(got, "https://x.example/?a=1&amp;b=2"))
}

func TestExportHTML_RoundTrip(t *testing.T) {
	store := model.NewStore()
	_, err := store.AddBookmark(model.Bookmark{Title: "Lobsters", URL: "https://lobste.rs"})
	assert.NilError(t, err)
	dev, err := store.AddFolder(model.Folder{Title: "Dev"})
	assert.NilError(t, err)
	golang, err := store.AddFolder(model.Folder{Title: "Go", ParentGUID: dev.GUID})
	assert.NilError(t, err)
	_, err = store.AddBookmark(model.Bookmark{Title: "Spec", URL: "https://go.dev/ref/spec", ParentGUID: dev.GUID})
	assert.NilError(t, err)
	_, err = store.AddBookmark(model.Bookmark{Title: "Tour", URL: "https://go.dev/tour", ParentGUID: golang.GUID})
	assert.NilError(t, err)
	_, err = store.AddBookmark(model.Bookmark{Title: "HN", URL: "https://news.ycombinator.com"})
	assert.NilError(t, err)

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(exporter.ExportHTML(store)))
	assert.NilError(t, err)

	fresh := model.NewStore()
	res := fresh.ImportMerge(folders, bookmarks)
	assert.DeepEqual(t, res, model.ImportResult{Folders: 2, Bookmarks: 4})

	want, err := store.GetTree(model.MobileRoot)
	assert.NilError(t, err)
	got, err := fresh.GetTree(model.MobileRoot)
	assert.NilError(t, err)
	assert.Equal(t, treeString(*got), treeString(*want))
}

func treeString(n model.Node) string {
	var b strings.Builder
	var walk func(model.Node, int)
	walk = func(n model.Node, depth int) {
		b.WriteString(strings.Repeat(" ", depth) + n.Title + " " + n.URL + "\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(n, 0)
	return b.String()
}
