package importer_test

import (
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/importer"
	"github.com/nikbrunner/mbm/internal/model"
)

func TestParseHTML_SingleBookmark(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://example.com" ADD_DATE="1234567890">Example Site</A>
</DL><p>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)

	assert.Check(t, is.Len(folders, 0))
	assert.Assert(t, is.Len(bookmarks, 1))
	b := bookmarks[0]
	assert.Equal(t, b.Title, "Example Site")
	assert.Equal(t, b.URL, "https://example.com")
	assert.Equal(t, b.ParentGUID, model.MobileRoot)
	assert.Assert(t, b.GUID != "")
	assert.Assert(t, b.CreatedAt.Equal(time.Unix(1234567890, 0)))
}

func TestParseHTML_NestedFolders(t *testing.T) {
	html := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
    <DT><H3 ADD_DATE="1234567890">Development</H3>
    <DL><p>
        <DT><H3 ADD_DATE="1234567890">React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev" ADD_DATE="1234567890">React Docs</A>
        </DL><p>
        <DT><A HREF="https://github.com" ADD_DATE="1234567890">GitHub</A>
    </DL><p>
    <DT><A HREF="https://google.com" ADD_DATE="1234567890">Google</A>
</DL><p>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(folders, 2))
	assert.Assert(t, is.Len(bookmarks, 3))

	dev, react := folders[0], folders[1]
	assert.Equal(t, dev.Title, "Development")
	assert.Equal(t, dev.ParentGUID, model.MobileRoot)
	assert.Equal(t, react.ParentGUID, dev.GUID)

	parents := map[string]string{}
	for _, b := range bookmarks {
		parents[b.Title] = b.ParentGUID
	}
	assert.Equal(t, parents["React Docs"], react.GUID)
	assert.Equal(t, parents["GitHub"], dev.GUID)
	assert.Equal(t, parents["Google"], model.MobileRoot)
}

func TestParseHTML_EmptyFile(t *testing.T) {
	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(""))
	assert.NilError(t, err)
	assert.Check(t, is.Len(folders, 0))
	assert.Check(t, is.Len(bookmarks, 0))
}

func TestParseHTML_LastVisit(t *testing.T) {
	html := `<DL><p>
<DT><A HREF="https://a.example" ADD_DATE="100" LAST_VISIT="200">A</A>
<DT><A HREF="https://b.example" LAST_VISIT="bogus">B</A>
</DL>`

	_, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(bookmarks, 2))
	assert.Assert(t, bookmarks[0].VisitedAt != nil)
	assert.Assert(t, bookmarks[0].VisitedAt.Equal(time.Unix(200, 0)))
	assert.Assert(t, bookmarks[1].VisitedAt == nil)
}

func TestParseHTML_MissingHref(t *testing.T) {
	html := `<DL><p>
<DT><A>No link</A>
<DT><A HREF="">Empty</A>
<DT><A HREF="https://ok.example"></A>
</DL>`

	_, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)
	assert.Assert(t, is.Len(bookmarks, 1))
	assert.Equal(t, bookmarks[0].Title, "")
}

func TestParseHTML_MergesIntoStore(t *testing.T) {
	html := `<DL><p>
<DT><H3>Reading</H3>
<DL><p>
<DT><A HREF="https://a.example">A</A>
<DT><A HREF="https://b.example">B</A>
</DL><p>
</DL>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)

	store := model.NewStore()
	res := store.ImportMerge(folders, bookmarks)
	assert.Equal(t, res.Folders, 1)
	assert.Equal(t, res.Bookmarks, 2)

	root := store.Children(model.MobileRoot)
	assert.Assert(t, is.Len(root, 1))
	assert.Assert(t, is.Len(store.Children(root[0].GUID), 2))
}

func TestParseHTML_KeepsInterleavedOrder(t *testing.T) {
	html := `<DL><p>
<DT><A HREF="https://a.example">A</A>
<DT><H3>F</H3>
<DL><p>
<DT><A HREF="https://b.example">B</A>
</DL><p>
<DT><A HREF="https://c.example">C</A>
</DL>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)

	store := model.NewStore()
	store.ImportMerge(folders, bookmarks)

	var got []string
	for _, n := range store.Children(model.MobileRoot) {
		got = append(got, n.Title)
	}
	assert.DeepEqual(t, got, []string{"A", "F", "C"})
}

func TestParseHTML_MergeCountsDuplicatesAndInvalid(t *testing.T) {
	html := `<DL><p>
<DT><A HREF="https://a.example">A</A>
<DT><A HREF="https://a.example">A again</A>
<DT><A HREF="javascript:void(0)">Bookmarklet</A>
<DT><A HREF="place:sort=8">Recent</A>
</DL>`

	folders, bookmarks, err := importer.ParseHTMLBookmarks(strings.NewReader(html))
	assert.NilError(t, err)

	res := model.NewStore().ImportMerge(folders, bookmarks)
	assert.DeepEqual(t, res, model.ImportResult{Bookmarks: 1, Duplicates: 1, Invalid: 2})
}
