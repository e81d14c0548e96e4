package robot

import (
	"fmt"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/tui"
)

// BookmarksRobot drives the bookmarks list.
type BookmarksRobot struct {
	d *Driver
}

// Bookmarks verifies the bookmarks list is shown.
func Bookmarks(d *Driver) *BookmarksRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenBookmarks)
	return &BookmarksRobot{d: d}
}

func (r *BookmarksRobot) indexOf(title string) int {
	for i, item := range r.d.app.Items() {
		if item.Title() == title {
			return i
		}
	}
	return -1
}

func (r *BookmarksRobot) item(title string) tui.Item {
	r.d.t.Helper()
	idx := r.indexOf(title)
	assert.Assert(r.d.t, idx >= 0, "no item %q in list, view:\n%s", title, r.d.View())
	return r.d.app.Items()[idx]
}

// MoveTo puts the cursor on the item titled title.
func (r *BookmarksRobot) MoveTo(title string) *BookmarksRobot {
	r.d.t.Helper()
	idx := r.indexOf(title)
	assert.Assert(r.d.t, idx >= 0, "no item %q in list, view:\n%s", title, r.d.View())
	moveCursor(r.d, func() int { return r.d.app.Cursor() }, idx, len(r.d.app.Items()))
	return r
}

// VerifyEmpty checks the empty state of the current folder.
func (r *BookmarksRobot) VerifyEmpty() *BookmarksRobot {
	r.d.t.Helper()
	assert.Equal(r.d.t, len(r.d.app.Items()), 0)
	assert.Assert(r.d.t, is.Contains(r.d.View(), "No bookmarks here"))
	return r
}

// VerifyFolderTitle checks the header of the list.
func (r *BookmarksRobot) VerifyFolderTitle(title string) *BookmarksRobot {
	r.d.t.Helper()
	assert.Equal(r.d.t, r.d.app.CurrentFolderTitle(), title)
	assert.Assert(r.d.t, is.Contains(r.d.View(), title))
	return r
}

// VerifyTitles checks the list shows exactly titles, in order.
func (r *BookmarksRobot) VerifyTitles(titles ...string) *BookmarksRobot {
	r.d.t.Helper()
	got := make([]string, 0, len(r.d.app.Items()))
	for _, item := range r.d.app.Items() {
		got = append(got, item.Title())
	}
	if len(titles) == 0 {
		titles = []string{}
	}
	assert.DeepEqual(r.d.t, got, titles)
	return r
}

// VerifyItem checks that an item titled title is listed.
func (r *BookmarksRobot) VerifyItem(title string) *BookmarksRobot {
	r.d.t.Helper()
	r.item(title)
	assert.Assert(r.d.t, is.Contains(r.d.View(), title))
	return r
}

// VerifyNoItem checks that no item titled title is listed.
func (r *BookmarksRobot) VerifyNoItem(title string) *BookmarksRobot {
	r.d.t.Helper()
	assert.Equal(r.d.t, r.indexOf(title), -1, "item %q unexpectedly listed", title)
	return r
}

// VerifyBookmark checks a bookmark's URL and letter icon.
func (r *BookmarksRobot) VerifyBookmark(title, url, icon string) *BookmarksRobot {
	r.d.t.Helper()
	item := r.item(title)
	assert.Assert(r.d.t, !item.IsFolder())
	assert.Equal(r.d.t, item.URL(), url)
	assert.Equal(r.d.t, item.Icon, icon)
	view := r.d.View()
	assert.Assert(r.d.t, is.Contains(view, icon+" "+title))
	assert.Assert(r.d.t, is.Contains(view, url))
	return r
}

// VerifyFolder checks that title is listed as a folder.
func (r *BookmarksRobot) VerifyFolder(title string) *BookmarksRobot {
	r.d.t.Helper()
	assert.Assert(r.d.t, r.item(title).IsFolder(), "%q is not a folder", title)
	assert.Assert(r.d.t, is.Contains(r.d.View(), "▤ "+title+"/"))
	return r
}

// OpenFolder enters the folder titled title.
func (r *BookmarksRobot) OpenFolder(title string) *BookmarksRobot {
	r.d.t.Helper()
	guid := r.item(title).GUID()
	r.MoveTo(title)
	r.d.Press("l")
	assert.Equal(r.d.t, r.d.app.CurrentFolderGUID(), guid)
	return r
}

// OpenBookmark loads the bookmark titled title in the browser.
func (r *BookmarksRobot) OpenBookmark(title string) *BrowserRobot {
	r.d.t.Helper()
	r.MoveTo(title)
	r.d.Press("enter")
	return Browser(r.d)
}

// NavigateUp leaves the current folder with h and expects its parent.
func (r *BookmarksRobot) NavigateUp() *BookmarksRobot {
	r.d.t.Helper()
	current := r.d.app.Store().GetFolderByGUID(r.d.app.CurrentFolderGUID())
	assert.Assert(r.d.t, current != nil, "already at the top level")
	r.d.Press("h")
	assert.Equal(r.d.t, r.d.app.CurrentFolderGUID(), current.ParentGUID)
	return Bookmarks(r.d)
}

// Back performs system back and expects to stay in the list.
func (r *BookmarksRobot) Back() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("esc")
	return Bookmarks(r.d)
}

// Leave performs system back from the top level and returns the driver.
func (r *BookmarksRobot) Leave() *Driver {
	r.d.t.Helper()
	r.d.Press("esc")
	assert.Assert(r.d.t, r.d.app.Screen() != tui.ScreenBookmarks)
	return r.d
}

// AddFolder opens the add folder form.
func (r *BookmarksRobot) AddFolder() *AddFolderRobot {
	r.d.t.Helper()
	r.d.Press("A")
	return AddFolder(r.d)
}

// Edit opens the edit form of the bookmark titled title.
func (r *BookmarksRobot) Edit(title string) *EditBookmarkRobot {
	r.d.t.Helper()
	r.MoveTo(title)
	r.d.Press("e")
	return EditBookmark(r.d)
}

// EditFolder opens the edit form of the folder titled title.
func (r *BookmarksRobot) EditFolder(title string) *EditFolderRobot {
	r.d.t.Helper()
	r.MoveTo(title)
	r.d.Press("e")
	return EditFolder(r.d)
}

// Delete removes the item titled title.
func (r *BookmarksRobot) Delete(title string) *BookmarksRobot {
	r.d.t.Helper()
	r.MoveTo(title)
	r.d.Press("d")
	return r
}

// Undo follows the snackbar UNDO action.
func (r *BookmarksRobot) Undo() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("u")
	return r
}

// VerifySnackbar checks the snackbar text and action.
func (r *BookmarksRobot) VerifySnackbar(text, action string) *BookmarksRobot {
	r.d.t.Helper()
	verifySnackbar(r.d, text, action)
	return r
}

// WaitForSnackbarToExpire advances time past the snackbar duration.
func (r *BookmarksRobot) WaitForSnackbarToExpire(d time.Duration) *BookmarksRobot {
	r.d.t.Helper()
	r.d.Elapse(d)
	verifySnackbar(r.d, "", "")
	return r
}

// Select enters multi-select with the item titled title selected.
func (r *BookmarksRobot) Select(title string) *MultiSelectRobot {
	r.d.t.Helper()
	r.MoveTo(title)
	r.d.Press("v")
	return MultiSelect(r.d)
}

// MultiSelectRobot drives the list in multi-select mode.
type MultiSelectRobot struct {
	d *Driver
}

// MultiSelect verifies multi-select mode is active.
func MultiSelect(d *Driver) *MultiSelectRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenBookmarks)
	assert.Assert(d.t, d.app.SelectionMode(), "not in multi-select mode")
	return &MultiSelectRobot{d: d}
}

func (r *MultiSelectRobot) list() *BookmarksRobot {
	return &BookmarksRobot{d: r.d}
}

// Toggle flips the selection of the item titled title.
func (r *MultiSelectRobot) Toggle(title string) *MultiSelectRobot {
	r.d.t.Helper()
	r.list().MoveTo(title)
	r.d.Press("v")
	return r
}

// VerifyCount checks the selection count in the header.
func (r *MultiSelectRobot) VerifyCount(n int) *MultiSelectRobot {
	r.d.t.Helper()
	assert.Equal(r.d.t, r.d.app.SelectedCount(), n)
	assert.Assert(r.d.t, is.Contains(r.d.View(), fmt.Sprintf("%d selected", n)))
	return r
}

// VerifySelected checks that the item titled title is selected.
func (r *MultiSelectRobot) VerifySelected(title string) *MultiSelectRobot {
	r.d.t.Helper()
	assert.Assert(r.d.t, r.d.app.IsSelected(r.list().item(title).GUID()), "%q is not selected", title)
	return r
}

// Close leaves multi-select mode.
func (r *MultiSelectRobot) Close() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("esc")
	assert.Assert(r.d.t, !r.d.app.SelectionMode())
	return Bookmarks(r.d)
}

// Share shares the selected bookmarks.
func (r *MultiSelectRobot) Share() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("s")
	assert.Assert(r.d.t, !r.d.app.SelectionMode())
	return Bookmarks(r.d)
}

// Delete removes the selected items.
func (r *MultiSelectRobot) Delete() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("d")
	assert.Assert(r.d.t, !r.d.app.SelectionMode())
	return Bookmarks(r.d)
}
