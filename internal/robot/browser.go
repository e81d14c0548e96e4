package robot

import (
	"strings"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/tui"
)

func assertScreen(d *Driver, want tui.Screen) {
	d.t.Helper()
	assert.Equal(d.t, d.app.Screen(), want, "unexpected screen, view:\n%s", d.View())
}

// HomeRobot drives the start screen.
type HomeRobot struct {
	d *Driver
}

// Home verifies the home screen is shown.
func Home(d *Driver) *HomeRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenHome)
	return &HomeRobot{d: d}
}

// OpenURL enters url in the address bar and loads it.
func (r *HomeRobot) OpenURL(url string) *BrowserRobot {
	r.d.t.Helper()
	r.d.Press("o").Type(url).Press("enter")
	return Browser(r.d)
}

// OpenMenu opens the three-dot menu.
func (r *HomeRobot) OpenMenu() *MenuRobot {
	r.d.t.Helper()
	r.d.Press(".")
	return Menu(r.d)
}

// OpenBookmarks opens the bookmarks list through the menu.
func (r *HomeRobot) OpenBookmarks() *BookmarksRobot {
	r.d.t.Helper()
	return r.OpenMenu().Choose("Bookmarks").Bookmarks()
}

// VerifySnackbar checks the snackbar text and action.
func (r *HomeRobot) VerifySnackbar(text, action string) *HomeRobot {
	r.d.t.Helper()
	verifySnackbar(r.d, text, action)
	return r
}

// Undo follows the snackbar UNDO action.
func (r *HomeRobot) Undo() *HomeRobot {
	r.d.t.Helper()
	r.d.Press("u")
	verifySnackbar(r.d, "", "")
	return r
}

// MenuRobot drives the three-dot menu overlay.
type MenuRobot struct {
	d *Driver
}

// Menu verifies the menu is open.
func Menu(d *Driver) *MenuRobot {
	d.t.Helper()
	assert.Assert(d.t, d.app.MenuOpen(), "menu is not open, view:\n%s", d.View())
	return &MenuRobot{d: d}
}

// VerifyHasItem checks that the menu offers label.
func (r *MenuRobot) VerifyHasItem(label string) *MenuRobot {
	r.d.t.Helper()
	assert.Assert(r.d.t, is.Contains(r.d.app.MenuItems(), label))
	assert.Assert(r.d.t, is.Contains(r.d.View(), label))
	return r
}

// VerifyNoItem checks that the menu does not offer label.
func (r *MenuRobot) VerifyNoItem(label string) *MenuRobot {
	r.d.t.Helper()
	for _, item := range r.d.app.MenuItems() {
		assert.Assert(r.d.t, item != label, "menu unexpectedly offers %q", label)
	}
	return r
}

// Choose moves to label and selects it.
func (r *MenuRobot) Choose(label string) *Driver {
	r.d.t.Helper()
	idx := -1
	for i, item := range r.d.app.MenuItems() {
		if item == label {
			idx = i
			break
		}
	}
	assert.Assert(r.d.t, idx >= 0, "menu has no item %q: %v", label, r.d.app.MenuItems())
	moveCursor(r.d, func() int { return r.d.app.MenuCursor() }, idx, len(r.d.app.MenuItems()))
	r.d.Press("enter")
	return r.d
}

// Close dismisses the menu.
func (r *MenuRobot) Close() *Driver {
	r.d.t.Helper()
	r.d.Press("esc")
	assert.Assert(r.d.t, !r.d.app.MenuOpen())
	return r.d
}

// BrowserRobot drives the page screen.
type BrowserRobot struct {
	d *Driver
}

// Browser verifies a page is shown.
func Browser(d *Driver) *BrowserRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenBrowser)
	assert.Assert(d.t, d.app.Page() != nil)
	return &BrowserRobot{d: d}
}

// Home returns the robot for the home screen.
func (d *Driver) Home() *HomeRobot {
	d.t.Helper()
	return Home(d)
}

// Browser returns the robot for the page screen.
func (d *Driver) Browser() *BrowserRobot {
	d.t.Helper()
	return Browser(d)
}

// Bookmarks returns the robot for the bookmarks list.
func (d *Driver) Bookmarks() *BookmarksRobot {
	d.t.Helper()
	return Bookmarks(d)
}

// EditBookmark returns the robot for the edit bookmark form.
func (d *Driver) EditBookmark() *EditBookmarkRobot {
	d.t.Helper()
	return EditBookmark(d)
}

// VerifyPage checks the shown page URL and title.
func (r *BrowserRobot) VerifyPage(url, title string) *BrowserRobot {
	r.d.t.Helper()
	page := r.d.app.Page()
	assert.Equal(r.d.t, page.URL, url)
	assert.Equal(r.d.t, page.Title, title)
	view := r.d.View()
	assert.Assert(r.d.t, is.Contains(view, url))
	assert.Assert(r.d.t, is.Contains(view, title))
	return r
}

// OpenMenu opens the three-dot menu.
func (r *BrowserRobot) OpenMenu() *MenuRobot {
	r.d.t.Helper()
	r.d.Press(".")
	return Menu(r.d)
}

// AddBookmark saves the page through the menu.
func (r *BrowserRobot) AddBookmark() *BrowserRobot {
	r.d.t.Helper()
	r.OpenMenu().Choose("Add bookmark")
	return Browser(r.d)
}

// VerifySnackbar checks the snackbar text and action.
func (r *BrowserRobot) VerifySnackbar(text, action string) *BrowserRobot {
	r.d.t.Helper()
	verifySnackbar(r.d, text, action)
	return r
}

// EditFromSnackbar follows the snackbar EDIT action.
func (r *BrowserRobot) EditFromSnackbar() *EditBookmarkRobot {
	r.d.t.Helper()
	r.d.Press("e")
	return EditBookmark(r.d)
}

// OpenBookmarks opens the bookmarks list through the menu.
func (r *BrowserRobot) OpenBookmarks() *BookmarksRobot {
	r.d.t.Helper()
	return r.OpenMenu().Choose("Bookmarks").Bookmarks()
}

// VerifyBookmarked checks the saved marker of the shown page.
func (r *BrowserRobot) VerifyBookmarked(want bool) *BrowserRobot {
	r.d.t.Helper()
	assert.Equal(r.d.t, r.d.app.PageBookmarked(), want)
	assert.Equal(r.d.t, strings.Contains(r.d.View(), "★ Bookmarked"), want)
	return r
}

// Undo follows the snackbar UNDO action.
func (r *BrowserRobot) Undo() *BrowserRobot {
	r.d.t.Helper()
	r.d.Press("u")
	verifySnackbar(r.d, "", "")
	return Browser(r.d)
}

// GoHome returns to the start screen.
func (r *BrowserRobot) GoHome() *HomeRobot {
	r.d.t.Helper()
	r.d.Press("esc")
	return Home(r.d)
}

// moveCursor presses j or k until cursor reports idx. Each press must move
// the cursor, so a swallowed key fails instead of looping forever.
func moveCursor(d *Driver, cursor func() int, idx, total int) {
	d.t.Helper()
	for i := 0; i <= total && cursor() != idx; i++ {
		if cursor() < idx {
			d.Press("j")
		} else {
			d.Press("k")
		}
	}
	assert.Equal(d.t, cursor(), idx, "cursor did not reach row %d, view:\n%s", idx, d.View())
}

func verifySnackbar(d *Driver, text, action string) {
	d.t.Helper()
	gotText, gotAction := d.app.Snackbar()
	assert.Equal(d.t, gotText, text)
	assert.Equal(d.t, gotAction, action)
	if text != "" {
		assert.Assert(d.t, is.Contains(d.View(), text))
	}
}
