package robot

import (
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/tui"
)

// AddFolderRobot drives the add folder form.
type AddFolderRobot struct {
	d *Driver
}

// AddFolder verifies the add folder form is shown.
func AddFolder(d *Driver) *AddFolderRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenAddFolder)
	return &AddFolderRobot{d: d}
}

// TypeName types into the name field.
func (r *AddFolderRobot) TypeName(name string) *AddFolderRobot {
	r.d.t.Helper()
	r.d.Type(name)
	return r
}

// Confirm creates the folder and returns to the list.
func (r *AddFolderRobot) Confirm() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("enter")
	return Bookmarks(r.d)
}

// ConfirmRejected presses enter and expects the form to stay open.
func (r *AddFolderRobot) ConfirmRejected() *AddFolderRobot {
	r.d.t.Helper()
	r.d.Press("enter")
	return AddFolder(r.d)
}

// Cancel discards the form.
func (r *AddFolderRobot) Cancel() *BookmarksRobot {
	r.d.t.Helper()
	r.d.Press("esc")
	return Bookmarks(r.d)
}

// focusField tabs until field has focus.
func focusField(d *Driver, field tui.FormField) {
	d.t.Helper()
	for i := 0; i < 3 && d.app.FormFocus() != field; i++ {
		d.Press("tab")
	}
	assert.Equal(d.t, d.app.FormFocus(), field)
}

// EditBookmarkRobot drives the edit bookmark form.
type EditBookmarkRobot struct {
	d *Driver
}

// EditBookmark verifies the edit bookmark form is shown.
func EditBookmark(d *Driver) *EditBookmarkRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenEditBookmark)
	return &EditBookmarkRobot{d: d}
}

// VerifyValues checks the title and URL fields.
func (r *EditBookmarkRobot) VerifyValues(title, url string) *EditBookmarkRobot {
	r.d.t.Helper()
	gotTitle, gotURL, _ := r.d.app.FormValues()
	assert.Equal(r.d.t, gotTitle, title)
	assert.Equal(r.d.t, gotURL, url)
	return r
}

// VerifyFields checks the form shows the name, URL and folder fields.
func (r *EditBookmarkRobot) VerifyFields() *EditBookmarkRobot {
	r.d.t.Helper()
	view := r.d.View()
	for _, field := range []tui.FormField{tui.FieldName, tui.FieldURL, tui.FieldFolder} {
		assert.Assert(r.d.t, is.Contains(view, field.String()), "no %s field, view:\n%s", field, view)
	}
	return r
}

// VerifyFolder checks the folder field.
func (r *EditBookmarkRobot) VerifyFolder(title string) *EditBookmarkRobot {
	r.d.t.Helper()
	_, _, parent := r.d.app.FormValues()
	assert.Equal(r.d.t, r.d.app.Store().FolderTitle(parent), title)
	assert.Assert(r.d.t, is.Contains(r.d.View(), "▤ "+title))
	return r
}

// SetTitle replaces the title field.
func (r *EditBookmarkRobot) SetTitle(title string) *EditBookmarkRobot {
	r.d.t.Helper()
	focusField(r.d, tui.FieldName)
	r.d.Press("ctrl+u").Type(title)
	return r
}

// SetURL replaces the URL field.
func (r *EditBookmarkRobot) SetURL(url string) *EditBookmarkRobot {
	r.d.t.Helper()
	focusField(r.d, tui.FieldURL)
	r.d.Press("ctrl+u").Type(url)
	return r
}

// ChooseFolder opens the folder picker.
func (r *EditBookmarkRobot) ChooseFolder() *SelectFolderRobot {
	r.d.t.Helper()
	focusField(r.d, tui.FieldFolder)
	r.d.Press("enter")
	return SelectFolder(r.d)
}

// Save stores the changes and closes the form.
func (r *EditBookmarkRobot) Save() *Driver {
	r.d.t.Helper()
	if r.d.app.FormFocus() == tui.FieldFolder {
		focusField(r.d, tui.FieldName)
	}
	r.d.Press("enter")
	assert.Assert(r.d.t, r.d.app.Screen() != tui.ScreenEditBookmark, "form still open, view:\n%s", r.d.View())
	return r.d
}

// Discard closes the form without saving.
func (r *EditBookmarkRobot) Discard() *Driver {
	r.d.t.Helper()
	r.d.Press("esc")
	return r.d
}

// Delete deletes the bookmark from the form.
func (r *EditBookmarkRobot) Delete() *Driver {
	r.d.t.Helper()
	r.d.Press("ctrl+d")
	return r.d
}

// EditFolderRobot drives the edit folder form.
type EditFolderRobot struct {
	d *Driver
}

// EditFolder verifies the edit folder form is shown.
func EditFolder(d *Driver) *EditFolderRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenEditFolder)
	return &EditFolderRobot{d: d}
}

// SetName replaces the name field.
func (r *EditFolderRobot) SetName(name string) *EditFolderRobot {
	r.d.t.Helper()
	focusField(r.d, tui.FieldName)
	r.d.Press("ctrl+u").Type(name)
	return r
}

// ChooseParent opens the folder picker for the parent.
func (r *EditFolderRobot) ChooseParent() *SelectFolderRobot {
	r.d.t.Helper()
	focusField(r.d, tui.FieldFolder)
	r.d.Press("enter")
	return SelectFolder(r.d)
}

// Save stores the changes and returns to the list.
func (r *EditFolderRobot) Save() *BookmarksRobot {
	r.d.t.Helper()
	if r.d.app.FormFocus() == tui.FieldFolder {
		focusField(r.d, tui.FieldName)
	}
	r.d.Press("enter")
	return Bookmarks(r.d)
}

// SelectFolderRobot drives the folder picker.
type SelectFolderRobot struct {
	d *Driver
}

// SelectFolder verifies the folder picker is shown.
func SelectFolder(d *Driver) *SelectFolderRobot {
	d.t.Helper()
	assertScreen(d, tui.ScreenSelectFolder)
	return &SelectFolderRobot{d: d}
}

// VerifyOptions checks the offered folder titles in order.
func (r *SelectFolderRobot) VerifyOptions(titles ...string) *SelectFolderRobot {
	r.d.t.Helper()
	var got []string
	for _, c := range r.d.app.PickerItems() {
		got = append(got, c.Title)
	}
	assert.DeepEqual(r.d.t, got, titles)
	return r
}

// Choose selects the folder titled title and returns to the form.
func (r *SelectFolderRobot) Choose(title string) *Driver {
	r.d.t.Helper()
	idx := -1
	for i, c := range r.d.app.PickerItems() {
		if c.Title == title {
			idx = i
			break
		}
	}
	assert.Assert(r.d.t, idx >= 0, "no folder %q to choose, view:\n%s", title, r.d.View())
	moveCursor(r.d, func() int { return r.d.app.PickerCursor() }, idx, len(r.d.app.PickerItems()))
	r.d.Press("enter")
	return r.d
}

// ChooseForBookmark selects a folder and returns to the bookmark form.
func (r *SelectFolderRobot) ChooseForBookmark(title string) *EditBookmarkRobot {
	r.d.t.Helper()
	return EditBookmark(r.Choose(title))
}

// ChooseForFolder selects a parent and returns to the folder form.
func (r *SelectFolderRobot) ChooseForFolder(title string) *EditFolderRobot {
	r.d.t.Helper()
	return EditFolder(r.Choose(title))
}
