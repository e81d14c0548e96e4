package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mbm/internal/model"
)

var (
	bookmarkFields = []FormField{FieldName, FieldURL, FieldFolder}
	folderFields   = []FormField{FieldName, FieldFolder}
)

// startAddFolder opens the add folder form for the current list folder.
func (a *App) startAddFolder() {
	a.form = NewFormState(a.layoutConfig)
	a.form.ParentGUID = a.list.FolderGUID
	a.form.ReturnTo = a.screen
	a.form.focus(FieldName)
	a.clearMessage()
	a.screen = ScreenAddFolder
}

func (a App) updateAddFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.closeForm()
		return a, nil

	case tea.KeyEnter:
		f, err := a.store.AddFolder(model.NewFolder(model.NewFolderParams{
			Title:      a.form.TitleInput.Value(),
			ParentGUID: a.form.ParentGUID,
		}))
		if errors.Is(err, model.ErrEmptyTitle) {
			a.setMessage(MessageError, "Folder name cannot be empty")
			return a, nil
		}
		if err != nil {
			a.setMessage(MessageError, "Could not add folder: "+err.Error())
			return a, nil
		}
		a.saveStore()
		a.log.Info().Str("guid", f.GUID).Str("title", f.Title).Msg("folder added")
		a.closeForm()
		a.cursorTo(f.GUID)
		return a, nil
	}

	var cmd tea.Cmd
	a.form.TitleInput, cmd = a.form.TitleInput.Update(msg)
	return a, cmd
}

// openEditBookmark opens the edit form for a bookmark.
func (a *App) openEditBookmark(guid string) {
	b := a.store.GetBookmarkByGUID(guid)
	if b == nil {
		a.setMessage(MessageError, "Bookmark not found")
		return
	}
	a.form = NewFormState(a.layoutConfig)
	a.form.TitleInput.SetValue(b.Title)
	a.form.URLInput.SetValue(b.URL)
	a.form.EditGUID = b.GUID
	a.form.ParentGUID = b.ParentGUID
	a.form.ReturnTo = a.screen
	a.form.focus(FieldName)
	a.clearMessage()
	a.screen = ScreenEditBookmark
}

// openEditFolder opens the edit form for a folder.
func (a *App) openEditFolder(guid string) {
	f := a.store.GetFolderByGUID(guid)
	if f == nil {
		a.setMessage(MessageError, "Folder not found")
		return
	}
	a.form = NewFormState(a.layoutConfig)
	a.form.TitleInput.SetValue(f.Title)
	a.form.EditGUID = f.GUID
	a.form.ParentGUID = f.ParentGUID
	a.form.ReturnTo = a.screen
	a.form.focus(FieldName)
	a.clearMessage()
	a.screen = ScreenEditFolder
}

// closeForm returns to the screen the form was opened from.
func (a *App) closeForm() {
	a.form.TitleInput.Blur()
	a.form.URLInput.Blur()
	a.screen = a.form.ReturnTo
	if a.screen == ScreenBookmarks {
		a.refreshItems()
	}
}

// updateFormInput forwards a key to the focused text input.
func (a *App) updateFormInput(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch a.form.Focus {
	case FieldName:
		a.form.TitleInput, cmd = a.form.TitleInput.Update(msg)
	case FieldURL:
		a.form.URLInput, cmd = a.form.URLInput.Update(msg)
	}
	return cmd
}

func (a App) updateEditBookmark(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		a.closeForm()
		return a, nil

	case key.Matches(msg, a.keys.DeleteItem):
		guid := a.form.EditGUID
		a.closeForm()
		cmd := a.deleteWithUndo(guid)
		return a, cmd

	case key.Matches(msg, a.keys.NextField):
		a.form.cycle(bookmarkFields, 1)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.form.cycle(bookmarkFields, -1)
		return a, nil

	case msg.Type == tea.KeyEnter:
		if a.form.Focus == FieldFolder {
			a.openPicker("")
			return a, nil
		}
		a.saveBookmarkForm()
		return a, nil
	}

	cmd := a.updateFormInput(msg)
	return a, cmd
}

func (a *App) saveBookmarkForm() {
	guid := a.form.EditGUID
	b := a.store.GetBookmarkByGUID(guid)
	if b == nil {
		a.setMessage(MessageError, "Bookmark not found")
		return
	}
	oldURL := b.URL
	oldParent := b.ParentGUID

	title := strings.TrimSpace(a.form.TitleInput.Value())
	url := strings.TrimSpace(a.form.URLInput.Value())
	if err := model.ValidateURL(url); err != nil {
		a.setMessage(MessageError, "Invalid URL")
		return
	}
	if err := a.store.UpdateBookmark(guid, title, url); err != nil {
		a.setMessage(MessageError, "Could not save bookmark: "+err.Error())
		return
	}
	if a.form.ParentGUID != oldParent {
		if err := a.store.Move(guid, a.form.ParentGUID); err != nil {
			a.setMessage(MessageError, "Could not move bookmark: "+err.Error())
			return
		}
	}
	a.saveStore()
	a.log.Info().Str("guid", guid).Str("parent", a.form.ParentGUID).Msg("bookmark updated")

	if a.page != nil && a.page.URL == oldURL {
		a.page.URL = url
		a.page.Title = title
	}
	a.closeForm()
	a.cursorTo(guid)
}

func (a App) updateEditFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		a.closeForm()
		return a, nil

	case key.Matches(msg, a.keys.DeleteItem):
		guid := a.form.EditGUID
		a.closeForm()
		cmd := a.deleteWithUndo(guid)
		return a, cmd

	case key.Matches(msg, a.keys.NextField):
		a.form.cycle(folderFields, 1)
		return a, nil

	case key.Matches(msg, a.keys.PrevField):
		a.form.cycle(folderFields, -1)
		return a, nil

	case msg.Type == tea.KeyEnter:
		if a.form.Focus == FieldFolder {
			a.openPicker(a.form.EditGUID)
			return a, nil
		}
		a.saveFolderForm()
		return a, nil
	}

	cmd := a.updateFormInput(msg)
	return a, cmd
}

func (a *App) saveFolderForm() {
	guid := a.form.EditGUID
	f := a.store.GetFolderByGUID(guid)
	if f == nil {
		a.setMessage(MessageError, "Folder not found")
		return
	}
	oldParent := f.ParentGUID

	err := a.store.UpdateFolder(guid, a.form.TitleInput.Value())
	if errors.Is(err, model.ErrEmptyTitle) {
		a.setMessage(MessageError, "Folder name cannot be empty")
		return
	}
	if err != nil {
		a.setMessage(MessageError, "Could not save folder: "+err.Error())
		return
	}
	if a.form.ParentGUID != oldParent {
		if err := a.store.Move(guid, a.form.ParentGUID); err != nil {
			a.setMessage(MessageError, "Could not move folder: "+err.Error())
			return
		}
	}
	a.saveStore()
	a.log.Info().Str("guid", guid).Str("parent", a.form.ParentGUID).Msg("folder updated")
	a.closeForm()
	a.cursorTo(guid)
}

// openPicker shows the folder hierarchy, leaving out exclude and its
// subtree.
func (a *App) openPicker(exclude string) {
	a.picker = PickerState{
		Choices:  a.store.AllFolders(exclude),
		ReturnTo: a.screen,
	}
	for i, c := range a.picker.Choices {
		if c.GUID == a.form.ParentGUID {
			a.picker.Cursor = i
			break
		}
	}
	a.screen = ScreenSelectFolder
}

func (a App) updateSelectFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.picker.Cursor < len(a.picker.Choices)-1 {
			a.picker.Cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.picker.Cursor > 0 {
			a.picker.Cursor--
		}
	case key.Matches(msg, a.keys.Confirm):
		if len(a.picker.Choices) > 0 {
			a.form.ParentGUID = a.picker.Choices[a.picker.Cursor].GUID
		}
		a.screen = a.picker.ReturnTo
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Left):
		a.screen = a.picker.ReturnTo
	}
	return a, nil
}
