package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/model"
)

// openBookmarks shows the top level of the bookmarks list. Leaving the list
// returns to the screen it was opened from.
func (a *App) openBookmarks() {
	a.list = ListState{FolderGUID: model.MobileRoot, Origin: a.screen}
	a.filter.Reset()
	a.selection.Reset()
	a.clearMessage()
	a.screen = ScreenBookmarks
	a.refreshItems()
}

func (a App) updateBookmarks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filter.Active {
		return a.updateFilter(msg)
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.list.Cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	if a.selection.Active {
		return a.updateSelection(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.list.Cursor < len(a.list.Items)-1 {
			a.list.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.list.Cursor > 0 {
			a.list.Cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.list.Items) > 0 {
			a.list.Cursor = len(a.list.Items) - 1
		}

	case key.Matches(msg, a.keys.Right):
		if item, ok := a.currentItem(); ok {
			cmd := a.openItem(item)
			return a, cmd
		}

	case key.Matches(msg, a.keys.Left):
		a.navigateUp()

	case key.Matches(msg, a.keys.Back):
		a.back()

	case key.Matches(msg, a.keys.AddFolder):
		a.startAddFolder()

	case key.Matches(msg, a.keys.Edit):
		if item, ok := a.currentItem(); ok {
			if item.IsFolder() {
				a.openEditFolder(item.GUID())
			} else {
				a.openEditBookmark(item.GUID())
			}
		}

	case key.Matches(msg, a.keys.Delete):
		if item, ok := a.currentItem(); ok {
			cmd := a.deleteWithUndo(item.GUID())
			return a, cmd
		}

	case key.Matches(msg, a.keys.Select):
		if item, ok := a.currentItem(); ok {
			a.selection.Active = true
			a.selection.Toggle(item.GUID())
		}

	case key.Matches(msg, a.keys.Share):
		if item, ok := a.currentItem(); ok {
			if item.IsFolder() {
				a.setMessage(MessageWarning, "Folders cannot be shared")
				return a, nil
			}
			return a, a.shareCmd([]browser.Link{{Title: item.Node.Title, URL: item.URL()}})
		}

	case key.Matches(msg, a.keys.Filter):
		a.filter.Active = true
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		_ = a.filter.Input.Focus()
	}

	return a, nil
}

// openItem enters a folder or loads a bookmark in the browser.
func (a *App) openItem(item Item) tea.Cmd {
	if item.IsFolder() {
		a.enterFolder(item.GUID())
		return nil
	}
	if err := a.store.MarkVisited(item.GUID(), time.Now()); err == nil {
		a.saveStore()
	}
	return a.startLoading(item.URL())
}

func (a *App) enterFolder(guid string) {
	a.list.FolderGUID = guid
	a.list.Cursor = 0
	a.filter.Reset()
	a.refreshItems()
}

// navigateUp shows the parent folder with the cursor on the folder just left.
func (a *App) navigateUp() {
	if a.list.AtRoot() {
		return
	}
	left := a.list.FolderGUID
	parent := model.MobileRoot
	if f := a.store.GetFolderByGUID(left); f != nil {
		parent = f.ParentGUID
	}
	a.list.FolderGUID = parent
	a.list.Cursor = 0
	a.filter.Reset()
	a.refreshItems()
	a.cursorTo(left)
}

// back clears the filter, then climbs one folder, then leaves the list.
func (a *App) back() {
	switch {
	case a.filter.Query != "":
		a.filter.Reset()
		a.refreshItems()
	case !a.list.AtRoot():
		a.navigateUp()
	default:
		a.screen = a.list.Origin
	}
}

// deleteWithUndo removes a node and offers to restore it.
func (a *App) deleteWithUndo(guid string) tea.Cmd {
	tomb, err := a.store.DeleteNode(guid)
	if err != nil {
		a.setMessage(MessageError, "Delete failed: "+err.Error())
		return nil
	}
	a.saveStore()
	a.refreshItems()
	a.log.Info().Str("guid", guid).Int("folders", len(tomb.Folders)).Int("bookmarks", len(tomb.Bookmarks)).Msg("node deleted")
	return a.showSnackbar(SnackbarState{
		Text:   "Deleted " + tomb.Title(),
		Action: ActionUndo,
		Tomb:   &tomb,
	})
}

// undoAvailable reports whether the undo key follows the snackbar UNDO
// action. Screens with text entry keep the key.
func (a App) undoAvailable() bool {
	if !a.snackbar.Visible() || a.snackbar.Action != ActionUndo {
		return false
	}
	switch a.screen {
	case ScreenHome, ScreenBrowser:
		return true
	case ScreenBookmarks:
		return !a.filter.Active
	}
	return false
}

// undoDelete restores the deletion offered by the visible snackbar.
func (a *App) undoDelete() {
	if !a.snackbar.Visible() || a.snackbar.Action != ActionUndo || a.snackbar.Tomb == nil {
		return
	}
	tomb := *a.snackbar.Tomb
	a.dismissSnackbar()
	if err := a.store.Restore(tomb); err != nil {
		a.setMessage(MessageError, "Undo failed: "+err.Error())
		return
	}
	a.saveStore()
	a.refreshItems()
	a.cursorTo(tomb.GUID)
	a.log.Info().Str("guid", tomb.GUID).Msg("node restored")
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filter.Reset()
		a.refreshItems()
		return a, nil
	case tea.KeyEnter:
		a.filter.Active = false
		a.filter.Input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.filter.Query = a.filter.Input.Value()
	a.list.Cursor = 0
	a.refreshItems()
	return a, cmd
}

func (a App) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Back):
		a.selection.Reset()

	case key.Matches(msg, a.keys.Down):
		if a.list.Cursor < len(a.list.Items)-1 {
			a.list.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.list.Cursor > 0 {
			a.list.Cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.list.Items) > 0 {
			a.list.Cursor = len(a.list.Items) - 1
		}

	case key.Matches(msg, a.keys.Select), key.Matches(msg, a.keys.Right):
		if item, ok := a.currentItem(); ok {
			a.selection.Toggle(item.GUID())
			if !a.selection.HasSelection() {
				a.selection.Reset()
			}
		}

	case key.Matches(msg, a.keys.Share):
		links := a.selectedLinks()
		a.selection.Reset()
		if len(links) == 0 {
			a.setMessage(MessageWarning, "No bookmarks selected")
			return a, nil
		}
		return a, a.shareCmd(links)

	case key.Matches(msg, a.keys.Delete):
		a.deleteSelected()

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

// selectedLinks returns the selected bookmarks in list order.
func (a App) selectedLinks() []browser.Link {
	var links []browser.Link
	for _, item := range a.list.Items {
		if item.IsFolder() || !a.selection.IsSelected(item.GUID()) {
			continue
		}
		links = append(links, browser.Link{Title: item.Node.Title, URL: item.URL()})
	}
	return links
}

// deleteSelected permanently removes every selected node.
func (a *App) deleteSelected() {
	deleted := 0
	for _, item := range a.list.Items {
		if !a.selection.IsSelected(item.GUID()) {
			continue
		}
		if _, err := a.store.DeleteNode(item.GUID()); err != nil {
			a.log.Warn().Err(err).Str("guid", item.GUID()).Msg("bulk delete skipped node")
			continue
		}
		deleted++
	}
	a.selection.Reset()
	a.saveStore()
	a.refreshItems()
	a.log.Info().Int("count", deleted).Msg("bulk delete")
	a.setMessage(MessageSuccess, "Deleted "+pluralize(deleted, "item"))
}
