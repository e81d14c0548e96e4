package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/model"
)

func (a App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Menu):
		a.openMenu()
	case key.Matches(msg, a.keys.OpenURL):
		a.startURLEntry()
	case key.Matches(msg, a.keys.Bookmarks):
		a.openBookmarks()
	}
	return a, nil
}

func (a *App) startURLEntry() {
	a.urlFrom = a.screen
	a.urlInput.Reset()
	_ = a.urlInput.Focus()
	a.clearMessage()
	a.screen = ScreenOpenURL
}

// normalizeURL adds https:// to bare host input.
func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.Contains(raw, "://") || strings.HasPrefix(raw, "about:") {
		return raw
	}
	return "https://" + raw
}

func (a App) updateOpenURL(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.urlInput.Blur()
		a.screen = a.urlFrom
		return a, nil

	case tea.KeyEnter:
		raw := normalizeURL(a.urlInput.Value())
		if raw == "" {
			return a, nil
		}
		if err := model.ValidateURL(raw); err != nil {
			a.setMessage(MessageError, "Invalid URL: "+raw)
			return a, nil
		}
		a.urlInput.Blur()
		cmd := a.startLoading(raw)
		return a, cmd
	}

	var cmd tea.Cmd
	a.urlInput, cmd = a.urlInput.Update(msg)
	return a, cmd
}

// startLoading marks rawURL as loading and returns the load command.
func (a *App) startLoading(rawURL string) tea.Cmd {
	a.loading = rawURL
	a.clearMessage()
	a.log.Debug().Str("url", rawURL).Msg("loading page")
	return a.loadPageCmd(rawURL)
}

func (a App) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	page := msg.page
	a.loading = ""
	a.page = &page
	a.screen = ScreenBrowser
	a.log.Info().Str("url", page.URL).Str("title", page.Title).Msg("page loaded")
	return a, nil
}

func (a App) handlePageLoadFailed(msg pageLoadFailedMsg) (tea.Model, tea.Cmd) {
	a.loading = ""
	a.page = &browser.Page{URL: msg.url}
	a.screen = ScreenBrowser
	a.log.Warn().Err(msg.err).Str("url", msg.url).Msg("page load failed")
	a.setMessage(MessageError, "Could not load page: "+msg.err.Error())
	return a, nil
}

func (a App) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Menu):
		a.openMenu()
	case key.Matches(msg, a.keys.OpenURL):
		a.startURLEntry()
	case key.Matches(msg, a.keys.Bookmarks):
		a.openBookmarks()
	case key.Matches(msg, a.keys.Edit):
		if a.snackbar.Visible() && a.snackbar.Action == ActionEdit {
			guid := a.snackbar.EditGUID
			a.dismissSnackbar()
			a.openEditBookmark(guid)
		}
	case key.Matches(msg, a.keys.Share):
		cmd := a.sharePage()
		return a, cmd
	case key.Matches(msg, a.keys.OpenExternal):
		if a.page != nil {
			return a, a.openExternalCmd(a.page.URL)
		}
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Left):
		a.goHome()
	}
	return a, nil
}

func (a *App) goHome() {
	a.page = nil
	a.screen = ScreenHome
	a.clearMessage()
}

// pageBookmarked returns true if the shown page is saved as a bookmark.
func (a App) pageBookmarked() bool {
	return a.page != nil && a.store.HasBookmarkURL(a.page.URL)
}

// addPageBookmark saves the shown page under the mobile root.
func (a *App) addPageBookmark() tea.Cmd {
	if a.page == nil {
		return nil
	}
	b, err := a.store.AddBookmark(model.NewBookmark(model.NewBookmarkParams{
		Title: a.page.Title,
		URL:   a.page.URL,
	}))
	if err != nil {
		a.setMessage(MessageError, "Could not save bookmark: "+err.Error())
		return nil
	}
	a.saveStore()
	a.log.Info().Str("guid", b.GUID).Str("url", b.URL).Msg("bookmark added")
	return a.showSnackbar(SnackbarState{
		Text:     "Bookmark saved!",
		Action:   ActionEdit,
		EditGUID: b.GUID,
	})
}

func (a *App) sharePage() tea.Cmd {
	if a.page == nil {
		return nil
	}
	return a.shareCmd([]browser.Link{{Title: a.page.Title, URL: a.page.URL}})
}

// openMenu shows the three-dot menu for the current screen.
func (a *App) openMenu() {
	a.menu = MenuState{Open: true, Items: a.menuItems()}
}

func (a App) menuItems() []MenuItem {
	if a.screen != ScreenBrowser {
		return []MenuItem{
			{Label: "Bookmarks", action: actionBookmarks},
			{Label: "Open URL", action: actionOpenURL},
			{Label: "Quit", action: actionQuit},
		}
	}

	items := []MenuItem{{Label: "Bookmarks", action: actionBookmarks}}
	if a.pageBookmarked() {
		items = append(items, MenuItem{Label: "Edit bookmark", action: actionEditBookmark})
	} else {
		items = append(items, MenuItem{Label: "Add bookmark", action: actionAddBookmark})
	}
	return append(items,
		MenuItem{Label: "Share", action: actionSharePage},
		MenuItem{Label: "Open in system browser", action: actionOpenExternal},
		MenuItem{Label: "Home", action: actionHome},
	)
}

func (a App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Down):
		if a.menu.Cursor < len(a.menu.Items)-1 {
			a.menu.Cursor++
		}
	case key.Matches(msg, a.keys.Up):
		if a.menu.Cursor > 0 {
			a.menu.Cursor--
		}
	case key.Matches(msg, a.keys.Confirm):
		if len(a.menu.Items) == 0 {
			a.menu = MenuState{}
			return a, nil
		}
		action := a.menu.Items[a.menu.Cursor].action
		a.menu = MenuState{}
		return a.runMenuAction(action)
	case key.Matches(msg, a.keys.Back), key.Matches(msg, a.keys.Menu):
		a.menu = MenuState{}
	}
	return a, nil
}

func (a App) runMenuAction(action menuAction) (tea.Model, tea.Cmd) {
	a.log.Debug().Int("action", int(action)).Msg("menu action")
	switch action {
	case actionBookmarks:
		a.openBookmarks()
	case actionOpenURL:
		a.startURLEntry()
	case actionAddBookmark:
		cmd := a.addPageBookmark()
		return a, cmd
	case actionEditBookmark:
		if b := a.store.FindBookmarkByURL(a.page.URL); b != nil {
			a.openEditBookmark(b.GUID)
		}
	case actionSharePage:
		cmd := a.sharePage()
		return a, cmd
	case actionOpenExternal:
		if a.page != nil {
			return a, a.openExternalCmd(a.page.URL)
		}
	case actionHome:
		a.goHome()
	case actionQuit:
		return a, tea.Quit
	}
	return a, nil
}
