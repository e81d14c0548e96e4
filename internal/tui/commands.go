package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/mbm/internal/browser"
)

const pageLoadTimeout = 15 * time.Second

type pageLoadedMsg struct {
	page browser.Page
}

type pageLoadFailedMsg struct {
	url string
	err error
}

type shareDoneMsg struct {
	count int
	err   error
}

type externalOpenedMsg struct {
	url string
	err error
}

type snackbarExpiredMsg struct {
	id int
}

// loadPageCmd fetches rawURL with the configured loader. Without a loader
// the page is shown with its URL only.
func (a App) loadPageCmd(rawURL string) tea.Cmd {
	loader := a.loader
	return func() tea.Msg {
		if loader == nil {
			return pageLoadedMsg{page: browser.Page{URL: rawURL}}
		}
		ctx, cancel := context.WithTimeout(context.Background(), pageLoadTimeout)
		defer cancel()
		page, err := loader.Load(ctx, rawURL)
		if err != nil {
			return pageLoadFailedMsg{url: rawURL, err: err}
		}
		return pageLoadedMsg{page: page}
	}
}

func (a App) shareCmd(links []browser.Link) tea.Cmd {
	sharer := a.sharer
	if sharer == nil || len(links) == 0 {
		return nil
	}
	return func() tea.Msg {
		return shareDoneMsg{count: len(links), err: sharer.Share(links)}
	}
}

func (a App) openExternalCmd(url string) tea.Cmd {
	opener := a.opener
	if opener == nil {
		return nil
	}
	return func() tea.Msg {
		return externalOpenedMsg{url: url, err: opener(url)}
	}
}

// showSnackbar replaces the current snackbar and schedules its expiry.
func (a *App) showSnackbar(s SnackbarState) tea.Cmd {
	s.ID = a.snackbar.ID + 1
	a.snackbar = s
	return a.scheduler.After(a.snackbarDuration, snackbarExpiredMsg{id: s.ID})
}

// dismissSnackbar hides the snackbar, keeping the generation counter.
func (a *App) dismissSnackbar() {
	a.snackbar = SnackbarState{ID: a.snackbar.ID}
}
