package tui_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/fixture"
	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/robot"
	"github.com/nikbrunner/mbm/internal/storage"
	"github.com/nikbrunner/mbm/internal/tui"
)

const snackbarDuration = 4 * time.Second

// db is shared by every scenario; each one purges what it created.
var db storage.Storage

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "mbm-tui-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	db, err = storage.Open(storage.BackendSQLite, dir, zerolog.Nop())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	code := m.Run()

	_ = db.Close()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type scenario struct {
	d      *robot.Driver
	srv    *fixture.Server
	sharer *robot.FakeSharer
}

// startScenario serves fixture pages, loads the shared database and
// launches the app on the home screen. seed runs against the loaded store
// before launch.
func startScenario(t *testing.T, seed func(store *model.Store, srv *fixture.Server)) *scenario {
	t.Helper()

	srv, err := fixture.Start("", zerolog.Nop())
	assert.NilError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	store, err := db.Load()
	assert.NilError(t, err)
	if seed != nil {
		seed(store, srv)
		assert.NilError(t, db.Save(store))
	}

	sharer := &robot.FakeSharer{}
	d := robot.Launch(t, tui.AppParams{
		Store:            store,
		Storage:          db,
		Loader:           browser.NewHTTPLoader(5*time.Second, zerolog.Nop()),
		Sharer:           sharer,
		Logger:           zerolog.Nop(),
		SnackbarDuration: snackbarDuration,
	})
	t.Cleanup(func() { purge(t, d.App().Store()) })

	return &scenario{d: d, srv: srv, sharer: sharer}
}

// purge removes every node under the mobile root and persists the result.
func purge(t *testing.T, store *model.Store) {
	t.Helper()
	root, err := store.GetTree(model.MobileRoot)
	assert.NilError(t, err)
	for _, child := range root.Children {
		_, err := store.DeleteNode(child.GUID)
		assert.NilError(t, err)
	}
	assert.NilError(t, db.Save(store))
}

// seedGeneric adds generic pages 1..n as bookmarks under the mobile root.
func seedGeneric(t *testing.T, n int) func(*model.Store, *fixture.Server) {
	return func(store *model.Store, srv *fixture.Server) {
		t.Helper()
		for i := 1; i <= n; i++ {
			asset := srv.GenericAsset(i)
			_, err := store.AddBookmark(model.NewBookmark(model.NewBookmarkParams{
				Title: asset.Title,
				URL:   asset.URL,
			}))
			assert.NilError(t, err)
		}
	}
}

func TestBookmarks_EmptyState(t *testing.T) {
	s := startScenario(t, nil)

	s.d.Home().
		OpenBookmarks().
		VerifyFolderTitle("Bookmarks").
		VerifyEmpty()
}

func TestBookmarks_AddFromBrowser(t *testing.T) {
	s := startScenario(t, nil)
	page := s.srv.GenericAsset(1)

	browserRobot := s.d.Home().
		OpenURL(page.URL).
		VerifyPage(page.URL, page.Title)

	browserRobot.OpenMenu().
		VerifyHasItem("Add bookmark").
		VerifyNoItem("Edit bookmark").
		Close()

	browserRobot.AddBookmark().
		VerifySnackbar("Bookmark saved!", tui.ActionEdit)

	browserRobot.OpenMenu().
		VerifyHasItem("Edit bookmark").
		VerifyNoItem("Add bookmark").
		Close()

	browserRobot.OpenBookmarks().
		VerifyBookmark(page.Title, page.URL, "[T]")

	// persisted
	stored, err := db.Load()
	assert.NilError(t, err)
	assert.Assert(t, stored.HasBookmarkURL(page.URL))
}

func TestBookmarks_EditFromSnackbar(t *testing.T) {
	s := startScenario(t, nil)
	page := s.srv.GenericAsset(1)

	s.d.Home().
		OpenURL(page.URL).
		AddBookmark().
		EditFromSnackbar().
		VerifyValues(page.Title, page.URL).
		VerifyFolder("Bookmarks").
		SetTitle("Renamed").
		Save()

	s.d.Browser().
		OpenBookmarks().
		VerifyBookmark("Renamed", page.URL, "[R]")
}

func TestBookmarks_AddFolder(t *testing.T) {
	s := startScenario(t, nil)

	s.d.Home().
		OpenBookmarks().
		AddFolder().
		TypeName("Reading").
		Confirm().
		VerifyFolder("Reading")
}

func TestBookmarks_AddFolderCancel(t *testing.T) {
	s := startScenario(t, nil)

	s.d.Home().
		OpenBookmarks().
		AddFolder().
		TypeName("Reading").
		Cancel().
		VerifyEmpty()
}

func TestBookmarks_AddFolderEmptyNameRejected(t *testing.T) {
	s := startScenario(t, nil)

	s.d.Home().
		OpenBookmarks().
		AddFolder().
		ConfirmRejected().
		Cancel().
		VerifyEmpty()
}

func TestBookmarks_EditBookmark(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)
	other := s.srv.GenericAsset(2)

	s.d.Home().
		OpenBookmarks().
		Edit(page.Title).
		VerifyFields().
		VerifyValues(page.Title, page.URL).
		SetTitle("Edited").
		SetURL(other.URL).
		Save()

	s.d.Bookmarks().
		Leave().
		Home().
		OpenBookmarks().
		VerifyNoItem(page.Title).
		VerifyBookmark("Edited", other.URL, "[E]")
}

func TestBookmarks_DeleteAndUndo(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)

	bookmarks := s.d.Home().
		OpenBookmarks().
		Delete(page.Title).
		VerifySnackbar("Deleted "+page.Title, tui.ActionUndo).
		VerifyEmpty()

	bookmarks.Undo().
		VerifySnackbar("", "").
		VerifyItem(page.Title).
		VerifyBookmark(page.Title, page.URL, "[T]")
}

func TestBookmarks_UndoAfterLeavingList(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)

	s.d.Home().
		OpenBookmarks().
		Delete(page.Title).
		Leave().
		Home().
		VerifySnackbar("Deleted "+page.Title, tui.ActionUndo).
		Undo().
		OpenBookmarks().
		VerifyBookmark(page.Title, page.URL, "[T]")
}

func TestBookmarks_DeleteFromBrowserEditFormAndUndo(t *testing.T) {
	s := startScenario(t, nil)
	page := s.srv.GenericAsset(1)

	s.d.Home().
		OpenURL(page.URL).
		AddBookmark().
		VerifyBookmarked(true).
		EditFromSnackbar().
		VerifyFields().
		Delete()

	s.d.Browser().
		VerifySnackbar("Deleted "+page.Title, tui.ActionUndo).
		VerifyBookmarked(false).
		Undo().
		VerifyBookmarked(true).
		GoHome().
		OpenBookmarks().
		VerifyBookmark(page.Title, page.URL, "[T]")

	stored, err := db.Load()
	assert.NilError(t, err)
	assert.Assert(t, stored.HasBookmarkURL(page.URL))
}

func TestBookmarks_DeleteFromEditFormAndUndo(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)

	s.d.Home().
		OpenBookmarks().
		Edit(page.Title).
		Delete()

	s.d.Bookmarks().
		VerifySnackbar("Deleted "+page.Title, tui.ActionUndo).
		VerifyEmpty().
		Undo().
		VerifyBookmark(page.Title, page.URL, "[T]")
}

func TestBookmarks_DeleteStandsAfterSnackbarExpires(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)

	s.d.Home().
		OpenBookmarks().
		Delete(page.Title).
		WaitForSnackbarToExpire(snackbarDuration).
		VerifyEmpty()

	stored, err := db.Load()
	assert.NilError(t, err)
	assert.Assert(t, !stored.HasBookmarkURL(page.URL))
}

func TestBookmarks_MultiSelectCountAndClose(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 3))
	p1, p2 := s.srv.GenericAsset(1), s.srv.GenericAsset(2)

	s.d.Home().
		OpenBookmarks().
		Select(p1.Title).
		VerifyCount(1).
		Toggle(p2.Title).
		VerifyCount(2).
		VerifySelected(p1.Title).
		VerifySelected(p2.Title).
		Close().
		VerifyFolderTitle("Bookmarks")
}

func TestBookmarks_MultiSelectShare(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 3))
	p1, p3 := s.srv.GenericAsset(1), s.srv.GenericAsset(3)

	s.d.Home().
		OpenBookmarks().
		Select(p1.Title).
		Toggle(p3.Title).
		Share()

	assert.Equal(t, len(s.sharer.Shares()), 1)
	assert.DeepEqual(t, s.sharer.Last(), []browser.Link{
		{Title: p1.Title, URL: p1.URL},
		{Title: p3.Title, URL: p3.URL},
	})
}

func TestBookmarks_MultiSelectDeleteLeavesRest(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 3))
	p1, p2, p3 := s.srv.GenericAsset(1), s.srv.GenericAsset(2), s.srv.GenericAsset(3)

	s.d.Home().
		OpenBookmarks().
		Select(p1.Title).
		Toggle(p2.Title).
		Delete().
		VerifyNoItem(p1.Title).
		VerifyNoItem(p2.Title).
		VerifyTitles(p3.Title)
}

func TestBookmarks_MoveBookmarkToFolder(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 1))
	page := s.srv.GenericAsset(1)

	list := s.d.Home().
		OpenBookmarks().
		AddFolder().
		TypeName("Reading").
		Confirm()

	list.Edit(page.Title).
		ChooseFolder().
		VerifyOptions("Bookmarks", "Reading").
		ChooseForBookmark("Reading").
		VerifyFolder("Reading").
		Save()

	s.d.Bookmarks().
		VerifyTitles("Reading").
		OpenFolder("Reading").
		VerifyFolderTitle("Reading").
		VerifyBookmark(page.Title, page.URL, "[T]")
}

func TestBookmarks_NestedNavigationAndBack(t *testing.T) {
	s := startScenario(t, func(store *model.Store, srv *fixture.Server) {
		outer, err := store.AddFolder(model.NewFolder(model.NewFolderParams{Title: "Outer"}))
		assert.NilError(t, err)
		inner, err := store.AddFolder(model.NewFolder(model.NewFolderParams{Title: "Inner", ParentGUID: outer.GUID}))
		assert.NilError(t, err)
		asset := srv.GenericAsset(1)
		_, err = store.AddBookmark(model.NewBookmark(model.NewBookmarkParams{Title: asset.Title, URL: asset.URL, ParentGUID: inner.GUID}))
		assert.NilError(t, err)
	})
	page := s.srv.GenericAsset(1)

	list := s.d.Home().
		OpenBookmarks().
		OpenFolder("Outer").
		VerifyFolderTitle("Outer").
		OpenFolder("Inner").
		VerifyFolderTitle("Inner").
		VerifyBookmark(page.Title, page.URL, "[T]")

	list.NavigateUp().VerifyFolderTitle("Outer").
		NavigateUp().VerifyFolderTitle("Bookmarks").
		OpenFolder("Outer").
		Back().VerifyFolderTitle("Bookmarks").
		Leave().
		Home()
}

func TestBookmarks_OpenBookmarkLoadsPage(t *testing.T) {
	s := startScenario(t, seedGeneric(t, 2))
	page := s.srv.GenericAsset(2)

	s.d.Home().
		OpenBookmarks().
		OpenBookmark(page.Title).
		VerifyPage(page.URL, page.Title)
}

func TestBookmarks_ReparentFolder(t *testing.T) {
	s := startScenario(t, func(store *model.Store, srv *fixture.Server) {
		for _, title := range []string{"Work", "Archive"} {
			_, err := store.AddFolder(model.NewFolder(model.NewFolderParams{Title: title}))
			assert.NilError(t, err)
		}
	})

	s.d.Home().
		OpenBookmarks().
		EditFolder("Work").
		ChooseParent().
		VerifyOptions("Bookmarks", "Archive").
		ChooseForFolder("Archive").
		Save().
		VerifyTitles("Archive").
		OpenFolder("Archive").
		VerifyFolder("Work")
}

func TestBookmarks_DeleteFoldersLeavesRemaining(t *testing.T) {
	s := startScenario(t, nil)

	list := s.d.Home().OpenBookmarks()
	for _, title := range []string{"1", "2", "3"} {
		list = list.AddFolder().TypeName(title).Confirm()
	}
	list.VerifyTitles("1", "2", "3").
		Delete("1").
		Delete("2").
		Leave().
		Home().
		OpenBookmarks().
		VerifyTitles("3").
		VerifyFolder("3")
}

func TestBookmarks_MultiSelectDeleteFolders(t *testing.T) {
	s := startScenario(t, nil)

	list := s.d.Home().OpenBookmarks()
	for _, title := range []string{"1", "2", "3"} {
		list = list.AddFolder().TypeName(title).Confirm()
	}
	list.Select("1").
		Toggle("2").
		VerifyCount(2).
		Delete().
		Leave().
		Home().
		OpenBookmarks().
		VerifyTitles("3")
}
