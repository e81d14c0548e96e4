package storage_test

import (
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/storage"
)

func newSQLite(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "bookmarks.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStorage_SaveAndLoad(t *testing.T) {
	s := newSQLite(t)
	now := time.Now().Truncate(time.Second) // RFC3339 drops sub-second precision

	store := model.NewStore()
	dev, err := store.AddFolder(model.Folder{GUID: "f1", Title: "Development", CreatedAt: now})
	assert.NilError(t, err)
	_, err = store.AddBookmark(model.Bookmark{
		GUID:       "b1",
		Title:      "Test",
		URL:        "https://example.com",
		ParentGUID: dev.GUID,
		CreatedAt:  now,
		VisitedAt:  &now,
	})
	assert.NilError(t, err)

	assert.NilError(t, s.Save(store))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.Assert(t, is.Len(loaded.Folders, 1))
	assert.Assert(t, is.Len(loaded.Bookmarks, 1))
	assert.Equal(t, loaded.Folders[0].Title, "Development")
	assert.Equal(t, loaded.Folders[0].ParentGUID, model.MobileRoot)
	assert.Equal(t, loaded.Bookmarks[0].ParentGUID, "f1")
	assert.Assert(t, loaded.Bookmarks[0].CreatedAt.Equal(now))
	assert.Assert(t, loaded.Bookmarks[0].VisitedAt != nil)
	assert.Assert(t, loaded.Bookmarks[0].VisitedAt.Equal(now))
}

func TestSQLiteStorage_EmptyDatabase(t *testing.T) {
	s := newSQLite(t)

	store, err := s.Load()
	assert.NilError(t, err)
	assert.Check(t, is.Len(store.Folders, 0))
	assert.Check(t, is.Len(store.Bookmarks, 0))
}

func TestSQLiteStorage_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "bookmarks.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	defer s.Close()

	assert.NilError(t, s.Save(model.NewStore()))
}

func TestSQLiteStorage_SaveReplacesContents(t *testing.T) {
	s := newSQLite(t)

	first := model.NewStore()
	_, err := first.AddFolder(model.Folder{Title: "Original"})
	assert.NilError(t, err)
	assert.NilError(t, s.Save(first))

	second := model.NewStore()
	_, err = second.AddFolder(model.Folder{Title: "Updated"})
	assert.NilError(t, err)
	assert.NilError(t, s.Save(second))

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.Assert(t, is.Len(loaded.Folders, 1))
	assert.Equal(t, loaded.Folders[0].Title, "Updated")
}

func TestSQLiteStorage_PreservesPositions(t *testing.T) {
	s := newSQLite(t)

	store := model.NewStore()
	for _, title := range []string{"1", "2", "3"} {
		_, err := store.AddFolder(model.Folder{Title: title})
		assert.NilError(t, err)
	}
	_, err := store.AddBookmark(model.Bookmark{Title: "last", URL: "https://last.example"})
	assert.NilError(t, err)
	first := store.Children(model.MobileRoot)[0]
	_, err = store.DeleteNode(first.GUID)
	assert.NilError(t, err)
	assert.NilError(t, s.Save(store))

	loaded, err := s.Load()
	assert.NilError(t, err)

	var got []string
	for _, n := range loaded.Children(model.MobileRoot) {
		got = append(got, n.Title)
	}
	assert.DeepEqual(t, got, []string{"2", "3", "last"})
}

func TestSQLiteStorage_ReopenSkipsMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")

	s, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	store := model.NewStore()
	_, err = store.AddBookmark(model.Bookmark{Title: "kept", URL: "https://kept.example"})
	assert.NilError(t, err)
	assert.NilError(t, s.Save(store))
	assert.NilError(t, s.Close())

	reopened, err := storage.NewSQLiteStorage(dbPath)
	assert.NilError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load()
	assert.NilError(t, err)
	assert.Assert(t, loaded.HasBookmarkURL("https://kept.example"))
}
