package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Store holds all bookmarks and folders below the mobile root.
type Store struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
	}
}

// Children returns the direct children of a folder ordered by position.
func (s *Store) Children(parentGUID string) []Node {
	var result []Node
	for _, f := range s.Folders {
		if f.ParentGUID == parentGUID {
			result = append(result, folderNode(f))
		}
	}
	for _, b := range s.Bookmarks {
		if b.ParentGUID == parentGUID {
			result = append(result, bookmarkNode(b))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result
}

// GetTree returns the node with the given GUID and all of its descendants.
func (s *Store) GetTree(guid string) (*Node, error) {
	var root Node
	switch {
	case guid == MobileRoot:
		root = Node{GUID: MobileRoot, Type: NodeFolder, Title: RootTitle}
	case s.GetFolderByGUID(guid) != nil:
		root = folderNode(*s.GetFolderByGUID(guid))
	case s.GetBookmarkByGUID(guid) != nil:
		return ptr(bookmarkNode(*s.GetBookmarkByGUID(guid))), nil
	default:
		return nil, fmt.Errorf("get tree %s: %w", guid, ErrNotFound)
	}

	root.Children = s.subtree(root.GUID)
	return &root, nil
}

func (s *Store) subtree(parentGUID string) []Node {
	children := s.Children(parentGUID)
	for i := range children {
		if children[i].IsFolder() {
			children[i].Children = s.subtree(children[i].GUID)
		}
	}
	return children
}

// GetFolderByGUID finds a folder by GUID, returns nil if not found.
func (s *Store) GetFolderByGUID(guid string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].GUID == guid {
			return &s.Folders[i]
		}
	}
	return nil
}

// GetBookmarkByGUID finds a bookmark by GUID, returns nil if not found.
func (s *Store) GetBookmarkByGUID(guid string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].GUID == guid {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// FindBookmarkByURL returns the first bookmark with the given URL, or nil.
func (s *Store) FindBookmarkByURL(url string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].URL == url {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// HasBookmarkURL reports whether any bookmark points at url.
func (s *Store) HasBookmarkURL(url string) bool {
	return s.FindBookmarkByURL(url) != nil
}

// FolderTitle returns the display title of a folder, including the root.
func (s *Store) FolderTitle(guid string) string {
	if guid == MobileRoot {
		return RootTitle
	}
	if f := s.GetFolderByGUID(guid); f != nil {
		return f.Title
	}
	return ""
}

// isFolder reports whether guid names the root or a stored folder.
func (s *Store) isFolder(guid string) bool {
	return guid == MobileRoot || s.GetFolderByGUID(guid) != nil
}

// AddBookmark appends b at the end of its parent folder.
func (s *Store) AddBookmark(b Bookmark) (Bookmark, error) {
	if err := ValidateURL(b.URL); err != nil {
		return Bookmark{}, fmt.Errorf("add bookmark %q: %w", b.URL, err)
	}
	if b.ParentGUID == "" {
		b.ParentGUID = MobileRoot
	}
	if !s.isFolder(b.ParentGUID) {
		return Bookmark{}, fmt.Errorf("add bookmark to %s: %w", b.ParentGUID, ErrNotFolder)
	}
	if b.GUID == "" {
		b.GUID = NewGUID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}

	b.Position = len(s.Children(b.ParentGUID))
	s.Bookmarks = append(s.Bookmarks, b)
	return b, nil
}

// AddFolder appends f at the end of its parent folder.
func (s *Store) AddFolder(f Folder) (Folder, error) {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return Folder{}, ErrEmptyTitle
	}
	if f.ParentGUID == "" {
		f.ParentGUID = MobileRoot
	}
	if !s.isFolder(f.ParentGUID) {
		return Folder{}, fmt.Errorf("add folder to %s: %w", f.ParentGUID, ErrNotFolder)
	}
	if f.GUID == "" {
		f.GUID = NewGUID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	f.Position = len(s.Children(f.ParentGUID))
	s.Folders = append(s.Folders, f)
	return f, nil
}

// UpdateBookmark changes the title and URL of a bookmark. An empty title
// is stored as empty and displayed as the URL.
func (s *Store) UpdateBookmark(guid, title, url string) error {
	b := s.GetBookmarkByGUID(guid)
	if b == nil {
		return fmt.Errorf("update bookmark %s: %w", guid, ErrNotFound)
	}
	if err := ValidateURL(url); err != nil {
		return fmt.Errorf("update bookmark %s: %w", guid, err)
	}
	b.Title = strings.TrimSpace(title)
	b.URL = strings.TrimSpace(url)
	return nil
}

// UpdateFolder renames a folder.
func (s *Store) UpdateFolder(guid, title string) error {
	if guid == MobileRoot {
		return ErrRootImmutable
	}
	f := s.GetFolderByGUID(guid)
	if f == nil {
		return fmt.Errorf("update folder %s: %w", guid, ErrNotFound)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	f.Title = title
	return nil
}

// MarkVisited stamps the visited-at time of a bookmark.
func (s *Store) MarkVisited(guid string, at time.Time) error {
	b := s.GetBookmarkByGUID(guid)
	if b == nil {
		return fmt.Errorf("mark visited %s: %w", guid, ErrNotFound)
	}
	b.VisitedAt = &at
	return nil
}

// Move reparents a node to the end of newParent. Moving a node to its
// current parent is a no-op. A folder cannot move into its own subtree.
func (s *Store) Move(guid, newParent string) error {
	if guid == MobileRoot {
		return ErrRootImmutable
	}
	if !s.isFolder(newParent) {
		return fmt.Errorf("move %s to %s: %w", guid, newParent, ErrNotFolder)
	}

	if b := s.GetBookmarkByGUID(guid); b != nil {
		if b.ParentGUID == newParent {
			return nil
		}
		old := b.ParentGUID
		b.Position = len(s.Children(newParent))
		b.ParentGUID = newParent
		s.compact(old)
		return nil
	}

	f := s.GetFolderByGUID(guid)
	if f == nil {
		return fmt.Errorf("move %s: %w", guid, ErrNotFound)
	}
	if f.ParentGUID == newParent {
		return nil
	}
	if newParent == guid || s.isDescendant(newParent, guid) {
		return ErrInvalidMove
	}
	old := f.ParentGUID
	f.Position = len(s.Children(newParent))
	f.ParentGUID = newParent
	s.compact(old)
	return nil
}

// isDescendant reports whether guid lies below ancestor.
func (s *Store) isDescendant(guid, ancestor string) bool {
	for guid != MobileRoot && guid != "" {
		f := s.GetFolderByGUID(guid)
		if f == nil {
			return false
		}
		if f.ParentGUID == ancestor {
			return true
		}
		guid = f.ParentGUID
	}
	return false
}

// DeleteNode removes a node and its subtree. The returned Tombstone can be
// passed to Restore.
func (s *Store) DeleteNode(guid string) (Tombstone, error) {
	if guid == MobileRoot {
		return Tombstone{}, ErrRootImmutable
	}

	var parent string
	switch {
	case s.GetBookmarkByGUID(guid) != nil:
		parent = s.GetBookmarkByGUID(guid).ParentGUID
	case s.GetFolderByGUID(guid) != nil:
		parent = s.GetFolderByGUID(guid).ParentGUID
	default:
		return Tombstone{}, fmt.Errorf("delete %s: %w", guid, ErrNotFound)
	}

	doomed := map[string]bool{guid: true}
	s.collect(guid, doomed)

	tomb := Tombstone{GUID: guid}
	folders := s.Folders[:0]
	for _, f := range s.Folders {
		if doomed[f.GUID] {
			tomb.Folders = append(tomb.Folders, f)
			continue
		}
		folders = append(folders, f)
	}
	s.Folders = folders

	bookmarks := s.Bookmarks[:0]
	for _, b := range s.Bookmarks {
		if doomed[b.GUID] || doomed[b.ParentGUID] {
			tomb.Bookmarks = append(tomb.Bookmarks, b)
			continue
		}
		bookmarks = append(bookmarks, b)
	}
	s.Bookmarks = bookmarks

	s.compact(parent)
	return tomb, nil
}

// collect adds every folder below guid to set.
func (s *Store) collect(guid string, set map[string]bool) {
	for _, f := range s.Folders {
		if f.ParentGUID == guid && !set[f.GUID] {
			set[f.GUID] = true
			s.collect(f.GUID, set)
		}
	}
}

// Restore reinserts a deleted subtree at its original position. Siblings
// at or after that position shift down by one. If the original parent no
// longer exists the node is restored under the mobile root.
func (s *Store) Restore(t Tombstone) error {
	if t.GUID == "" {
		return fmt.Errorf("restore: %w", ErrNotFound)
	}
	if s.GetBookmarkByGUID(t.GUID) != nil || s.GetFolderByGUID(t.GUID) != nil {
		return nil
	}

	folders := append([]Folder(nil), t.Folders...)
	bookmarks := append([]Bookmark(nil), t.Bookmarks...)

	var parent string
	var pos *int
	for i := range folders {
		if folders[i].GUID == t.GUID {
			parent, pos = folders[i].ParentGUID, &folders[i].Position
		}
	}
	for i := range bookmarks {
		if bookmarks[i].GUID == t.GUID {
			parent, pos = bookmarks[i].ParentGUID, &bookmarks[i].Position
		}
	}
	if pos == nil {
		return fmt.Errorf("restore %s: %w", t.GUID, ErrNotFound)
	}

	if !s.isFolder(parent) {
		parent = MobileRoot
		for i := range folders {
			if folders[i].GUID == t.GUID {
				folders[i].ParentGUID = parent
			}
		}
		for i := range bookmarks {
			if bookmarks[i].GUID == t.GUID {
				bookmarks[i].ParentGUID = parent
			}
		}
	}

	count := len(s.Children(parent))
	if *pos > count {
		*pos = count
	}
	for i := range s.Folders {
		if s.Folders[i].ParentGUID == parent && s.Folders[i].Position >= *pos {
			s.Folders[i].Position++
		}
	}
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ParentGUID == parent && s.Bookmarks[i].Position >= *pos {
			s.Bookmarks[i].Position++
		}
	}

	s.Folders = append(s.Folders, folders...)
	s.Bookmarks = append(s.Bookmarks, bookmarks...)
	return nil
}

// compact renumbers the children of parent to 0..n-1 keeping their order.
func (s *Store) compact(parent string) {
	for i, child := range s.Children(parent) {
		if child.IsFolder() {
			s.GetFolderByGUID(child.GUID).Position = i
		} else {
			s.GetBookmarkByGUID(child.GUID).Position = i
		}
	}
}

// FolderPath returns a slash-separated path from the root to a folder,
// e.g. "Bookmarks/Dev/Go".
func (s *Store) FolderPath(guid string) string {
	var parts []string
	for guid != MobileRoot && guid != "" {
		f := s.GetFolderByGUID(guid)
		if f == nil {
			break
		}
		parts = append([]string{f.Title}, parts...)
		guid = f.ParentGUID
	}
	return strings.Join(append([]string{RootTitle}, parts...), "/")
}

// AllFolders returns the folder hierarchy depth-first, starting with the
// mobile root. The subtree rooted at exclude is left out, which keeps a
// folder from being offered as its own new parent.
func (s *Store) AllFolders(exclude string) []FolderChoice {
	result := []FolderChoice{{GUID: MobileRoot, Title: RootTitle}}
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, child := range s.Children(parent) {
			if !child.IsFolder() || child.GUID == exclude {
				continue
			}
			result = append(result, FolderChoice{GUID: child.GUID, Title: child.Title, Depth: depth})
			walk(child.GUID, depth+1)
		}
	}
	walk(MobileRoot, 1)
	return result
}

// ImportResult counts the outcome of ImportMerge.
type ImportResult struct {
	Folders    int // folders added
	Bookmarks  int // bookmarks added
	Duplicates int // bookmarks skipped because their URL exists
	Invalid    int // nodes the store rejected, e.g. bookmarks with a bad URL
}

// ImportMerge adds imported folders and bookmarks in file order. Position
// carries that order for both kinds, so interleaved siblings keep their
// sequence. Folders whose title already exists under the same parent are
// reused and bookmarks whose URL already exists are skipped.
func (s *Store) ImportMerge(folders []Folder, bookmarks []Bookmark) ImportResult {
	var res ImportResult
	remap := map[string]string{}
	resolve := func(parent string) string {
		if parent == "" {
			return MobileRoot
		}
		if mapped, ok := remap[parent]; ok {
			return mapped
		}
		return parent
	}

	mergeFolder := func(f Folder) {
		parent := resolve(f.ParentGUID)
		if existing := s.findChildFolder(parent, f.Title); existing != nil {
			remap[f.GUID] = existing.GUID
			return
		}
		old := f.GUID
		f.GUID = ""
		f.ParentGUID = parent
		added, err := s.AddFolder(f)
		if err != nil {
			res.Invalid++
			return
		}
		remap[old] = added.GUID
		res.Folders++
	}

	mergeBookmark := func(b Bookmark) {
		if s.HasBookmarkURL(b.URL) {
			res.Duplicates++
			return
		}
		b.GUID = ""
		b.ParentGUID = resolve(b.ParentGUID)
		if _, err := s.AddBookmark(b); err != nil {
			res.Invalid++
			return
		}
		res.Bookmarks++
	}

	fi, bi := 0, 0
	for fi < len(folders) || bi < len(bookmarks) {
		if bi == len(bookmarks) || (fi < len(folders) && folders[fi].Position <= bookmarks[bi].Position) {
			mergeFolder(folders[fi])
			fi++
			continue
		}
		mergeBookmark(bookmarks[bi])
		bi++
	}
	return res
}

func (s *Store) findChildFolder(parent, title string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ParentGUID == parent && s.Folders[i].Title == title {
			return &s.Folders[i]
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
