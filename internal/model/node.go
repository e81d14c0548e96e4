package model

// NodeType distinguishes folders from bookmarks in a tree.
type NodeType int

const (
	NodeFolder NodeType = iota
	NodeBookmark
)

// Node is a read-only view of a folder or bookmark and, for trees returned
// by GetTree, its ordered children.
type Node struct {
	GUID       string
	Type       NodeType
	Title      string
	URL        string // empty for folders
	ParentGUID string // empty for the mobile root
	Position   int
	Children   []Node
}

// IsFolder returns true if the node is a folder.
func (n Node) IsFolder() bool {
	return n.Type == NodeFolder
}

func folderNode(f Folder) Node {
	return Node{
		GUID:       f.GUID,
		Type:       NodeFolder,
		Title:      f.Title,
		ParentGUID: f.ParentGUID,
		Position:   f.Position,
	}
}

func bookmarkNode(b Bookmark) Node {
	return Node{
		GUID:       b.GUID,
		Type:       NodeBookmark,
		Title:      b.Title,
		URL:        b.URL,
		ParentGUID: b.ParentGUID,
		Position:   b.Position,
	}
}

// Tombstone holds everything removed by DeleteNode so it can be restored.
// GUID names the top node of the removed subtree.
type Tombstone struct {
	GUID      string
	Folders   []Folder
	Bookmarks []Bookmark
}

// URL returns the URL of the deleted node when it is a bookmark.
func (t Tombstone) URL() string {
	for _, b := range t.Bookmarks {
		if b.GUID == t.GUID {
			return b.URL
		}
	}
	return ""
}

// Title returns the title of the deleted top node.
func (t Tombstone) Title() string {
	for _, f := range t.Folders {
		if f.GUID == t.GUID {
			return f.Title
		}
	}
	for _, b := range t.Bookmarks {
		if b.GUID == t.GUID {
			if b.Title == "" {
				return b.URL
			}
			return b.Title
		}
	}
	return ""
}

// FolderChoice is one entry of a flattened folder hierarchy.
type FolderChoice struct {
	GUID  string
	Title string
	Depth int
}
