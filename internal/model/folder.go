package model

import (
	"strings"
	"time"
)

// MobileRoot is the GUID of the top-level folder that holds every
// user-created bookmark and folder. It is never stored as a Folder.
const MobileRoot = "mobile______"

// RootTitle is the display title of the mobile root.
const RootTitle = "Bookmarks"

// Folder represents a container for bookmarks and other folders.
type Folder struct {
	GUID       string    `json:"guid"`
	Title      string    `json:"title"`
	ParentGUID string    `json:"parentGuid"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewFolderParams holds parameters for creating a new Folder.
type NewFolderParams struct {
	Title      string
	ParentGUID string // empty = mobile root
}

// NewFolder creates a Folder with a generated GUID.
func NewFolder(params NewFolderParams) Folder {
	parent := params.ParentGUID
	if parent == "" {
		parent = MobileRoot
	}

	return Folder{
		GUID:       NewGUID(),
		Title:      strings.TrimSpace(params.Title),
		ParentGUID: parent,
		CreatedAt:  time.Now(),
	}
}
