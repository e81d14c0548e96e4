package model

import (
	"net/url"
	"strings"
	"time"
)

// Bookmark represents a saved URL inside a folder.
type Bookmark struct {
	GUID       string     `json:"guid"`
	Title      string     `json:"title"`
	URL        string     `json:"url"`
	ParentGUID string     `json:"parentGuid"`
	Position   int        `json:"position"`
	CreatedAt  time.Time  `json:"createdAt"`
	VisitedAt  *time.Time `json:"visitedAt"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title      string
	URL        string
	ParentGUID string // empty = mobile root
}

// NewBookmark creates a Bookmark with a generated GUID and timestamp.
// The position is assigned when the bookmark is added to a Store.
func NewBookmark(params NewBookmarkParams) Bookmark {
	parent := params.ParentGUID
	if parent == "" {
		parent = MobileRoot
	}

	return Bookmark{
		GUID:       NewGUID(),
		Title:      strings.TrimSpace(params.Title),
		URL:        strings.TrimSpace(params.URL),
		ParentGUID: parent,
		CreatedAt:  time.Now(),
	}
}

// ValidateURL checks that raw is an absolute URL with a scheme and host.
func ValidateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return ErrInvalidURL
	}
	if u.Host == "" && u.Scheme != "file" && u.Scheme != "about" {
		return ErrInvalidURL
	}
	return nil
}
