package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/tui/layout"
)

// Screen identifies the screen the app is showing.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenOpenURL
	ScreenBrowser
	ScreenBookmarks
	ScreenAddFolder
	ScreenEditBookmark
	ScreenEditFolder
	ScreenSelectFolder
)

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "home"
	case ScreenOpenURL:
		return "open-url"
	case ScreenBrowser:
		return "browser"
	case ScreenBookmarks:
		return "bookmarks"
	case ScreenAddFolder:
		return "add-folder"
	case ScreenEditBookmark:
		return "edit-bookmark"
	case ScreenEditFolder:
		return "edit-folder"
	case ScreenSelectFolder:
		return "select-folder"
	default:
		return "unknown"
	}
}

// MessageType determines the styling of status messages.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// newInput builds a text input with a static cursor so rendering does not
// depend on blink timers.
func newInput(placeholder string, limit, width int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = width
	input.Cursor.SetMode(cursor.CursorStatic)
	return input
}

// menuAction is what a three-dot menu entry does when chosen.
type menuAction int

const (
	actionBookmarks menuAction = iota
	actionOpenURL
	actionAddBookmark
	actionEditBookmark
	actionSharePage
	actionOpenExternal
	actionHome
	actionQuit
)

// MenuItem is one entry of the three-dot menu.
type MenuItem struct {
	Label  string
	action menuAction
}

// MenuState holds the three-dot menu overlay.
type MenuState struct {
	Open   bool
	Items  []MenuItem
	Cursor int
}

// ListState holds folder navigation in the bookmarks list.
type ListState struct {
	FolderGUID string // folder being shown
	Cursor     int
	Items      []Item
	Origin     Screen // screen the list was opened from
}

// AtRoot returns true if the list shows the mobile root.
func (l *ListState) AtRoot() bool {
	return l.FolderGUID == model.MobileRoot
}

// FilterState holds the local filter of the current folder.
type FilterState struct {
	Input  textinput.Model
	Active bool   // typing into the filter
	Query  string // applied query, kept after typing ends
}

// Reset clears the filter.
func (f *FilterState) Reset() {
	f.Input.Reset()
	f.Input.Blur()
	f.Active = false
	f.Query = ""
}

// SelectionState holds multi-select mode.
type SelectionState struct {
	Active   bool
	Selected map[string]bool // selected node GUIDs
}

// NewSelectionState creates an empty SelectionState.
func NewSelectionState() SelectionState {
	return SelectionState{Selected: make(map[string]bool)}
}

// Reset leaves selection mode and clears all selections.
func (s *SelectionState) Reset() {
	s.Active = false
	s.Selected = make(map[string]bool)
}

// Toggle adds or removes a GUID from the selection.
func (s *SelectionState) Toggle(guid string) {
	if s.Selected[guid] {
		delete(s.Selected, guid)
	} else {
		s.Selected[guid] = true
	}
}

// IsSelected returns true if the GUID is selected.
func (s *SelectionState) IsSelected(guid string) bool {
	return s.Selected[guid]
}

// Count returns the number of selected items.
func (s *SelectionState) Count() int {
	return len(s.Selected)
}

// HasSelection returns true if any items are selected.
func (s *SelectionState) HasSelection() bool {
	return len(s.Selected) > 0
}

// FormField is a focusable field of the edit forms.
type FormField int

const (
	FieldName FormField = iota
	FieldURL
	FieldFolder
)

// String returns the field label.
func (f FormField) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldURL:
		return "URL"
	case FieldFolder:
		return "Folder"
	default:
		return ""
	}
}

// FormState holds the add folder, edit bookmark and edit folder forms.
type FormState struct {
	TitleInput textinput.Model
	URLInput   textinput.Model
	Focus      FormField
	EditGUID   string // node being edited, empty when adding
	ParentGUID string // chosen parent folder
	ReturnTo   Screen
}

// NewFormState creates a FormState with initialized inputs.
func NewFormState(cfg layout.LayoutConfig) FormState {
	return FormState{
		TitleInput: newInput("Name", cfg.Input.TitleCharLimit, cfg.Input.StandardWidth),
		URLInput:   newInput("https://", cfg.Input.URLCharLimit, cfg.Input.StandardWidth),
		ParentGUID: model.MobileRoot,
	}
}

// focus moves focus to field and updates input focus accordingly.
func (f *FormState) focus(field FormField) {
	f.Focus = field
	f.TitleInput.Blur()
	f.URLInput.Blur()
	switch field {
	case FieldName:
		_ = f.TitleInput.Focus()
	case FieldURL:
		_ = f.URLInput.Focus()
	}
}

// cycle moves focus by delta through fields, wrapping around.
func (f *FormState) cycle(fields []FormField, delta int) {
	idx := 0
	for i, field := range fields {
		if field == f.Focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	f.focus(fields[idx])
}

// PickerState holds the folder picker.
type PickerState struct {
	Choices  []model.FolderChoice
	Cursor   int
	ReturnTo Screen
}

// Snackbar actions.
const (
	ActionUndo = "UNDO"
	ActionEdit = "EDIT"
)

// SnackbarState holds the transient bottom notification.
type SnackbarState struct {
	ID       int // generation, matched against expiry messages
	Text     string
	Action   string
	Tomb     *model.Tombstone // deletion that UNDO restores
	EditGUID string           // bookmark that EDIT opens
}

// Visible returns true while the snackbar is shown.
func (s SnackbarState) Visible() bool {
	return s.Text != ""
}
