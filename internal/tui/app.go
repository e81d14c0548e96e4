package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nikbrunner/mbm/internal/browser"
	"github.com/nikbrunner/mbm/internal/model"
	"github.com/nikbrunner/mbm/internal/search"
	"github.com/nikbrunner/mbm/internal/storage"
	"github.com/nikbrunner/mbm/internal/tui/layout"
)

// DefaultSnackbarDuration is how long a snackbar stays before it expires.
const DefaultSnackbarDuration = 4 * time.Second

// App is the main bubbletea model of the mobile browser.
type App struct {
	store        *model.Store
	storage      storage.Storage
	loader       browser.Loader
	sharer       browser.Sharer
	opener       func(url string) error
	scheduler    Scheduler
	log          zerolog.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	screen   Screen
	urlFrom  Screen // screen URL entry returns to on Esc
	menu     MenuState
	page     *browser.Page
	loading  string // URL being loaded
	urlInput textinput.Model

	list      ListState
	filter    FilterState
	selection SelectionState
	form      FormState
	picker    PickerState

	snackbar         SnackbarState
	snackbarDuration time.Duration

	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store            *model.Store
	Storage          storage.Storage        // optional, nil disables persistence
	Loader           browser.Loader         // optional, nil shows pages by URL only
	Sharer           browser.Sharer         // optional, nil disables sharing
	Opener           func(url string) error // optional, nil disables external open
	Scheduler        Scheduler              // optional, uses TickScheduler if nil
	Logger           zerolog.Logger
	Keys             *KeyMap              // optional, uses default if nil
	Styles           *Styles              // optional, uses default if nil
	LayoutConfig     *layout.LayoutConfig // optional, uses default if nil
	SnackbarDuration time.Duration        // optional, uses DefaultSnackbarDuration if zero
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutConfig = *params.LayoutConfig
	}

	var scheduler Scheduler = TickScheduler{}
	if params.Scheduler != nil {
		scheduler = params.Scheduler
	}

	snackbarDuration := params.SnackbarDuration
	if snackbarDuration <= 0 {
		snackbarDuration = DefaultSnackbarDuration
	}

	store := params.Store
	if store == nil {
		store = model.NewStore()
	}

	app := App{
		store:            store,
		storage:          params.Storage,
		loader:           params.Loader,
		sharer:           params.Sharer,
		opener:           params.Opener,
		scheduler:        scheduler,
		log:              params.Logger.With().Str("component", "tui").Logger(),
		keys:             keys,
		styles:           styles,
		layoutConfig:     layoutConfig,
		screen:           ScreenHome,
		urlInput:         newInput("Search or type URL", layoutConfig.Input.URLCharLimit, layoutConfig.Input.StandardWidth),
		list:             ListState{FolderGUID: model.MobileRoot},
		filter:           FilterState{Input: newInput("Filter...", layoutConfig.Input.FilterCharLimit, layoutConfig.Input.FilterWidth)},
		selection:        NewSelectionState(),
		form:             NewFormState(layoutConfig),
		snackbarDuration: snackbarDuration,
		width:            80,
		height:           24,
	}

	app.refreshItems()
	return app
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case pageLoadedMsg:
		return a.handlePageLoaded(msg)

	case pageLoadFailedMsg:
		return a.handlePageLoadFailed(msg)

	case shareDoneMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Msg("share failed")
			a.setMessage(MessageError, "Share failed: "+msg.err.Error())
		} else if msg.count == 1 {
			a.setMessage(MessageSuccess, "Link copied to share")
		} else {
			a.setMessage(MessageSuccess, pluralize(msg.count, "link")+" copied to share")
		}
		return a, nil

	case externalOpenedMsg:
		if msg.err != nil {
			a.log.Error().Err(msg.err).Str("url", msg.url).Msg("open externally failed")
			a.setMessage(MessageError, "Could not open "+msg.url)
		}
		return a, nil

	case snackbarExpiredMsg:
		if msg.id == a.snackbar.ID && a.snackbar.Visible() {
			a.log.Debug().Str("snackbar", a.snackbar.Text).Msg("snackbar expired")
			a.dismissSnackbar()
		}
		return a, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
		if a.menu.Open {
			return a.updateMenu(msg)
		}
		if key.Matches(msg, a.keys.Undo) && a.undoAvailable() {
			a.undoDelete()
			return a, nil
		}

		switch a.screen {
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenOpenURL:
			return a.updateOpenURL(msg)
		case ScreenBrowser:
			return a.updateBrowser(msg)
		case ScreenBookmarks:
			return a.updateBookmarks(msg)
		case ScreenAddFolder:
			return a.updateAddFolder(msg)
		case ScreenEditBookmark:
			return a.updateEditBookmark(msg)
		case ScreenEditFolder:
			return a.updateEditFolder(msg)
		case ScreenSelectFolder:
			return a.updateSelectFolder(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// refreshItems rebuilds the list items for the current folder and filter.
func (a *App) refreshItems() {
	nodes := search.FilterNodes(a.store.Children(a.list.FolderGUID), a.filter.Query)
	items := make([]Item, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, newItem(n))
	}
	a.list.Items = items
	a.clampCursor()
}

func (a *App) clampCursor() {
	if a.list.Cursor >= len(a.list.Items) {
		a.list.Cursor = len(a.list.Items) - 1
	}
	if a.list.Cursor < 0 {
		a.list.Cursor = 0
	}
}

// cursorTo moves the list cursor to the item with guid, if present.
func (a *App) cursorTo(guid string) {
	for i, item := range a.list.Items {
		if item.GUID() == guid {
			a.list.Cursor = i
			return
		}
	}
}

// currentItem returns the item under the cursor.
func (a App) currentItem() (Item, bool) {
	if len(a.list.Items) == 0 || a.list.Cursor >= len(a.list.Items) {
		return Item{}, false
	}
	return a.list.Items[a.list.Cursor], true
}

// saveStore persists the current store to storage (if storage is configured).
// This should be called after any mutation to the store.
func (a *App) saveStore() {
	if a.storage == nil {
		return
	}
	if err := a.storage.Save(a.store); err != nil {
		a.log.Error().Err(err).Msg("save failed")
		a.setMessage(MessageError, "Save failed: "+err.Error())
	}
}

func (a *App) setMessage(msgType MessageType, text string) {
	a.messageType = msgType
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// Store returns the underlying store.
func (a App) Store() *model.Store {
	return a.store
}

// Screen returns the screen being shown.
func (a App) Screen() Screen {
	return a.screen
}

// Items returns the current list of items.
func (a App) Items() []Item {
	return a.list.Items
}

// Cursor returns the current list cursor position.
func (a App) Cursor() int {
	return a.list.Cursor
}

// CurrentFolderGUID returns the GUID of the folder the list shows.
func (a App) CurrentFolderGUID() string {
	return a.list.FolderGUID
}

// CurrentFolderTitle returns the title of the folder the list shows.
func (a App) CurrentFolderTitle() string {
	return a.store.FolderTitle(a.list.FolderGUID)
}

// MenuOpen returns true while the three-dot menu is shown.
func (a App) MenuOpen() bool {
	return a.menu.Open
}

// MenuItems returns the labels of the open menu.
func (a App) MenuItems() []string {
	labels := make([]string, len(a.menu.Items))
	for i, item := range a.menu.Items {
		labels[i] = item.Label
	}
	return labels
}

// MenuCursor returns the highlighted menu entry.
func (a App) MenuCursor() int {
	return a.menu.Cursor
}

// SelectionMode returns true while multi-select is active.
func (a App) SelectionMode() bool {
	return a.selection.Active
}

// SelectedCount returns the number of selected items.
func (a App) SelectedCount() int {
	return a.selection.Count()
}

// IsSelected returns true if the node is selected.
func (a App) IsSelected(guid string) bool {
	return a.selection.IsSelected(guid)
}

// Snackbar returns the visible snackbar text and action.
func (a App) Snackbar() (text, action string) {
	return a.snackbar.Text, a.snackbar.Action
}

// Page returns the page shown in the browser, or nil.
func (a App) Page() *browser.Page {
	return a.page
}

// PageBookmarked reports whether the shown page is saved.
func (a App) PageBookmarked() bool {
	return a.pageBookmarked()
}

// FormFocus returns the focused form field.
func (a App) FormFocus() FormField {
	return a.form.Focus
}

// FormValues returns the title, URL and parent folder of the open form.
func (a App) FormValues() (title, url, parentGUID string) {
	return a.form.TitleInput.Value(), a.form.URLInput.Value(), a.form.ParentGUID
}

// PickerItems returns the folder picker choices.
func (a App) PickerItems() []model.FolderChoice {
	return a.picker.Choices
}

// PickerCursor returns the highlighted folder picker entry.
func (a App) PickerCursor() int {
	return a.picker.Cursor
}

// Message returns the status message and its type.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// FilterQuery returns the applied filter query.
func (a App) FilterQuery() string {
	return a.filter.Query
}
