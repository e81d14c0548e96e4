package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/mbm/internal/tui/layout"
)

func (a App) renderView() string {
	var body string
	switch a.screen {
	case ScreenHome:
		body = a.renderHome()
	case ScreenOpenURL:
		body = a.renderOpenURL()
	case ScreenBrowser:
		body = a.renderBrowser()
	case ScreenBookmarks:
		body = a.renderBookmarks()
	case ScreenAddFolder:
		body = a.renderFolderForm("New folder")
	case ScreenEditBookmark:
		body = a.renderBookmarkForm()
	case ScreenEditFolder:
		body = a.renderFolderForm("Edit folder")
	case ScreenSelectFolder:
		body = a.renderFolderPicker()
	}

	sections := []string{body}
	if a.menu.Open {
		sections = append(sections, a.renderMenu())
	}
	sections = append(sections, a.renderBottomBar())

	return a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a App) renderHome() string {
	var b strings.Builder
	b.WriteString(a.styles.Header.Render("mbm"))
	b.WriteString("\n")
	b.WriteString(a.styles.Label.Render("Search or type URL"))
	b.WriteString("\n")
	if a.loading != "" {
		b.WriteString(a.styles.URL.Render("Loading " + a.loading + "..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderOpenURL() string {
	var b strings.Builder
	b.WriteString(a.styles.Header.Render("Open URL"))
	b.WriteString("\n")
	b.WriteString(a.urlInput.View())
	b.WriteString("\n")
	if a.loading != "" {
		b.WriteString(a.styles.URL.Render("Loading " + a.loading + "..."))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderBrowser() string {
	if a.page == nil {
		return a.styles.Empty.Render("No page")
	}
	width := layout.CalculateRowWidth(a.width, a.layoutConfig.List)

	title, _ := layout.TruncateText(a.page.DisplayTitle(), width-4, a.layoutConfig.Text)
	icon := letterIcon(a.page.Title, a.page.URL)

	var b strings.Builder
	b.WriteString(a.styles.Header.Render(a.styles.Icon.Render(icon) + " " + title))
	b.WriteString("\n")
	b.WriteString(a.styles.URL.Render(a.page.URL))
	b.WriteString("\n")
	if a.page.FaviconURL != "" {
		b.WriteString(a.styles.Label.Render("Icon " + a.page.FaviconURL))
		b.WriteString("\n")
	}
	if a.pageBookmarked() {
		b.WriteString(a.styles.Icon.Render("★ Bookmarked"))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderBookmarks() string {
	var b strings.Builder

	header := a.CurrentFolderTitle()
	if a.selection.Active {
		header = fmt.Sprintf("%d selected", a.selection.Count())
	}
	b.WriteString(a.styles.Header.Render(header))
	b.WriteString("\n")

	switch {
	case a.filter.Active:
		b.WriteString("/" + a.filter.Input.View())
		b.WriteString("\n")
	case a.filter.Query != "":
		b.WriteString(a.styles.Label.Render("filter: " + a.filter.Query))
		b.WriteString("\n")
	}

	if len(a.list.Items) == 0 {
		if a.filter.Query != "" {
			b.WriteString(a.styles.Empty.Render("No matches"))
		} else {
			b.WriteString(a.styles.Empty.Render("No bookmarks here"))
		}
		b.WriteString("\n")
		return b.String()
	}

	listHeight := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	rowWidth := layout.CalculateRowWidth(a.width, a.layoutConfig.List)
	offset := layout.CalculateViewportOffset(a.list.Cursor, len(a.list.Items), listHeight)
	end := offset + listHeight
	if end > len(a.list.Items) {
		end = len(a.list.Items)
	}

	for i := offset; i < end; i++ {
		b.WriteString(a.renderItem(a.list.Items[i], i == a.list.Cursor, rowWidth))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	var prefix, suffix string
	isMarked := a.selection.IsSelected(item.GUID())

	if isMarked {
		prefix = "▸ "
	}
	if item.IsFolder() {
		prefix += "▤ "
		suffix = "/"
	} else {
		prefix += item.Icon + " "
	}

	line, _ := layout.TruncateWithPrefixSuffix(item.Title(), maxWidth, prefix, suffix, a.layoutConfig.Text)

	// Bookmarks with a title show their URL after it when there is room.
	if !item.IsFolder() && item.Node.Title != "" {
		if room := maxWidth - layout.VisibleLength(line) - 2; room > 8 {
			url, _ := layout.TruncateText(item.URL(), room, a.layoutConfig.Text)
			line += "  " + url
		}
	}

	switch {
	case isCursor:
		return a.styles.ItemSelected.Render(layout.PadRight(line, maxWidth))
	case isMarked:
		return a.styles.ItemMarked.Render(line)
	case item.IsFolder():
		return a.styles.Item.Render(a.styles.Folder.Render(line))
	default:
		return a.styles.Item.Render(line)
	}
}

// renderField renders a labelled form field, marking the focused one.
func (a App) renderField(field FormField, value string) string {
	label := a.styles.Label.Render("  " + field.String())
	if a.form.Focus == field {
		label = a.styles.LabelFocused.Render("› " + field.String())
	}
	return label + "\n" + value + "\n"
}

func (a App) renderBookmarkForm() string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Edit bookmark"))
	content.WriteString("\n\n")
	content.WriteString(a.renderField(FieldName, a.form.TitleInput.View()))
	content.WriteString(a.renderField(FieldURL, a.form.URLInput.View()))
	content.WriteString(a.renderField(FieldFolder, "▤ "+a.store.FolderTitle(a.form.ParentGUID)))
	content.WriteString("\n")
	content.WriteString(a.renderHintsInline([]Hint{{"Enter", "save"}, {"C-d", "delete"}, {"Esc", "discard"}}))
	return a.renderModal(content.String())
}

func (a App) renderFolderForm(title string) string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render(title))
	content.WriteString("\n\n")
	content.WriteString(a.renderField(FieldName, a.form.TitleInput.View()))
	if a.screen == ScreenEditFolder {
		content.WriteString(a.renderField(FieldFolder, "▤ "+a.store.FolderTitle(a.form.ParentGUID)))
		content.WriteString("\n")
		content.WriteString(a.renderHintsInline([]Hint{{"Enter", "save"}, {"C-d", "delete"}, {"Esc", "discard"}}))
	} else {
		content.WriteString("\n")
		content.WriteString(a.renderHintsInline([]Hint{{"Enter", "create"}, {"Esc", "cancel"}}))
	}
	return a.renderModal(content.String())
}

func (a App) renderFolderPicker() string {
	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Select folder"))
	content.WriteString("\n\n")

	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal) - 6
	start, end := layout.CalculateVisibleListItems(a.layoutConfig.Modal.PickerMaxVisible, a.picker.Cursor, len(a.picker.Choices))
	for i := start; i < end; i++ {
		choice := a.picker.Choices[i]
		indent := strings.Repeat("  ", choice.Depth)
		line, _ := layout.TruncateWithPrefixSuffix(choice.Title, width, indent+"▤ ", "", a.layoutConfig.Text)
		if i == a.picker.Cursor {
			content.WriteString(a.styles.ItemSelected.Render(layout.PadRight(line, width)))
		} else {
			content.WriteString(a.styles.Item.Render(line))
		}
		content.WriteString("\n")
	}
	if end < len(a.picker.Choices) {
		content.WriteString(a.styles.Label.Render(fmt.Sprintf("  ... %d more", len(a.picker.Choices)-end)))
		content.WriteString("\n")
	}
	return a.renderModal(content.String())
}

func (a App) renderModal(content string) string {
	width := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	return a.styles.Modal.Width(width).Render(strings.TrimRight(content, "\n"))
}

func (a App) renderMenu() string {
	lines := make([]string, len(a.menu.Items))
	for i, item := range a.menu.Items {
		if i == a.menu.Cursor {
			lines[i] = a.styles.ItemSelected.Render(item.Label)
		} else {
			lines[i] = a.styles.Item.Render(item.Label)
		}
	}
	return a.styles.Menu.Render(strings.Join(lines, "\n"))
}

func (a App) renderBottomBar() string {
	var lines []string

	if a.snackbar.Visible() {
		line := a.styles.Snackbar.Render(a.snackbar.Text)
		if a.snackbar.Action != "" {
			line += "  " + a.styles.SnackAction.Render(a.snackbar.Action)
		}
		lines = append(lines, line)
	}

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}
	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
