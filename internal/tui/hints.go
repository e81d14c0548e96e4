package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move h:back l:open"
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for forms: "Enter save  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint
	Action []Hint
	Edit   []Hint
	System []Hint
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the hints for the current screen.
func (a App) getContextualHints() HintSet {
	if a.menu.Open {
		return HintSet{
			Nav:    []Hint{{"j/k", "move"}},
			Action: []Hint{{"Enter", "choose"}},
			System: []Hint{{"Esc", "close"}},
		}
	}

	switch a.screen {
	case ScreenHome:
		hints := HintSet{
			Action: []Hint{{"o", "open URL"}, {"b", "bookmarks"}},
			System: []Hint{{".", "menu"}, {"q", "quit"}},
		}
		if a.undoAvailable() {
			hints.Edit = []Hint{{"u", "undo"}}
		}
		return hints
	case ScreenOpenURL:
		return HintSet{
			Action: []Hint{{"Enter", "go"}},
			System: []Hint{{"Esc", "cancel"}},
		}
	case ScreenBrowser:
		hints := HintSet{
			Action: []Hint{{"s", "share"}, {"x", "system browser"}},
			System: []Hint{{".", "menu"}, {"Esc", "home"}},
		}
		if a.snackbar.Visible() && a.snackbar.Action == ActionEdit {
			hints.Edit = []Hint{{"e", "edit"}}
		}
		if a.undoAvailable() {
			hints.Edit = []Hint{{"u", "undo"}}
		}
		return hints
	case ScreenBookmarks:
		return a.getListHints()
	case ScreenAddFolder:
		return HintSet{
			Action: []Hint{{"Enter", "save"}},
			System: []Hint{{"Esc", "cancel"}},
		}
	case ScreenEditBookmark, ScreenEditFolder:
		return HintSet{
			Nav:    []Hint{{"Tab", "next field"}},
			Action: []Hint{{"Enter", "save"}},
			Edit:   []Hint{{"C-d", "delete"}},
			System: []Hint{{"Esc", "discard"}},
		}
	case ScreenSelectFolder:
		return HintSet{
			Nav:    []Hint{{"j/k", "move"}},
			Action: []Hint{{"Enter", "choose"}},
			System: []Hint{{"Esc", "back"}},
		}
	}
	return HintSet{}
}

func (a App) getListHints() HintSet {
	if a.filter.Active {
		return HintSet{
			Action: []Hint{{"Enter", "apply"}},
			System: []Hint{{"Esc", "clear"}},
		}
	}
	if a.selection.Active {
		return HintSet{
			Nav:    []Hint{{"j/k", "move"}},
			Action: []Hint{{"v", "toggle"}, {"s", "share"}},
			Edit:   []Hint{{"d", "delete"}},
			System: []Hint{{"Esc", "close"}},
		}
	}
	hints := HintSet{
		Nav:    []Hint{{"j/k", "move"}, {"h/l", "folders"}},
		Action: []Hint{{"/", "filter"}, {"v", "select"}, {"s", "share"}},
		Edit:   []Hint{{"A", "folder"}, {"e", "edit"}, {"d", "delete"}},
		System: []Hint{{"Esc", "back"}},
	}
	if a.snackbar.Visible() && a.snackbar.Action == ActionUndo {
		hints.Edit = append(hints.Edit, Hint{"u", "undo"})
	}
	return hints
}
