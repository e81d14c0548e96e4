package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Title        lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	ItemMarked   lipgloss.Style
	Folder       lipgloss.Style
	Icon         lipgloss.Style
	URL          lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Menu         lipgloss.Style
	Snackbar     lipgloss.Style
	SnackAction  lipgloss.Style
	HintKey      lipgloss.Style // key portion of hints, e.g. "Enter"
	HintDesc     lipgloss.Style // description portion of hints, e.g. "confirm"
}

// DefaultStyles returns the default style configuration: grayscale with a
// single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"}
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ItemMarked: lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(accent).
			Bold(true),

		Folder: lipgloss.NewStyle().
			Foreground(primary),

		Icon: lipgloss.NewStyle().
			Foreground(accent),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Empty: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Label: lipgloss.NewStyle().
			Foreground(subtle),

		LabelFocused: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Menu: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Snackbar: lipgloss.NewStyle().
			Foreground(primary),

		SnackAction: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
