package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds bookmark list dimensions.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list rows.
	// Accounts for: app padding (1) + header (2) + snackbar (1) + message (1) + hints (2) = 7
	HeightReduction int

	// MinHeight is the minimum number of list rows.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	ContentPadding int
}

// ModalConfig holds form and overlay configuration.
type ModalConfig struct {
	// WidthPercent is the form width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum form width in characters.
	MinWidth int

	// MaxWidth is the maximum form width in characters.
	MaxWidth int

	// PickerMaxVisible: max folders shown in the folder picker.
	PickerMaxVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	URLCharLimit    int
	FilterCharLimit int

	// StandardWidth is used for title and URL inputs.
	StandardWidth int
	// FilterWidth is used for the list filter.
	FilterWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 7,
			MinHeight:       3,
			ContentPadding:  6,
		},
		Modal: ModalConfig{
			WidthPercent:     60,
			MinWidth:         40,
			MaxWidth:         80,
			PickerMaxVisible: 8,
		},
		Input: InputConfig{
			TitleCharLimit:  100,
			URLCharLimit:    500,
			FilterCharLimit: 50,
			StandardWidth:   40,
			FilterWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
