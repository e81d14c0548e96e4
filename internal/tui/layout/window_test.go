package layout

import "testing"

func TestCalculateListHeight(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name   string
		height int
		want   int
	}{
		{"standard terminal", 24, 17},
		{"tall terminal", 50, 43},
		{"clamped to minimum", 8, 3},
		{"zero height", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateListHeight(tt.height, cfg); got != tt.want {
				t.Errorf("CalculateListHeight(%d) = %d, want %d", tt.height, got, tt.want)
			}
		})
	}
}

func TestCalculateRowWidth(t *testing.T) {
	cfg := DefaultConfig().List

	if got := CalculateRowWidth(80, cfg); got != 74 {
		t.Errorf("CalculateRowWidth(80) = %d, want 74", got)
	}
	if got := CalculateRowWidth(3, cfg); got != 1 {
		t.Errorf("CalculateRowWidth(3) = %d, want 1", got)
	}
}

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"percentage of wide terminal", 100, 60},
		{"clamped to max", 200, 80},
		{"clamped to min", 50, 40},
		{"limited by terminal", 30, 26},
		{"tiny terminal", 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateModalWidth(tt.terminalWidth, cfg); got != tt.want {
				t.Errorf("CalculateModalWidth(%d) = %d, want %d", tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name                      string
		selected, total, viewport int
		want                      int
	}{
		{"fits without scrolling", 3, 5, 10, 0},
		{"top of long list", 0, 100, 10, 0},
		{"middle centers selection", 50, 100, 10, 45},
		{"bottom clamps to end", 99, 100, 10, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateViewportOffset(tt.selected, tt.total, tt.viewport); got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewport, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name               string
		maxVisible, idx, n int
		wantStart, wantEnd int
	}{
		{"all fit", 8, 2, 5, 0, 5},
		{"selection in first page", 3, 1, 10, 0, 3},
		{"selection past first page", 3, 5, 10, 3, 6},
		{"selection at end", 3, 9, 10, 7, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.idx, tt.n)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleListItems(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.idx, tt.n, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
