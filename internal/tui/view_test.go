package tui_test

import (
	"strings"
	"testing"

	"gotest.tools/v3/golden"

	"github.com/nikbrunner/mbm/internal/robot"
	"github.com/nikbrunner/mbm/internal/tui"
)

// snapshot strips trailing padding so golden files stay editable.
func snapshot(d *robot.Driver) string {
	lines := strings.Split(d.View(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func TestView_BookmarksList(t *testing.T) {
	d := launch(t, tui.AppParams{})
	d.Press("b")

	golden.Assert(t, snapshot(d), "golden/bookmarks_list.golden")
}

func TestView_SelectionHeader(t *testing.T) {
	d := launch(t, tui.AppParams{})
	d.Press("b", "v", "j", "v")

	golden.Assert(t, snapshot(d), "golden/selection.golden")
}

func TestView_EditBookmarkForm(t *testing.T) {
	d := launch(t, tui.AppParams{})
	d.Press("b", "j", "e")

	golden.Assert(t, snapshot(d), "golden/edit_bookmark.golden")
}
