// Package robot drives the TUI through key presses for scenario tests.
// Each screen has a robot that performs user actions and verifies what the
// screen shows.
package robot

import (
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/mbm/internal/tui"
	"github.com/nikbrunner/mbm/internal/tui/layout"
)

// Driver runs a tui.App synchronously. Commands execute inline and their
// messages are fed back until the app settles, so every Press returns with
// the screen in its final state. Timers scheduled by the app wait for
// Elapse.
type Driver struct {
	t      testing.TB
	app    tui.App
	now    time.Duration
	timers []timer
	quit   bool
}

type timer struct {
	at  time.Duration
	msg tea.Msg
}

// Launch creates the app with params and the driver as its scheduler.
func Launch(t testing.TB, params tui.AppParams) *Driver {
	t.Helper()
	d := &Driver{t: t}
	params.Scheduler = d
	d.app = tui.NewApp(params)
	d.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return d
}

// After implements tui.Scheduler by recording the message until Elapse.
func (d *Driver) After(delay time.Duration, msg tea.Msg) tea.Cmd {
	d.timers = append(d.timers, timer{at: d.now + delay, msg: msg})
	return nil
}

// Send delivers msg and runs the resulting commands to completion.
func (d *Driver) Send(msg tea.Msg) *Driver {
	d.t.Helper()
	updated, cmd := d.app.Update(msg)
	d.app = updated.(tui.App)
	d.run(cmd)
	return d
}

func (d *Driver) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
	case tea.QuitMsg:
		d.quit = true
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c)
		}
	default:
		d.Send(msg)
	}
}

// Press sends each key in order. Named keys such as "enter", "esc", "tab"
// and "ctrl+d" map to their key types, anything else is sent as runes.
func (d *Driver) Press(keys ...string) *Driver {
	d.t.Helper()
	for _, k := range keys {
		d.Send(KeyMsg(k))
	}
	return d
}

// Type sends text one rune at a time.
func (d *Driver) Type(text string) *Driver {
	d.t.Helper()
	for _, r := range text {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return d
}

// Elapse advances the driver clock and delivers every timer that is due.
func (d *Driver) Elapse(delay time.Duration) *Driver {
	d.t.Helper()
	d.now += delay
	for {
		sort.SliceStable(d.timers, func(i, j int) bool { return d.timers[i].at < d.timers[j].at })
		if len(d.timers) == 0 || d.timers[0].at > d.now {
			return d
		}
		next := d.timers[0]
		d.timers = d.timers[1:]
		d.Send(next.msg)
	}
}

// PendingTimers returns how many scheduled messages are not yet delivered.
func (d *Driver) PendingTimers() int {
	return len(d.timers)
}

// App returns the current app state.
func (d *Driver) App() tui.App {
	return d.app
}

// View returns the rendered screen without ANSI codes.
func (d *Driver) View() string {
	return layout.StripANSI(d.app.View())
}

// Quit returns true once the app asked to quit.
func (d *Driver) Quit() bool {
	return d.quit
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEsc,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"space":     tea.KeySpace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+d":    tea.KeyCtrlD,
	"ctrl+u":    tea.KeyCtrlU,
}

// KeyMsg builds the key message for a key name.
func KeyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}
