package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Scheduler delivers a message after a delay. Timed UI behaviour such as
// snackbar expiry goes through it so tests can control time.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TickScheduler schedules messages on the wall clock.
type TickScheduler struct{}

// After implements Scheduler using tea.Tick.
func (TickScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
