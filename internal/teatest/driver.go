// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is run to completion
// before the next message, so no tea.Program or goroutine scheduling is
// involved. Cmds that block on timers (cursor blink, list status timeouts)
// are abandoned after a short wait.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds how many Cmd generations one message may trigger.
const maxDepth = 64

const cmdTimeout = 10 * time.Millisecond

// Driver wraps a model under test.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quit is set once the model returns tea.Quit.
	Quit bool
}

// New creates a Driver. A non-zero size is sent as the first WindowSizeMsg.
func New(t *testing.T, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	if width > 0 && height > 0 {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
	d.drain(model.Init(), 0)
	return d
}

// Model returns the latest model value.
func (d *Driver) Model() tea.Model { return d.model }

// Send runs msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.model.Update(msg)
	d.model = next
	d.drain(cmd, 0)
}

func (d *Driver) Enter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) Esc()   { d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) Down()  { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }
func (d *Driver) Up()    { d.Send(tea.KeyMsg{Type: tea.KeyUp}) }

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: gave up draining after %d generations", depth)
		return
	}

	msg := run(cmd)
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			d.drain(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, nextCmd := d.model.Update(msg)
		d.model = next
		d.drain(nextCmd, depth+1)
	}
}

// run executes cmd, returning nil when it does not finish within cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
