package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
)

// historyChangedMsg tells the terminal to re-read the engine history.
type historyChangedMsg struct{}

// notificationMsg carries a toast raised by the engine.
type notificationMsg adventure.Notification

// bridge forwards engine events into the Bubble Tea event loop.
// It is installed as the engine's sink and notifier. The engine calls it
// while holding its lock, so recording an event never blocks: history
// changes collapse into one pending refresh and notifications queue in order.
type bridge struct {
	mu      sync.Mutex
	changed bool
	notes   []adventure.Notification

	wake      chan struct{} // capacity 1
	done      chan struct{}
	closeOnce sync.Once
}

func newBridge() *bridge {
	return &bridge{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Append marks the history as changed.
func (b *bridge) Append(adventure.Entry) {
	b.record(func() { b.changed = true })
}

// Clear marks the history as changed.
func (b *bridge) Clear() {
	b.record(func() { b.changed = true })
}

// Notify queues a toast.
func (b *bridge) Notify(n adventure.Notification) {
	b.record(func() { b.notes = append(b.notes, n) })
}

func (b *bridge) record(update func()) {
	select {
	case <-b.done:
		return
	default:
	}

	b.mu.Lock()
	update()
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// poll returns the next pending event, or nil if there is none.
// A history refresh is delivered before queued notifications.
func (b *bridge) poll() tea.Msg {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.changed {
		b.changed = false
		return historyChangedMsg{}
	}
	if len(b.notes) > 0 {
		n := b.notes[0]
		b.notes = b.notes[1:]
		return notificationMsg(n)
	}
	return nil
}

// listen returns a command that waits for the next engine event.
// It returns nil once the bridge is closed.
func (b *bridge) listen() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-b.done:
				return nil
			default:
			}

			if msg := b.poll(); msg != nil {
				return msg
			}

			select {
			case <-b.wake:
			case <-b.done:
				return nil
			}
		}
	}
}

// close stops pending listen commands.
func (b *bridge) close() {
	b.closeOnce.Do(func() { close(b.done) })
}
