// Package adventuretest provides deterministic collaborators for driving an
// adventure.Engine in tests.
package adventuretest

import (
	"sync"
	"time"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
)

// ManualScheduler queues tasks until Run is called.
type ManualScheduler struct {
	mu     sync.Mutex
	tasks  []func()
	delays []time.Duration
}

// Schedule queues task. The delay is recorded but not waited for.
func (s *ManualScheduler) Schedule(delay time.Duration, task func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.delays = append(s.delays, delay)
}

// Pending returns the number of queued tasks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Delays returns the delays of every task scheduled so far.
func (s *ManualScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.delays...)
}

// Run executes queued tasks in scheduling order and empties the queue.
func (s *ManualScheduler) Run() {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}

// RecordingSink mirrors history changes.
type RecordingSink struct {
	mu      sync.Mutex
	entries []adventure.Entry
	clears  int
}

// Append records e.
func (s *RecordingSink) Append(e adventure.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Clear drops recorded entries.
func (s *RecordingSink) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.clears++
}

// Entries returns a copy of the recorded entries.
func (s *RecordingSink) Entries() []adventure.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]adventure.Entry(nil), s.entries...)
}

// Clears returns how many times Clear was called.
func (s *RecordingSink) Clears() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clears
}

// RecordingNotifier records notifications.
type RecordingNotifier struct {
	mu    sync.Mutex
	notes []adventure.Notification
}

// Notify records n.
func (r *RecordingNotifier) Notify(n adventure.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// Notifications returns a copy of the recorded notifications.
func (r *RecordingNotifier) Notifications() []adventure.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]adventure.Notification(nil), r.notes...)
}

// TwoLevelCampaign returns a small campaign for tests:
// level 1 is completed by "open door", level 2 by "take key".
func TwoLevelCampaign() *adventure.Campaign {
	c, err := adventure.NewCampaign("test", "Test Campaign", []adventure.Level{
		{
			Index:       1,
			Description: "Open the door.",
			Hints:       []string{"look", "open <thing>"},
			Points:      5,
			Rules: []adventure.Rule{
				{Match: adventure.NewExact("look"), Response: "A door."},
				{Match: adventure.NewExact("open door"), Response: "The door opens.", Success: true},
				{Match: adventure.MustPattern(`open .+`), Response: "That does not open."},
			},
		},
		{
			Index:       2,
			Description: "Take the key.",
			Hints:       []string{"take <thing>"},
			Points:      7,
			Rules: []adventure.Rule{
				{Match: adventure.NewExact("take key"), Response: "Got it.", Success: true},
				{Match: adventure.NewExact("help"), Response: "shadowed by the global help"},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return c
}
