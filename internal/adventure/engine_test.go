package adventure_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/adventure/adventuretest"
)

func newTestEngine(opts ...adventure.Option) (*adventure.Engine, *adventuretest.RecordingSink, *adventuretest.RecordingNotifier, *adventuretest.ManualScheduler) {
	sink := &adventuretest.RecordingSink{}
	notifier := &adventuretest.RecordingNotifier{}
	sched := &adventuretest.ManualScheduler{}

	all := append([]adventure.Option{
		adventure.WithSink(sink),
		adventure.WithNotifier(notifier),
		adventure.WithScheduler(sched),
	}, opts...)

	return adventure.New(adventuretest.TwoLevelCampaign(), all...), sink, notifier, sched
}

func TestEngineForwardsGreeting(t *testing.T) {
	_, sink, _, _ := newTestEngine()

	if n := len(sink.Entries()); n != 2 {
		t.Errorf("sink received %d entries, expected 2", n)
	}
}

func TestEngineSinkMirrorsHistory(t *testing.T) {
	eng, sink, _, sched := newTestEngine()
	ctx := context.Background()

	eng.ProcessCommand(ctx, "look")
	eng.ProcessCommand(ctx, "open door")
	sched.Run()
	eng.ProcessCommand(ctx, "bogus")

	got := sink.Entries()
	want := eng.Snapshot().History
	if len(got) != len(want) {
		t.Fatalf("sink has %d entries, history has %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: sink %+v, history %+v", i, got[i], want[i])
		}
	}
}

func TestEngineFollowupDelay(t *testing.T) {
	eng, _, _, sched := newTestEngine(adventure.WithFollowupDelay(2 * time.Second))

	eng.ProcessCommand(context.Background(), "open door")

	delays := sched.Delays()
	if len(delays) != 1 || delays[0] != 2*time.Second {
		t.Errorf("scheduled delays = %v", delays)
	}
}

func TestEngineFollowupAfterLaterCommands(t *testing.T) {
	eng, _, _, sched := newTestEngine()
	ctx := context.Background()

	eng.ProcessCommand(ctx, "open door")
	eng.ProcessCommand(ctx, "score")
	if sched.Pending() != 1 {
		t.Fatalf("pending = %d, expected 1", sched.Pending())
	}
	sched.Run()

	h := eng.Snapshot().History
	last := h[len(h)-1]
	if last.Text != "New mission: Take the key." {
		t.Errorf("last entry = %q, expected the deferred mission", last.Text)
	}
	if h[len(h)-2].Text != "Your current score is: 5" {
		t.Errorf("entry before follow-up = %q", h[len(h)-2].Text)
	}
}

func TestEngineNotifications(t *testing.T) {
	eng, _, notifier, _ := newTestEngine()
	ctx := context.Background()

	eng.ProcessCommand(ctx, "open door")
	eng.Reset(ctx)

	notes := notifier.Notifications()
	if len(notes) != 2 {
		t.Fatalf("got %d notifications, expected 2", len(notes))
	}
	if notes[0].Title != "Level 1 completed!" || notes[0].Description != "You earned 5 points!" {
		t.Errorf("completion notification = %+v", notes[0])
	}
	if notes[1].Title != "Game Reset" {
		t.Errorf("reset notification = %+v", notes[1])
	}
}

func TestEngineResetKeepsScheduledFollowups(t *testing.T) {
	eng, sink, _, sched := newTestEngine()
	ctx := context.Background()

	eng.ProcessCommand(ctx, "open door")
	eng.Reset(ctx)

	s := eng.Snapshot()
	if s.Level != 1 || s.Score != 0 || len(s.Completed) != 0 {
		t.Errorf("state after reset = level %d score %d completed %v", s.Level, s.Score, s.Completed)
	}
	if len(s.History) != 2 {
		t.Fatalf("history after reset has %d entries, expected 2", len(s.History))
	}
	if !strings.HasPrefix(s.History[0].Text, "Game reset") {
		t.Errorf("reset greeting = %q", s.History[0].Text)
	}

	// Scheduled before the reset, appended after it
	sched.Run()

	s = eng.Snapshot()
	if len(s.History) != 3 {
		t.Fatalf("history after follow-up has %d entries, expected 3", len(s.History))
	}
	last := s.History[2]
	if last.Kind != adventure.KindResponse || last.Text != "New mission: Take the key." {
		t.Errorf("follow-up = %+v", last)
	}
	if s.Level != 1 || s.Score != 0 {
		t.Errorf("follow-up changed progress: level %d score %d", s.Level, s.Score)
	}
	if got := sink.Entries(); len(got) != 3 || got[2] != last || sink.Clears() != 1 {
		t.Errorf("sink entries = %d clears = %d", len(got), sink.Clears())
	}
}

func TestEngineClearReachesSink(t *testing.T) {
	eng, sink, _, _ := newTestEngine()

	eng.ProcessCommand(context.Background(), "clear")

	if len(sink.Entries()) != 0 || sink.Clears() != 1 {
		t.Errorf("sink entries = %d clears = %d", len(sink.Entries()), sink.Clears())
	}
	if len(eng.Snapshot().History) != 0 {
		t.Error("engine history not cleared")
	}
}

func TestEngineTimerScheduler(t *testing.T) {
	sink := &adventuretest.RecordingSink{}
	eng := adventure.New(adventuretest.TwoLevelCampaign(),
		adventure.WithSink(sink),
		adventure.WithFollowupDelay(time.Millisecond),
	)

	eng.ProcessCommand(context.Background(), "open door")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entries := sink.Entries()
		if entries[len(entries)-1].Text == "New mission: Take the key." {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("follow-up never appended")
}

func TestEngineConcurrentCommands(t *testing.T) {
	eng, _, _, _ := newTestEngine()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			eng.ProcessCommand(ctx, "look")
		}()
	}
	wg.Wait()

	if n := len(eng.Snapshot().History); n != 2+40 {
		t.Errorf("history length = %d, expected 42", n)
	}
}
