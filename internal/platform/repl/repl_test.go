package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/adventure/adventuretest"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
)

// play runs input through a session with real timers and a short follow-up delay.
func play(t *testing.T, input string, store *storage.Store, echo bool) *bytes.Buffer {
	t.Helper()
	out := &bytes.Buffer{}

	err := Run(context.Background(), adventuretest.TwoLevelCampaign(), Config{
		In:            strings.NewReader(input),
		Out:           out,
		Store:         store,
		Player:        "neo",
		Echo:          echo,
		EngineOptions: []adventure.Option{adventure.WithFollowupDelay(10 * time.Millisecond)},
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	return out
}

func TestRunGreetsAndResponds(t *testing.T) {
	buf := play(t, "look\nfoo\n", nil, false)
	out := buf.String()

	for _, want := range []string{
		"Welcome to Test Campaign! Type 'help' to see available commands.",
		"Current mission: Open the door.",
		"  A door.",
		"Command not recognized: 'foo'.",
		prompt,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "look\n") {
		t.Errorf("command echoed without echo mode:\n%s", out)
	}
}

func TestRunEcho(t *testing.T) {
	buf := play(t, "look\n", nil, true)
	out := buf.String()
	if !strings.Contains(out, "look\n") {
		t.Errorf("command not echoed:\n%s", out)
	}
}

func TestRunMultilineAndNotification(t *testing.T) {
	buf := play(t, "open door\n", nil, false)
	out := buf.String()

	if !strings.Contains(out, "  Level 1 completed! +5 points!\n  Moving to level 2...") {
		t.Errorf("multi-line entry not indented per line:\n%s", out)
	}
	if !strings.Contains(out, "[Level 1 completed!] You earned 5 points!") {
		t.Errorf("notification missing:\n%s", out)
	}

	// The follow-up is printed before Run returns
	note := strings.Index(out, "[Level 1 completed!]")
	mission := strings.Index(out, "  New mission: Take the key.")
	if mission < 0 || mission < note {
		t.Errorf("follow-up missing or out of order:\n%s", out)
	}
}

func TestRunPrintsFollowupsBeforeQuit(t *testing.T) {
	buf := play(t, "open door\n:quit\n", nil, false)
	if !strings.Contains(buf.String(), "New mission: Take the key.") {
		t.Errorf("follow-up lost on :quit:\n%s", buf.String())
	}
}

func TestRunWaitsForScheduledFollowups(t *testing.T) {
	sched := &adventuretest.ManualScheduler{}
	out := &bytes.Buffer{}
	done := make(chan error, 1)

	go func() {
		done <- Run(context.Background(), adventuretest.TwoLevelCampaign(), Config{
			In:        strings.NewReader("open door\n"),
			Out:       out,
			Scheduler: sched,
		})
	}()

	for sched.Pending() == 0 {
		time.Sleep(time.Millisecond)
	}
	select {
	case err := <-done:
		t.Fatalf("Run() returned with a pending follow-up: %v", err)
	case <-time.After(20 * time.Millisecond):
	}

	sched.Run()
	if err := <-done; err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if !strings.Contains(out.String(), "New mission: Take the key.") {
		t.Errorf("follow-up not printed:\n%s", out.String())
	}
}

func TestRunCanceledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Run(ctx, adventuretest.TwoLevelCampaign(), Config{
		In:        strings.NewReader("open door\n"),
		Out:       &bytes.Buffer{},
		Scheduler: &adventuretest.ManualScheduler{},
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() = %v, expected context.DeadlineExceeded", err)
	}
}

func TestRunBlankLinesIgnored(t *testing.T) {
	buf := play(t, "\n   \n", nil, false)
	out := buf.String()
	if strings.Contains(out, "Command not recognized") {
		t.Errorf("blank input reached the engine:\n%s", out)
	}
}

func TestRunMetaCommands(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	buf := play(t, "open door\n:reset\nlook\n:quit\nopen door\n", store, false)
	out := buf.String()

	if !strings.Contains(out, "Game reset! Welcome back to Test Campaign!") {
		t.Errorf("reset greeting missing:\n%s", out)
	}
	if !strings.Contains(out, "[Game Reset]") {
		t.Errorf("reset notification missing:\n%s", out)
	}
	if strings.Count(out, "The door opens.") != 1 {
		t.Errorf("input after :quit was processed:\n%s", out)
	}

	// The run abandoned by :reset is stored; the second run has no score
	runs, _ := store.TopRuns("test", 10)
	if len(runs) != 1 || runs[0].Score != 5 || runs[0].Player != "neo" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRunSavesFinishedRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	buf := play(t, "open door\ntake key\ntake key\n", store, false)
	out := buf.String()

	if !strings.Contains(out, "Final score: 12") {
		t.Errorf("final message missing:\n%s", out)
	}
	if !strings.Contains(out, adventure.AlreadyCompletedText) {
		t.Errorf("repeat message missing:\n%s", out)
	}

	runs, _ := store.TopRuns("test", 10)
	if len(runs) != 1 || !runs[0].Finished || runs[0].Score != 12 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()

	err := Run(ctx, adventuretest.TwoLevelCampaign(), Config{In: r, Out: &bytes.Buffer{}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
}
