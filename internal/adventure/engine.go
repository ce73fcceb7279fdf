package adventure

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultFollowupDelay is how long the next mission waits after a level is completed.
const DefaultFollowupDelay = 500 * time.Millisecond

// HistorySink receives history changes in the order they happen.
// Implementations are called with the engine locked and must not call back into it.
type HistorySink interface {
	Append(e Entry)
	Clear()
}

// Notifier receives toast notifications.
// Implementations are called with the engine locked and must not call back into it.
type Notifier interface {
	Notify(n Notification)
}

// Scheduler runs a task once after a delay. Scheduled tasks cannot be withdrawn.
type Scheduler interface {
	Schedule(delay time.Duration, task func())
}

// TimerScheduler schedules tasks on runtime timers.
type TimerScheduler struct{}

// Schedule runs task on its own goroutine after delay.
func (TimerScheduler) Schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, task)
}

type discardSink struct{}

func (discardSink) Append(Entry) {}
func (discardSink) Clear()       {}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

// Option configures an Engine.
type Option func(*Engine)

// WithSink sets the history sink.
func WithSink(s HistorySink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithNotifier sets the notification hook.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithScheduler sets the scheduler used for follow-up entries.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithFollowupDelay overrides DefaultFollowupDelay. Non-positive values are ignored.
func WithFollowupDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.delay = d
		}
	}
}

// WithTracer records a span per processed command.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithLogger sets the logger for progression events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine owns one session of a campaign. It is safe for concurrent use:
// commands are applied one at a time and follow-ups append under the same lock.
type Engine struct {
	mu       sync.Mutex
	campaign *Campaign
	state    State

	sink      HistorySink
	notifier  Notifier
	scheduler Scheduler
	tracer    trace.Tracer
	logger    *log.Logger
	delay     time.Duration
}

// New starts a session of c. The initial greeting is forwarded to the sink.
func New(c *Campaign, opts ...Option) *Engine {
	e := &Engine{
		campaign:  c,
		state:     NewState(c),
		sink:      discardSink{},
		notifier:  discardNotifier{},
		scheduler: TimerScheduler{},
		tracer:    noop.NewTracerProvider().Tracer("adventure"),
		logger:    log.New(io.Discard),
		delay:     DefaultFollowupDelay,
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, entry := range e.state.History {
		e.sink.Append(entry)
	}
	return e
}

// Campaign returns the campaign being played.
func (e *Engine) Campaign() *Campaign {
	return e.campaign
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// ProcessCommand applies one line of player input and returns its outcome.
// Unrecognized input is reported as an error entry, never as a Go error.
func (e *Engine) ProcessCommand(ctx context.Context, raw string) Outcome {
	_, span := e.tracer.Start(ctx, "adventure.command")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	from := e.state.Level
	next, out := Step(e.campaign, e.state, raw)
	e.state = next

	for _, entry := range out.Entries {
		e.sink.Append(entry)
	}
	if out.Cleared {
		e.sink.Clear()
	}
	for _, n := range out.Notifications {
		e.notifier.Notify(n)
	}

	for _, f := range out.Followups {
		entry := f.Entry
		e.scheduler.Schedule(e.delay, func() { e.appendFollowup(entry) })
	}

	if out.Completed > 0 {
		e.logger.Debug("level completed",
			"campaign", e.campaign.ID(),
			"level", out.Completed,
			"score", next.Score,
			"finished", out.Finished,
		)
	}

	span.SetAttributes(
		attribute.String("campaign", e.campaign.ID()),
		attribute.Int("level", from),
		attribute.Int("score", next.Score),
		attribute.Bool("matched", out.Matched),
		attribute.Int("completed_level", out.Completed),
	)

	return out
}

// Reset restarts the campaign from level 1 with the welcome-back history.
// Follow-ups scheduled before the reset still append when they fire.
func (e *Engine) Reset(ctx context.Context) {
	_, span := e.tracer.Start(ctx, "adventure.reset")
	defer span.End()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.state = ResetState(e.campaign)

	e.sink.Clear()
	for _, entry := range e.state.History {
		e.sink.Append(entry)
	}
	e.notifier.Notify(Notification{
		Title:       "Game Reset",
		Description: "All progress has been reset. Good luck on your new mission!",
	})

	e.logger.Debug("session reset", "campaign", e.campaign.ID())
}

func (e *Engine) appendFollowup(entry Entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.History = append(e.state.History, entry)
	e.sink.Append(entry)
}
