// Package repl plays a campaign in plain line mode, for pipes and dumb terminals.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/storage"
)

// Meta commands handled by the REPL itself. The colon keeps them apart from
// campaign commands.
const (
	MetaQuit  = ":quit"
	MetaReset = ":reset"
)

const prompt = "$ "

// Config holds the collaborators of a line-mode session.
type Config struct {
	In     io.Reader
	Out    io.Writer
	Store  *storage.Store // optional; runs are not recorded when nil
	Logger *log.Logger
	Player string

	// Echo prints submitted commands, for input that is not typed by a person.
	Echo bool

	// Scheduler runs follow-ups; defaults to adventure.TimerScheduler.
	Scheduler     adventure.Scheduler
	EngineOptions []adventure.Option
}

// Run plays c until the input ends, ctx is done or the player quits.
// When the input ends or the player quits, pending follow-ups are printed
// before Run returns.
func Run(ctx context.Context, c *adventure.Campaign, cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = adventure.TimerScheduler{}
	}

	out := newPrinter(cfg.Out, cfg.Echo)
	defer out.close()

	sched := &pendingScheduler{next: cfg.Scheduler}
	opts := append([]adventure.Option{}, cfg.EngineOptions...)
	opts = append(opts,
		adventure.WithSink(out),
		adventure.WithNotifier(out),
		adventure.WithScheduler(sched),
	)
	engine := adventure.New(c, opts...)

	rec := &recorder{store: cfg.Store, logger: cfg.Logger, player: cfg.Player}
	defer rec.save(engine)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cfg.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		out.prompt()

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			select {
			case err := <-scanErr:
				if err != nil {
					return fmt.Errorf("read input: %w", err)
				}
			default:
			}
			return sched.wait(ctx)
		}

		switch strings.TrimSpace(line) {
		case "":
			continue
		case MetaQuit:
			return sched.wait(ctx)
		case MetaReset:
			rec.save(engine)
			engine.Reset(ctx)
			rec.saved = false
			continue
		}

		outcome := engine.ProcessCommand(ctx, line)
		if outcome.Finished {
			rec.save(engine)
		}
	}
}

// pendingScheduler tracks follow-ups that have not fired yet.
// Schedule and wait are called from the input loop only.
type pendingScheduler struct {
	next    adventure.Scheduler
	pending sync.WaitGroup
}

func (s *pendingScheduler) Schedule(delay time.Duration, task func()) {
	s.pending.Add(1)
	s.next.Schedule(delay, func() {
		defer s.pending.Done()
		task()
	})
}

// wait blocks until every scheduled follow-up has fired or ctx is done.
func (s *pendingScheduler) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// recorder stores a run at most once.
type recorder struct {
	store  *storage.Store
	logger *log.Logger
	player string
	saved  bool
}

func (r *recorder) save(e *adventure.Engine) {
	if r.store == nil || r.saved {
		return
	}
	s := e.Snapshot()
	if s.Score == 0 {
		return
	}

	c := e.Campaign()
	_, err := r.store.SaveRun(storage.Run{
		CampaignID:      c.ID(),
		Player:          r.player,
		Score:           s.Score,
		LevelsCompleted: len(s.CompletedLevels()),
		Finished:        s.Finished(c),
	})
	if err != nil {
		r.logger.Warn("could not save run", "campaign", c.ID(), "error", err)
		return
	}
	r.saved = true
}

// printer writes engine events as plain lines. Follow-ups arrive from timer
// goroutines, so writes are serialized and stop once the session ends.
type printer struct {
	mu     sync.Mutex
	w      io.Writer
	echo   bool
	closed bool
	styles map[adventure.EntryKind]lipgloss.Style
	toast  lipgloss.Style
}

func newPrinter(w io.Writer, echo bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:    w,
		echo: echo,
		styles: map[adventure.EntryKind]lipgloss.Style{
			adventure.KindCommand:  r.NewStyle().Foreground(lipgloss.Color("6")),
			adventure.KindResponse: r.NewStyle().Foreground(lipgloss.Color("2")),
			adventure.KindError:    r.NewStyle().Foreground(lipgloss.Color("1")),
			adventure.KindSuccess:  r.NewStyle().Foreground(lipgloss.Color("3")),
		},
		toast: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
	}
}

// Append prints one entry. Commands are only printed in echo mode.
func (p *printer) Append(e adventure.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	style := p.styles[e.Kind]
	if e.Kind == adventure.KindCommand {
		if p.echo {
			fmt.Fprintln(p.w, style.Render(e.Text))
		}
		return
	}
	for _, line := range strings.Split(e.Text, "\n") {
		fmt.Fprintln(p.w, "  "+style.Render(line))
	}
}

// Clear prints a separator; scrollback is left alone.
func (p *printer) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	fmt.Fprintln(p.w, "----- cleared -----")
}

// Notify prints a notification line.
func (p *printer) Notify(n adventure.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.toast.Render("["+n.Title+"]"), n.Description)
}

func (p *printer) prompt() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	fmt.Fprint(p.w, prompt)
}

func (p *printer) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}
