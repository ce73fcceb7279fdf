package adventure

import (
	"fmt"
	"strings"
)

// Global commands are checked before any level rule.
const (
	CmdHelp    = "help"
	CmdClear   = "clear"
	CmdMission = "mission"
	CmdScore   = "score"
	CmdLevel   = "level"
)

// AlreadyCompletedText is appended when a completed level's success rule is matched again.
const AlreadyCompletedText = "You've already completed this level! No additional points awarded."

// Followup is an entry to append after the engine's follow-up delay.
type Followup struct {
	Entry Entry
}

// Outcome describes the effects of one processed command.
// Entries are appended in order; if Cleared is set the history is emptied
// after they are appended.
type Outcome struct {
	Entries       []Entry
	Cleared       bool
	Followups     []Followup
	Notifications []Notification

	Matched   bool // a global command or level rule accepted the input
	Completed int  // level completed by this command, 0 if none
	Finished  bool // the last level was completed by this command
}

// Step applies one command to s and returns the next state with the effects
// it produced. s is not modified. Follow-ups are not part of the returned
// history; the caller appends them when they fire.
func Step(c *Campaign, s State, raw string) (State, Outcome) {
	next := s.Clone()
	var out Outcome

	emit := func(kind EntryKind, text string) {
		e := Entry{Kind: kind, Text: text}
		out.Entries = append(out.Entries, e)
		next.History = append(next.History, e)
	}

	emit(KindCommand, raw)

	cmd := Normalize(raw)
	level, ok := c.Level(next.Level)
	if !ok {
		// Unreachable for states produced by NewState and Step.
		emit(KindError, fmt.Sprintf("Level %d does not exist.", next.Level))
		return next, out
	}

	switch cmd {
	case CmdHelp:
		out.Matched = true
		emit(KindResponse, helpText(level))
		return next, out

	case CmdClear:
		out.Matched = true
		out.Cleared = true
		next.History = nil
		return next, out

	case CmdMission:
		out.Matched = true
		emit(KindResponse, level.Description)
		return next, out

	case CmdScore:
		out.Matched = true
		emit(KindResponse, fmt.Sprintf("Your current score is: %d", next.Score))
		return next, out

	case CmdLevel:
		out.Matched = true
		emit(KindResponse, fmt.Sprintf("You are on level %d of %d", next.Level, c.LevelCount()))
		return next, out
	}

	rule, ok := level.match(cmd)
	if !ok {
		emit(KindError, fmt.Sprintf("Command not recognized: '%s'. Type 'help' for available commands.", strings.TrimSpace(raw)))
		return next, out
	}

	out.Matched = true
	if !rule.Success {
		emit(KindResponse, rule.Response)
		return next, out
	}
	emit(KindSuccess, rule.Response)

	if next.IsCompleted(level.Index) {
		emit(KindResponse, AlreadyCompletedText)
		return next, out
	}

	next.Score += level.Points
	next.Completed[level.Index] = true
	out.Completed = level.Index
	out.Notifications = append(out.Notifications, Notification{
		Title:       fmt.Sprintf("Level %d completed!", level.Index),
		Description: fmt.Sprintf("You earned %d points!", level.Points),
	})

	if level.Index == c.LevelCount() {
		out.Finished = true
		emit(KindSuccess, fmt.Sprintf("🎉 Congratulations! You've completed all levels of %s! 🎉\nFinal score: %d", c.Title(), next.Score))
		return next, out
	}

	next.Level = level.Index + 1
	emit(KindSuccess, fmt.Sprintf("Level %d completed! +%d points!\nMoving to level %d...", level.Index, level.Points, next.Level))

	upcoming, _ := c.Level(next.Level)
	out.Followups = append(out.Followups, Followup{
		Entry: Entry{Kind: KindResponse, Text: "New mission: " + upcoming.Description},
	})

	return next, out
}

func helpText(level Level) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	b.WriteString("- help: Show this help message\n")
	b.WriteString("- mission: Show current mission\n")
	b.WriteString("- clear: Clear terminal\n")
	b.WriteString("- score: Show current score\n")
	b.WriteString("- level: Show current level")
	for _, hint := range level.Hints {
		b.WriteString("\n- ")
		b.WriteString(hint)
	}
	return b.String()
}
