// Package adventure implements the command-driven level progression engine.
// It contains no terminal or transport dependencies so that the rules of a
// campaign can be driven from the TUI, a line-mode REPL, an SSH session or a test.
package adventure

// EntryKind classifies a line of terminal history.
type EntryKind string

const (
	KindCommand  EntryKind = "command"  // echoed player input
	KindResponse EntryKind = "response" // informational output
	KindError    EntryKind = "error"    // unrecognized input
	KindSuccess  EntryKind = "success"  // rule success or level completion
)

// String returns the kind name.
func (k EntryKind) String() string {
	return string(k)
}

// Entry is one tagged block of terminal output. Text may span several lines.
type Entry struct {
	Kind EntryKind
	Text string
}

// Notification is a transient toast raised on level completion and reset.
type Notification struct {
	Title       string
	Description string
}
