package adventure

import "sort"

// State is a snapshot of one player's progress through a campaign.
type State struct {
	Level     int          // current level, 1-based
	Score     int          // cumulative points
	History   []Entry      // terminal output, oldest first
	Completed map[int]bool // levels whose points were awarded
}

// NewState returns the initial state of a campaign. The history holds the
// greeting and the first mission.
func NewState(c *Campaign) State {
	return freshState(c, "Welcome to "+c.Title()+"! Type 'help' to see available commands.")
}

// ResetState returns the state installed by a reset.
func ResetState(c *Campaign) State {
	return freshState(c, "Game reset! Welcome back to "+c.Title()+"! Type 'help' to see available commands.")
}

func freshState(c *Campaign, greeting string) State {
	first, _ := c.Level(1)
	return State{
		Level: 1,
		Score: 0,
		History: []Entry{
			{Kind: KindResponse, Text: greeting},
			{Kind: KindResponse, Text: "Current mission: " + first.Description},
		},
		Completed: make(map[int]bool),
	}
}

// IsCompleted reports whether the level's points were already awarded.
func (s State) IsCompleted(level int) bool {
	return s.Completed[level]
}

// CompletedLevels returns completed level indices in ascending order.
func (s State) CompletedLevels() []int {
	levels := make([]int, 0, len(s.Completed))
	for lvl, done := range s.Completed {
		if done {
			levels = append(levels, lvl)
		}
	}
	sort.Ints(levels)
	return levels
}

// Finished reports whether the last level of c has been completed.
func (s State) Finished(c *Campaign) bool {
	return s.Completed[c.LevelCount()]
}

// Clone returns a deep copy so callers can mutate it freely.
func (s State) Clone() State {
	clone := State{
		Level:     s.Level,
		Score:     s.Score,
		History:   append([]Entry(nil), s.History...),
		Completed: make(map[int]bool, len(s.Completed)),
	}
	for k, v := range s.Completed {
		clone.Completed[k] = v
	}
	return clone
}
