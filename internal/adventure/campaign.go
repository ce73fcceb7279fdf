package adventure

import (
	"errors"
	"fmt"
)

// ErrInvalidCampaign is returned when campaign data violates its invariants.
var ErrInvalidCampaign = errors.New("invalid campaign")

// Rule is one recognized input for a level.
type Rule struct {
	Match    Matcher
	Response string
	Success  bool // completes the level when matched
}

// Level is a stage with a mission and its own command vocabulary.
type Level struct {
	Index       int      // 1-based ordinal
	Description string   // mission text
	Hints       []string // commands advertised by help
	Rules       []Rule   // matched in declaration order, first match wins
	Points      int      // awarded once on completion
}

// Campaign is an ordered, immutable sequence of levels.
type Campaign struct {
	id     string
	title  string
	levels []Level
}

// NewCampaign validates levels and builds a campaign.
// Levels must be numbered contiguously from 1 in order, and every rule needs a matcher.
func NewCampaign(id, title string, levels []Level) (*Campaign, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidCampaign)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: %s has no levels", ErrInvalidCampaign, id)
	}

	copied := make([]Level, len(levels))
	for i, lvl := range levels {
		if lvl.Index != i+1 {
			return nil, fmt.Errorf("%w: %s level at position %d has index %d", ErrInvalidCampaign, id, i+1, lvl.Index)
		}
		if lvl.Points < 0 {
			return nil, fmt.Errorf("%w: %s level %d has negative points", ErrInvalidCampaign, id, lvl.Index)
		}
		for j, r := range lvl.Rules {
			if r.Match == nil {
				return nil, fmt.Errorf("%w: %s level %d rule %d has no matcher", ErrInvalidCampaign, id, lvl.Index, j+1)
			}
		}
		lvl.Hints = append([]string(nil), lvl.Hints...)
		lvl.Rules = append([]Rule(nil), lvl.Rules...)
		copied[i] = lvl
	}

	if title == "" {
		title = id
	}

	return &Campaign{id: id, title: title, levels: copied}, nil
}

// ID returns the campaign identifier used for registry lookups and score storage.
func (c *Campaign) ID() string {
	return c.id
}

// Title returns the display name.
func (c *Campaign) Title() string {
	return c.title
}

// LevelCount returns the number of levels.
func (c *Campaign) LevelCount() int {
	return len(c.levels)
}

// Level returns the level with the given 1-based index.
func (c *Campaign) Level(index int) (Level, bool) {
	if index < 1 || index > len(c.levels) {
		return Level{}, false
	}
	return c.levels[index-1], true
}

// Levels returns a copy of all levels in order.
func (c *Campaign) Levels() []Level {
	return append([]Level(nil), c.levels...)
}

// TotalPoints returns the score of a fully completed run.
func (c *Campaign) TotalPoints() int {
	total := 0
	for _, lvl := range c.levels {
		total += lvl.Points
	}
	return total
}

// match returns the first rule of the level accepting input.
func (l Level) match(input string) (Rule, bool) {
	for _, r := range l.Rules {
		if r.Match.Matches(input) {
			return r, true
		}
	}
	return Rule{}, false
}
