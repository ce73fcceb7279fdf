package adventure

import (
	"errors"
	"testing"
)

func TestNewCampaignValidation(t *testing.T) {
	rule := Rule{Match: NewExact("go"), Response: "ok", Success: true}

	tests := []struct {
		name   string
		id     string
		levels []Level
	}{
		{"missing id", "", []Level{{Index: 1}}},
		{"no levels", "c", nil},
		{"starts at 2", "c", []Level{{Index: 2}}},
		{"gap", "c", []Level{{Index: 1}, {Index: 3}}},
		{"negative points", "c", []Level{{Index: 1, Points: -1}}},
		{"nil matcher", "c", []Level{{Index: 1, Rules: []Rule{rule, {Response: "x"}}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCampaign(tc.id, "", tc.levels)
			if !errors.Is(err, ErrInvalidCampaign) {
				t.Errorf("NewCampaign() error = %v, expected ErrInvalidCampaign", err)
			}
		})
	}
}

func TestCampaignAccessors(t *testing.T) {
	levels := []Level{
		{Index: 1, Points: 10, Hints: []string{"a"}},
		{Index: 2, Points: 15},
	}
	c, err := NewCampaign("demo", "", levels)
	if err != nil {
		t.Fatalf("NewCampaign() failed: %v", err)
	}

	if c.Title() != "demo" {
		t.Errorf("Title() = %q, expected id fallback", c.Title())
	}
	if c.LevelCount() != 2 {
		t.Errorf("LevelCount() = %d", c.LevelCount())
	}
	if c.TotalPoints() != 25 {
		t.Errorf("TotalPoints() = %d", c.TotalPoints())
	}
	if _, ok := c.Level(0); ok {
		t.Error("Level(0) should not exist")
	}
	if _, ok := c.Level(3); ok {
		t.Error("Level(3) should not exist")
	}

	// Campaign keeps its own copy of the input.
	levels[0].Hints[0] = "changed"
	lvl, _ := c.Level(1)
	if lvl.Hints[0] != "a" {
		t.Error("campaign shares hint storage with caller")
	}
}
