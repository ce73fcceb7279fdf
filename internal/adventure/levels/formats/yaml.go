// Package formats provides campaign file parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
)

// YAMLCampaign represents the YAML structure of a campaign file.
type YAMLCampaign struct {
	ID     string      `yaml:"id"`
	Title  string      `yaml:"title"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents one level.
type YAMLLevel struct {
	Level       int           `yaml:"level"`
	Description string        `yaml:"description"`
	Hints       []string      `yaml:"hints,omitempty"`
	Points      int           `yaml:"points"`
	Commands    []YAMLCommand `yaml:"commands"`
}

// YAMLCommand is a command rule. Exactly one of Match or Pattern must be set;
// Unless is only valid together with Pattern.
type YAMLCommand struct {
	Match    string `yaml:"match,omitempty"`
	Pattern  string `yaml:"pattern,omitempty"`
	Unless   string `yaml:"unless,omitempty"`
	Response string `yaml:"response"`
	Success  bool   `yaml:"success,omitempty"`
}

// ParseYAML parses and validates a campaign file.
func ParseYAML(data []byte) (*adventure.Campaign, error) {
	var yc YAMLCampaign
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	levels := make([]adventure.Level, 0, len(yc.Levels))
	for _, yl := range yc.Levels {
		rules := make([]adventure.Rule, 0, len(yl.Commands))
		for i, cmd := range yl.Commands {
			m, err := cmd.matcher()
			if err != nil {
				return nil, fmt.Errorf("level %d command %d: %w", yl.Level, i+1, err)
			}
			rules = append(rules, adventure.Rule{
				Match:    m,
				Response: cmd.Response,
				Success:  cmd.Success,
			})
		}

		levels = append(levels, adventure.Level{
			Index:       yl.Level,
			Description: yl.Description,
			Hints:       yl.Hints,
			Rules:       rules,
			Points:      yl.Points,
		})
	}

	return adventure.NewCampaign(yc.ID, yc.Title, levels)
}

func (c YAMLCommand) matcher() (adventure.Matcher, error) {
	switch {
	case c.Match != "" && c.Pattern != "":
		return nil, fmt.Errorf("%w: both match and pattern set", adventure.ErrInvalidCampaign)
	case c.Match != "":
		if c.Unless != "" {
			return nil, fmt.Errorf("%w: unless requires pattern", adventure.ErrInvalidCampaign)
		}
		return adventure.NewExact(c.Match), nil
	case c.Pattern != "":
		p, err := adventure.NewPattern(c.Pattern)
		if err != nil {
			return nil, err
		}
		if c.Unless != "" {
			return p.Unless(c.Unless)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: command needs match or pattern", adventure.ErrInvalidCampaign)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
