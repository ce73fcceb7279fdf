// Package registry provides a global registry of playable campaigns.
// Built-in campaigns register themselves in init() functions; campaigns found
// in the user's campaign directory are added at startup. The platform looks
// campaigns up by ID without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
)

var (
	// ErrUnknownCampaign is returned when no campaign has the requested ID.
	ErrUnknownCampaign = errors.New("unknown campaign")

	// ErrDuplicateCampaign is returned when a campaign ID is already taken.
	ErrDuplicateCampaign = errors.New("campaign already registered")
)

// CampaignInfo contains metadata about a registered campaign.
type CampaignInfo struct {
	ID          string
	Title       string
	Levels      int
	TotalPoints int
}

var (
	campaigns = make(map[string]*adventure.Campaign)
	mu        sync.RWMutex
)

// Register adds a campaign to the registry.
// Typically called from an init() function.
// Panics if a campaign with the same ID is already registered.
func Register(c *adventure.Campaign) {
	if err := Add(c); err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
}

// Add adds a campaign, returning ErrDuplicateCampaign if its ID is taken.
func Add(c *adventure.Campaign) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := campaigns[c.ID()]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateCampaign, c.ID())
	}
	campaigns[c.ID()] = c
	return nil
}

// List returns information about all registered campaigns, sorted by ID.
func List() []CampaignInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]CampaignInfo, 0, len(campaigns))
	for id, c := range campaigns {
		result = append(result, CampaignInfo{
			ID:          id,
			Title:       c.Title(),
			Levels:      c.LevelCount(),
			TotalPoints: c.TotalPoints(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Get returns the campaign with the given ID.
// Campaigns are immutable, so every session can share the same value.
func Get(id string) (*adventure.Campaign, error) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := campaigns[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownCampaign, id)
	}
	return c, nil
}

// Exists checks if a campaign with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := campaigns[id]
	return ok
}
