// Package levels loads campaigns from YAML files.
// This package depends on adventure but adventure does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/adventure/levels/formats"
	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

// Loader handles loading campaigns from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new campaign loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans Root and loads every campaign file.
// Campaigns are sorted by ID. Files that fail to load are skipped and
// reported together in the returned error; the valid campaigns are still returned.
func (l *Loader) LoadAll() ([]*adventure.Campaign, error) {
	var campaigns []*adventure.Campaign
	var failures []error

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		c, err := LoadFile(path)
		if err != nil {
			failures = append(failures, err)
			return nil
		}
		campaigns = append(campaigns, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].ID() < campaigns[j].ID()
	})

	return campaigns, errors.Join(failures...)
}

// RegisterAll loads every campaign under Root into the registry and returns
// the IDs it added. A missing Root is not an error. Files that fail to load
// and campaigns whose ID is already registered are reported in the error.
func (l *Loader) RegisterAll() ([]string, error) {
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	campaigns, err := l.LoadAll()
	failures := []error{err}

	var added []string
	for _, c := range campaigns {
		if err := registry.Add(c); err != nil {
			failures = append(failures, err)
			continue
		}
		added = append(added, c.ID())
	}
	return added, errors.Join(failures...)
}

// LoadByID loads the campaign with the given ID from Root.
func (l *Loader) LoadByID(id string) (*adventure.Campaign, error) {
	campaigns, err := l.LoadAll()
	for _, c := range campaigns {
		if c.ID() == id {
			return c, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("campaign not found: %s", id)
}

// LoadFile loads a single campaign file.
func LoadFile(path string) (*adventure.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	c, err := parseByExtension(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	return c, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (*adventure.Campaign, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
