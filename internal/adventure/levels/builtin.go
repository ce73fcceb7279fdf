package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/vovakirdan/bash-bonanza/internal/adventure"
	"github.com/vovakirdan/bash-bonanza/internal/adventure/levels/formats"
	"github.com/vovakirdan/bash-bonanza/internal/registry"
)

// DefaultCampaignID is the campaign started when none is named.
const DefaultCampaignID = "browser-bash"

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtin parses the campaigns shipped with the binary.
func Builtin() ([]*adventure.Campaign, error) {
	files, err := fs.Glob(builtinFS, "builtin/*.yaml")
	if err != nil {
		return nil, err
	}

	campaigns := make([]*adventure.Campaign, 0, len(files))
	for _, name := range files {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("reading embedded %s: %w", name, err)
		}
		c, err := formats.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parsing embedded %s: %w", path.Base(name), err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func init() {
	campaigns, err := Builtin()
	if err != nil {
		panic(err)
	}
	for _, c := range campaigns {
		registry.Register(c)
	}
}
