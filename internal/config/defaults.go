package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/bonanza.yaml
var defaultConfigYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		DBPath:        "~/.bonanza/runs.db",
		CampaignDir:   "~/.bonanza/campaigns",
		FollowupDelay: 500 * time.Millisecond,
		LogLevel:      "info",
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "bash-bonanza",
		},
	}
}
