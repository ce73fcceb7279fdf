// Package config provides YAML and environment based configuration for Bash Bonanza.
package config

import "time"

// Config contains all application settings.
// Values come from YAML first and are then overridden by BONANZA_* environment variables.
type Config struct {
	DBPath        string          `yaml:"db_path"        env:"BONANZA_DB_PATH"`
	CampaignDir   string          `yaml:"campaign_dir"   env:"BONANZA_CAMPAIGN_DIR"`
	FollowupDelay time.Duration   `yaml:"followup_delay" env:"BONANZA_FOLLOWUP_DELAY"`
	LogLevel      string          `yaml:"log_level"      env:"BONANZA_LOG_LEVEL"`
	Player        string          `yaml:"player"         env:"BONANZA_PLAYER"`
	SSH           SSHConfig       `yaml:"ssh"            envPrefix:"BONANZA_SSH_"`
	Telemetry     TelemetryConfig `yaml:"telemetry"      envPrefix:"BONANZA_TELEMETRY_"`
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address"      env:"ADDRESS"`
	HostKey     string        `yaml:"host_key"     env:"HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
}

// TelemetryConfig defines OpenTelemetry tracing.
// The exporter itself reads the standard OTEL_EXPORTER_OTLP_* variables.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"      env:"ENABLED"`
	ServiceName string `yaml:"service_name" env:"SERVICE_NAME"`
}
