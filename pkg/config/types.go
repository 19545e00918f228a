package config

import (
	"fmt"
	"strconv"
	"time"
)

// Config represents the persistent dashctl configuration stored as config.toml
// in the .dashctl/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Server  ServerConfig `toml:"server"`
	Stream  StreamConfig `toml:"stream"`
	Log     LogConfig    `toml:"log"`
}

// ServerConfig locates the dashboard API.
type ServerConfig struct {
	// URL is the API base URL, e.g. http://127.0.0.1:7070/api.
	URL string `toml:"url,omitempty"`

	// StreamPath is the path of the SSE endpoint relative to URL.
	StreamPath string `toml:"stream_path,omitempty"`
}

// StreamConfig holds settings for the live log stream.
type StreamConfig struct {
	// ReconnectDelay is a Go duration string such as "1s" or "500ms".
	ReconnectDelay string `toml:"reconnect_delay,omitempty"`

	// MaxLogs caps the in-memory log sequence. 0 keeps every entry.
	MaxLogs uint `toml:"max_logs,omitempty"`
}

// LogConfig controls dashctl's own diagnostics output.
type LogConfig struct {
	// Format is one of "pretty", "text" or "json".
	Format string `toml:"format,omitempty"`

	// File, when set, additionally receives JSON diagnostics.
	File string `toml:"file,omitempty"`
}

// Delay parses ReconnectDelay.
func (s StreamConfig) Delay() (time.Duration, error) {
	d, err := time.ParseDuration(s.ReconnectDelay)
	if err != nil {
		return 0, fmt.Errorf("invalid stream.reconnect_delay %q: %w", s.ReconnectDelay, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid stream.reconnect_delay %q: must not be negative", s.ReconnectDelay)
	}
	return d, nil
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.url": {
		get: func(c *Config) string { return c.Server.URL },
		set: func(c *Config, v string) error { c.Server.URL = v; return nil },
	},
	"server.stream_path": {
		get: func(c *Config) string { return c.Server.StreamPath },
		set: func(c *Config, v string) error { c.Server.StreamPath = v; return nil },
	},
	"stream.reconnect_delay": {
		get: func(c *Config) string { return c.Stream.ReconnectDelay },
		set: func(c *Config, v string) error {
			s := StreamConfig{ReconnectDelay: v}
			if _, err := s.Delay(); err != nil {
				return fmt.Errorf("invalid value for stream.reconnect_delay: %w", err)
			}
			c.Stream.ReconnectDelay = v
			return nil
		},
	},
	"stream.max_logs": {
		get: func(c *Config) string { return strconv.FormatUint(uint64(c.Stream.MaxLogs), 10) },
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for stream.max_logs: %w", err)
			}
			c.Stream.MaxLogs = uint(n)
			return nil
		},
	},
	"log.format": {
		get: func(c *Config) string { return c.Log.Format },
		set: func(c *Config, v string) error {
			if !IsValidLogFormat(v) {
				return fmt.Errorf("invalid value for log.format: %q (available: pretty, text, json)", v)
			}
			c.Log.Format = v
			return nil
		},
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
}

// IsValidLogFormat reports whether format is a supported log.format value.
func IsValidLogFormat(format string) bool {
	switch format {
	case LogFormatPretty, LogFormatText, LogFormatJSON:
		return true
	}
	return false
}
