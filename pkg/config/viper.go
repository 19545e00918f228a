package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/weelink/dashctl/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the DASHCTL_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (DASHCTL_SERVER_URL, DASHCTL_STREAM_MAX_LOGS, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution. Reading config never
	// creates the directory.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Lookup(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
		if err := v.ReadInConfig(); err != nil {
			// Config file not found errors are fine, defaults will apply.
			if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	// 3. Environment variables: DASHCTL_SERVER_URL, DASHCTL_LOG_FORMAT, etc.
	v.SetEnvPrefix("DASHCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper builds a Config from the resolved viper values.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Version: v.GetInt("version"),
		Server: ServerConfig{
			URL:        v.GetString("server.url"),
			StreamPath: v.GetString("server.stream_path"),
		},
		Stream: StreamConfig{
			ReconnectDelay: v.GetString("stream.reconnect_delay"),
			MaxLogs:        v.GetUint("stream.max_logs"),
		},
		Log: LogConfig{
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}

	if cfg.Version != CurrentV {
		return nil, fmt.Errorf("unsupported config version %d (expected %d)", cfg.Version, CurrentV)
	}
	if _, err := cfg.Stream.Delay(); err != nil {
		return nil, err
	}
	if !IsValidLogFormat(cfg.Log.Format) {
		return nil, fmt.Errorf("invalid log.format %q (available: pretty, text, json)", cfg.Log.Format)
	}

	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server
	v.SetDefault("server.url", d.Server.URL)
	v.SetDefault("server.stream_path", d.Server.StreamPath)

	// Stream
	v.SetDefault("stream.reconnect_delay", d.Stream.ReconnectDelay)
	v.SetDefault("stream.max_logs", d.Stream.MaxLogs)

	// Log
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
}
