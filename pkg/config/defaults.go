package config

const (
	LogFormatPretty = "pretty"
	LogFormatText   = "text"
	LogFormatJSON   = "json"
)

const (
	defaultServerURL      = "http://127.0.0.1:7070/api"
	defaultStreamPath     = "/stream"
	defaultReconnectDelay = "1s"
	defaultLogFormat      = LogFormatPretty
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			URL:        defaultServerURL,
			StreamPath: defaultStreamPath,
		},
		Stream: StreamConfig{
			ReconnectDelay: defaultReconnectDelay,
		},
		Log: LogConfig{
			Format: defaultLogFormat,
		},
	}
}
