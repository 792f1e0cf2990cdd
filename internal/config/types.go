package config

import "time"

// UI mode tokens accepted by the client config and the --ui flag.
const (
	ModeAuto  = "auto"
	ModeLive  = "live"
	ModePlain = "plain"
)

// Defaults applied by Normalize.
const (
	DefaultFileName       = ".recall.yml"
	DefaultServerURL      = "http://127.0.0.1:8321"
	DefaultTimeoutSeconds = 10
)

// Config describes the .recall.yml client configuration.
type Config struct {
	Version int          `yaml:"version"`
	Server  ServerConfig `yaml:"server"`
	Quiz    QuizConfig   `yaml:"quiz"`
	UI      UIConfig     `yaml:"ui"`
}

// ServerConfig points the client at a quizd instance.
type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// QuizConfig remembers the quiz the client is working through.
type QuizConfig struct {
	ID string `yaml:"id"`
}

// UIConfig selects the play surface.
type UIConfig struct {
	Mode    string `yaml:"mode"`
	NoColor bool   `yaml:"no_color"`
}

// Timeout converts the configured request timeout to a duration.
func (cfg Config) Timeout() time.Duration {
	if cfg.Server.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(cfg.Server.TimeoutSeconds) * time.Second
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}
