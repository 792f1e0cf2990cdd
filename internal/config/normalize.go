package config

import "strings"

// Normalize fills in defaults for fields the config file left unset.
func Normalize(cfg *Config) {
	cfg.Server.URL = strings.TrimSpace(cfg.Server.URL)
	if cfg.Server.URL == "" {
		cfg.Server.URL = DefaultServerURL
	}
	if cfg.Server.TimeoutSeconds == 0 {
		cfg.Server.TimeoutSeconds = DefaultTimeoutSeconds
	}
	cfg.Quiz.ID = strings.TrimSpace(cfg.Quiz.ID)
	cfg.UI.Mode = strings.TrimSpace(cfg.UI.Mode)
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = ModeAuto
	}
}
