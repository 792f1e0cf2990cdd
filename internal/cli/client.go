package cli

import (
	"strings"

	"recall/internal/config"
	"recall/pkg/quizservice/httpclient"
)

// loadClientConfig reads the config file and applies command line overrides.
// An empty configPath falls back to .recall.yml in the working directory.
func loadClientConfig(configPath, serverOverride string) (config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return config.Config{}, err
	}
	if override := strings.TrimSpace(serverOverride); override != "" {
		cfg.Server.URL = override
	}
	return cfg, nil
}

// newServiceClient builds the HTTP client for a resolved config.
func newServiceClient(cfg config.Config) *httpclient.Client {
	if timeout := cfg.Timeout(); timeout > 0 {
		return httpclient.NewWithTimeout(cfg.Server.URL, timeout)
	}
	return httpclient.New(cfg.Server.URL)
}
