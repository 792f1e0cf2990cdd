package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"recall/internal/server"
	"recall/internal/store"
	"recall/internal/store/memory"
)

// ServerConfig wires dependencies for StartServer.
type ServerConfig struct {
	Store   store.Store
	Now     func() time.Time
	Shuffle func(n int, swap func(i, j int))
}

// ServerInstance is a running quiz API test server.
type ServerInstance struct {
	BaseURL string
	Core    *server.Core
	Close   func()
}

// StartServer launches an in-memory HTTP server for the quiz API.
func StartServer(t *testing.T, cfg ServerConfig) *ServerInstance {
	t.Helper()
	if cfg.Store == nil {
		cfg.Store = memory.New()
	}
	core, err := server.New(server.Config{
		Store:   cfg.Store,
		Now:     cfg.Now,
		Shuffle: cfg.Shuffle,
	})
	if err != nil {
		t.Fatalf("build server core: %v", err)
	}
	instance := httptest.NewServer(server.NewHandler(core))
	t.Cleanup(instance.Close)
	return &ServerInstance{
		BaseURL: instance.URL,
		Core:    core,
		Close:   instance.Close,
	}
}
