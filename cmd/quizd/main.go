package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recall/internal/bank"
	"recall/internal/server"
	"recall/internal/store"
	"recall/internal/store/duckdb"
	"recall/internal/store/memory"
)

// main launches quizd.
func main() {
	os.Exit(run())
}

// run executes quizd and returns an exit code.
func run() int {
	configPath := flag.String("config", "quizd.yaml", "path to quizd config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var backing store.Store
	var closeStore func()
	switch cfg.Server.Backend {
	case "duckdb":
		db, err := duckdb.Open(ctx, cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store error: %v\n", err)
			return 1
		}
		backing = db
		closeStore = func() {
			_ = db.Close()
		}
	default:
		backing = memory.New()
	}

	core, err := server.New(server.Config{Store: backing})
	if err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		if closeStore != nil {
			closeStore()
		}
		return 1
	}
	if err := seedBanks(ctx, core, cfg.Banks.Paths); err != nil {
		fmt.Fprintf(os.Stderr, "bank error: %v\n", err)
		if closeStore != nil {
			closeStore()
		}
		return 1
	}

	httpServer := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: server.NewHandler(core),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
	if closeStore != nil {
		closeStore()
	}
	return 0
}

// seedBanks imports bank files listed in the config. Imports are idempotent;
// a topic re-imported at every boot just replaces itself.
func seedBanks(ctx context.Context, core *server.Core, paths []string) error {
	for _, path := range paths {
		topics, err := bank.Load(path)
		if err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
		if _, err := core.ImportTopics(ctx, topics); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
	}
	return nil
}
