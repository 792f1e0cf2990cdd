package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"recall/internal/session"
	"recall/internal/ui/play"
	"recall/pkg/quizservice"
)

// playOptions carries the resolved settings shared by both play surfaces.
type playOptions struct {
	quizID  string
	noColor bool
	verbose io.Writer
	timeout time.Duration
}

func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Config file path (default .recall.yml)")
		serverURL := fs.String("server", "", "Quiz service URL override")
		quizID := fs.String("quiz", "", "Quiz id to play")
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain")
		noColor := fs.Bool("no-color", false, "Disable colored output")
		verbose := fs.Bool("verbose", false, "Log session diagnostics to stderr")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return ExitUsage
		}

		cfg, err := loadClientConfig(*configPath, *serverURL)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}

		id := strings.TrimSpace(*quizID)
		if id == "" {
			id = cfg.Quiz.ID
		}
		if id == "" {
			fmt.Fprintln(stderr, "quiz id is required: pass --quiz or set quiz.id in .recall.yml")
			return ExitUsage
		}

		mode := cfg.UI.Mode
		if flagMode := strings.TrimSpace(*uiMode); flagMode != "" {
			mode = flagMode
		}
		decision, err := resolveUIMode(mode, *verbose, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		opts := playOptions{
			quizID:  id,
			noColor: *noColor || cfg.UI.NoColor,
			timeout: cfg.Timeout(),
		}
		if *verbose {
			opts.verbose = stderr
		}
		svc := newServiceClient(cfg)

		if decision.useLive {
			return playLive(svc, opts, stdout, stderr)
		}
		return playPlain(svc, opts, stdout, stderr)
	}
}

// playLive runs the full-screen Bubble Tea surface.
func playLive(svc quizservice.Service, opts playOptions, stdout, stderr io.Writer) int {
	controller := play.NewController(stdout, play.Options{NoColor: opts.noColor})
	defer controller.Close()
	sess, err := session.New(session.Config{
		Service:  svc,
		QuizID:   opts.quizID,
		Observer: controller,
		Verbose:  opts.verbose,
		Timeout:  opts.timeout,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Failed to prepare session: %v\n", err)
		return ExitError
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Runs before cancel: committed answers finish uploading on their own
	// timeout instead of dying with the context.
	defer sess.Wait()
	sess.Start(ctx)

	if err := controller.Run(sess); err != nil {
		fmt.Fprintf(stderr, "UI error: %v\n", err)
		return ExitError
	}

	// The alternate screen is gone at this point; repeat the outcome so it
	// survives in the scrollback.
	final := sess.Snapshot()
	switch final.Phase {
	case session.PhaseFailed:
		fmt.Fprintf(stderr, "%s\n", final.Err)
		return ExitError
	case session.PhaseFinished:
		if final.LastEvent != "" {
			fmt.Fprintln(stdout, final.LastEvent)
		}
	}
	return ExitOK
}
