package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"recall/internal/report"
)

func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Config file path (default .recall.yml)")
		serverURL := fs.String("server", "", "Quiz service URL override")
		quizID := fs.String("quiz", "", "Quiz id to report on")
		outPath := fs.String("out", "report.html", "Output HTML path")
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
		client := newServiceClient(cfg)

		ctx := context.Background()
		progress, err := client.Progress(ctx, id)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quiz: %v\n", err)
			return ExitError
		}
		problems, err := client.Problems(ctx, id)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quiz questions: %v\n", err)
			return ExitError
		}

		data := report.Data{Quiz: progress, Problems: problems}
		if err := report.WriteFile(*outPath, data); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}

		stats := data.Stats()
		fmt.Fprintf(stdout, "Wrote %s: %d of %d answered, %d correct.\n", *outPath, stats.Answered, stats.Total, stats.Correct)
		return ExitOK
	}
}
