package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"recall/pkg/quizservice"
)

func runNew(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Config file path (default .recall.yml)")
		serverURL := fs.String("server", "", "Quiz service URL override")
		topics := fs.String("topics", "", "Comma separated topic ids, or \"all\"")
		shuffle := fs.Bool("shuffle", false, "Keep sampled questions in shuffled order")
		limit := fs.Int("limit", 0, "Maximum number of questions (0 = no limit)")
		name := fs.String("name", "", "Display name for the quiz")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			return ExitUsage
		}
		selected := parseTopicSelector(*topics)
		if len(selected) == 0 {
			fmt.Fprintln(stderr, "--topics is required (comma separated ids, or \"all\")")
			return ExitUsage
		}
		if *limit < 0 {
			fmt.Fprintln(stderr, "--limit must not be negative")
			return ExitUsage
		}

		cfg, err := loadClientConfig(*configPath, *serverURL)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		client := newServiceClient(cfg)

		progress, err := client.CreateQuiz(context.Background(), quizservice.NewQuizParams{
			Topics:       selected,
			Shuffle:      *shuffle,
			MaxQuestions: *limit,
			Name:         strings.TrimSpace(*name),
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create quiz: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Created quiz %s with %d questions.\n", progress.QuizID, progress.Size)
		return ExitOK
	}
}

// parseTopicSelector splits a comma separated topic list. The "all" selector
// wins over any other entry.
func parseTopicSelector(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.EqualFold(part, quizservice.AllTopicsSelector) {
			return []string{quizservice.AllTopicsSelector}
		}
		out = append(out, part)
	}
	return out
}
