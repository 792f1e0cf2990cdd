package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

func runTopics(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Config file path (default .recall.yml)")
		serverURL := fs.String("server", "", "Quiz service URL override")
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
		client := newServiceClient(cfg)

		topics, err := client.Topics(context.Background())
		if err != nil {
			fmt.Fprintf(stderr, "Failed to list topics: %v\n", err)
			return ExitError
		}
		if len(topics) == 0 {
			fmt.Fprintln(stdout, "No topics imported yet.")
			return ExitOK
		}

		width := len("TOPIC")
		for _, topic := range topics {
			if len(topic.ID) > width {
				width = len(topic.ID)
			}
		}
		fmt.Fprintf(stdout, "%-*s  %9s  %s\n", width, "TOPIC", "QUESTIONS", "NAME")
		for _, topic := range topics {
			fmt.Fprintf(stdout, "%-*s  %9d  %s\n", width, topic.ID, topic.QuestionCount, topic.Name)
		}
		return ExitOK
	}
}
