package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"recall/internal/bank"
)

func runImport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one bank file argument")
			return ExitUsage
		}

		// Validate locally before touching the service so a broken bank
		// never reaches the admin endpoint.
		topics, err := bank.Load(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Bank rejected: %v\n", err)
			return ExitError
		}

		cfg, err := loadClientConfig(*configPath, *serverURL)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		client := newServiceClient(cfg)

		result, err := client.ImportTopics(context.Background(), topics)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to import bank: %v\n", err)
			return ExitError
		}

		fmt.Fprintf(stdout, "Imported %d topics (%d questions).\n", result.Topics, result.Questions)
		return ExitOK
	}
}
