package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"recall/internal/testutil"
	"recall/pkg/quizservice"
)

// runCLI invokes the CLI and returns stdout, stderr, and exit code.
func runCLI(t *testing.T, args []string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return out.String(), errOut.String(), code
}

// chdir switches the working directory for one test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previous); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}

// sampleTopics builds a small two-topic bank. Question numbers are distinct
// across topics so the all-topics selector does not collapse them.
func sampleTopics() []quizservice.Topic {
	return []quizservice.Topic{
		{
			ID:   "crypto",
			Name: "Cryptography",
			Questions: []quizservice.Question{
				{
					Number: 1,
					Text:   "Which cipher is symmetric?",
					Kind:   quizservice.KindSingleChoice,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "RSA"},
						{Letter: "B", Text: "AES"},
					},
					Answer:   []string{"B"},
					TopicID:  "crypto",
					Revision: "rev-1",
				},
				{
					Number: 2,
					Text:   "Which are block ciphers?",
					Kind:   quizservice.KindMultiAnswer,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "AES"},
						{Letter: "B", Text: "RC4"},
						{Letter: "C", Text: "Twofish"},
					},
					Answer:   []string{"A", "C"},
					TopicID:  "crypto",
					Revision: "rev-2",
				},
			},
		},
		{
			ID:   "network",
			Name: "Networking",
			Questions: []quizservice.Question{
				{
					Number:   3,
					Text:     "Which protocol secures HTTP?",
					Kind:     quizservice.KindShortAnswer,
					Answer:   []string{"TLS"},
					TopicID:  "network",
					Revision: "rev-3",
				},
			},
		},
	}
}

// seedTopics imports the sample bank into a test server.
func seedTopics(t *testing.T, instance *testutil.ServerInstance) {
	t.Helper()
	if _, err := instance.Core.ImportTopics(context.Background(), sampleTopics()); err != nil {
		t.Fatalf("seed topics: %v", err)
	}
}

func TestRootHelp(t *testing.T) {
	out, errOut, code := runCLI(t, []string{"--help"})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d", code, ExitOK)
	}
	if errOut != "" {
		t.Fatalf("stderr = %q, want empty", errOut)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("help output missing usage header: %q", out)
	}
	for _, cmd := range commands {
		if !strings.Contains(out, cmd.Name) {
			t.Errorf("help output missing command %q", cmd.Name)
		}
	}
}

func TestNoArgsShowsUsage(t *testing.T) {
	out, _, code := runCLI(t, nil)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(out, "recall <command> [options]") {
		t.Fatalf("usage output missing command line: %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	out, errOut, code := runCLI(t, []string{"bogus"})
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if out != "" {
		t.Fatalf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "Unknown command: bogus") {
		t.Fatalf("stderr missing unknown-command line: %q", errOut)
	}
}

func TestCommandHelp(t *testing.T) {
	for _, cmd := range commands {
		t.Run(cmd.Name, func(t *testing.T) {
			out, errOut, code := runCLI(t, []string{cmd.Name, "--help"})
			if code != ExitOK {
				t.Fatalf("exit code = %d, want %d", code, ExitOK)
			}
			if errOut != "" {
				t.Fatalf("stderr = %q, want empty", errOut)
			}
			for _, usage := range cmd.Usage {
				if !strings.Contains(out, usage) {
					t.Errorf("help output missing usage line %q: %q", usage, out)
				}
			}
		})
	}
}
