package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recall/internal/testutil"
)

const sampleBankYAML = `version: 1
topics:
  - topic_id: mesh
    name: Service Mesh
    questions:
      - number: 1
        text: Which proxy does Istio use?
        kind: single_choice
        choices:
          - letter: a
            text: Envoy
          - letter: b
            text: HAProxy
        answer: [a]
      - number: 2
        text: Name the Istio control plane binary.
        kind: short_answer
        answer: [istiod]
`

func writeBankFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write bank file: %v", err)
	}
	return path
}

func TestImportCommandUploadsBank(t *testing.T) {
	instance := testutil.StartServer(t, testutil.ServerConfig{})
	path := writeBankFile(t, "bank.yml", sampleBankYAML)

	out, errOut, code := runCLI(t, []string{"import", "--server", instance.BaseURL, path})
	if code != ExitOK {
		t.Fatalf("exit code = %d, want %d (stderr %q)", code, ExitOK, errOut)
	}
	if !strings.Contains(out, "Imported 1 topics (2 questions).") {
		t.Fatalf("stdout = %q, want import summary", out)
	}

	topic, err := instance.Core.Topic(context.Background(), "mesh")
	if err != nil {
		t.Fatalf("fetch imported topic: %v", err)
	}
	if len(topic.Questions) != 2 {
		t.Fatalf("imported questions = %d, want 2", len(topic.Questions))
	}
	if topic.Questions[0].Answer[0] != "A" {
		t.Fatalf("answer letter = %q, want normalized A", topic.Questions[0].Answer[0])
	}
	if topic.Questions[0].Revision == "" {
		t.Fatalf("imported question missing revision")
	}
}

func TestImportCommandRejectsInvalidBank(t *testing.T) {
	instance := testutil.StartServer(t, testutil.ServerConfig{})
	bad := strings.Replace(sampleBankYAML, "answer: [a]", "answer: [z]", 1)
	path := writeBankFile(t, "bank.yml", bad)

	_, errOut, code := runCLI(t, []string{"import", "--server", instance.BaseURL, path})
	if code != ExitError {
		t.Fatalf("exit code = %d, want %d", code, ExitError)
	}
	if !strings.Contains(errOut, "Bank rejected") || !strings.Contains(errOut, `unknown letter "Z"`) {
		t.Fatalf("stderr = %q, want local validation failure", errOut)
	}

	// The broken bank must never reach the service.
	topics, err := instance.Core.Topics(context.Background())
	if err != nil {
		t.Fatalf("list topics: %v", err)
	}
	if len(topics) != 0 {
		t.Fatalf("topics = %d, want none", len(topics))
	}
}

func TestImportCommandRequiresOneArgument(t *testing.T) {
	_, errOut, code := runCLI(t, []string{"import"})
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(errOut, "expected exactly one bank file") {
		t.Fatalf("stderr = %q, want argument requirement", errOut)
	}
}
