package bank

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recall/pkg/quizservice"
)

func writeBank(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write bank file: %v", err)
	}
	return path
}

// TestLoadBankYAML verifies YAML banks load, trim, and normalize letters.
func TestLoadBankYAML(t *testing.T) {
	path := writeBank(t, "bank.yml", `version: 1
topics:
  - topic_id: " net "
    name: "Networking"
    questions:
      - number: 1
        text: "  Default HTTPS port? "
        kind: single_choice
        choices:
          - letter: " a "
            text: " 80 "
          - letter: b
            text: "443"
        answer: ["b"]
        explain: "  TLS rides on 443. "
`)
	topics, err := Load(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	topic := topics[0]
	if topic.ID != "net" || topic.Name != "Networking" {
		t.Fatalf("unexpected topic: %+v", topic)
	}
	if len(topic.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(topic.Questions))
	}
	q := topic.Questions[0]
	if q.Text != "Default HTTPS port?" {
		t.Fatalf("expected trimmed text, got %q", q.Text)
	}
	if q.Choices[0].Letter != "A" || q.Choices[0].Text != "80" {
		t.Fatalf("expected normalized choice, got %+v", q.Choices[0])
	}
	if len(q.Answer) != 1 || q.Answer[0] != "B" {
		t.Fatalf("expected uppercase answer, got %+v", q.Answer)
	}
	if q.Explanation != "TLS rides on 443." {
		t.Fatalf("expected trimmed explanation, got %q", q.Explanation)
	}
	if q.TopicID != "net" {
		t.Fatalf("expected topic id on question, got %q", q.TopicID)
	}
	if q.Revision == "" {
		t.Fatalf("expected a revision id to be assigned")
	}
}

// TestLoadBankJSON verifies JSON banks parse with unknown fields rejected.
func TestLoadBankJSON(t *testing.T) {
	path := writeBank(t, "bank.json", `{
  "version": 1,
  "topics": [
    {
      "topic_id": "crypto",
      "name": "Cryptography",
      "questions": [
        {
          "number": 2,
          "text": "Which are symmetric ciphers?",
          "kind": "multi_answer",
          "choices": [
            {"letter": "A", "text": "AES"},
            {"letter": "B", "text": "RSA"},
            {"letter": "C", "text": "ChaCha20"}
          ],
          "answer": ["A", "C"]
        }
      ]
    }
  ]
}`)
	topics, err := Load(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	if len(topics) != 1 || topics[0].ID != "crypto" {
		t.Fatalf("unexpected topics: %+v", topics)
	}
	q := topics[0].Questions[0]
	if q.Kind != quizservice.KindMultiAnswer || len(q.Answer) != 2 {
		t.Fatalf("unexpected question: %+v", q)
	}

	bad := writeBank(t, "bad.json", `{"version": 1, "topicss": []}`)
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

// TestLoadBankAcceptsLegacyLabels verifies the original bank labels map to kinds.
func TestLoadBankAcceptsLegacyLabels(t *testing.T) {
	path := writeBank(t, "bank.yml", `version: 1
topics:
  - topic_id: sec
    questions:
      - number: 1
        text: "Pick all hashing algorithms."
        kind: "多项选择题"
        choices:
          - {letter: A, text: "SHA-256"}
          - {letter: B, text: "AES"}
        answer: [A]
      - number: 2
        text: "Name one TLS handshake message."
        kind: "简答题"
        answer: ["ClientHello"]
`)
	topics, err := Load(path)
	if err != nil {
		t.Fatalf("load bank: %v", err)
	}
	questions := topics[0].Questions
	if questions[0].Kind != quizservice.KindMultiAnswer {
		t.Fatalf("expected multi_answer, got %s", questions[0].Kind)
	}
	if questions[1].Kind != quizservice.KindShortAnswer {
		t.Fatalf("expected short_answer, got %s", questions[1].Kind)
	}
	if topics[0].Name != "sec" {
		t.Fatalf("expected name to default to topic id, got %q", topics[0].Name)
	}
}

// TestLoadBankValidationErrors verifies invalid banks return collected issues.
func TestLoadBankValidationErrors(t *testing.T) {
	path := writeBank(t, "bank.yml", `version: 1
topics:
  - topic_id: net
    questions:
      - number: 1
        text: "Q1"
        kind: single_choice
        choices:
          - {letter: A, text: "a"}
        answer: [Z]
      - number: 1
        text: "Q2"
        kind: multi_answer
        choices:
          - {letter: A, text: "a"}
        answer: [A]
      - number: 3
        text: "Q3"
        kind: short_answer
        choices:
          - {letter: A, text: "not allowed"}
`)
	_, err := Load(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	message := err.Error()
	for _, fragment := range []string{`unknown letter "Z"`, "duplicate number 1", "must be empty for short answers"} {
		if !strings.Contains(message, fragment) {
			t.Fatalf("expected %q in %q", fragment, message)
		}
	}
}

// TestLoadBankRejectsWrongVersion verifies version gating.
func TestLoadBankRejectsWrongVersion(t *testing.T) {
	path := writeBank(t, "bank.yml", "version: 2\ntopics: []\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported version 2") {
		t.Fatalf("expected version error, got %v", err)
	}
}

// TestNormalizeAssignsDistinctRevisions verifies each load mints new revisions.
func TestNormalizeAssignsDistinctRevisions(t *testing.T) {
	file := File{
		Version: 1,
		Topics: []TopicSpec{{
			ID: "net",
			Questions: []QuestionSpec{
				{Number: 1, Text: "Q1", Kind: "short_answer"},
				{Number: 2, Text: "Q2", Kind: "short_answer"},
			},
		}},
	}
	topics, err := Normalize(file)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	first, second := topics[0].Questions[0].Revision, topics[0].Questions[1].Revision
	if first == "" || first == second {
		t.Fatalf("expected distinct revisions, got %q and %q", first, second)
	}
}
