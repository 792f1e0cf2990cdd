package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recall/pkg/quizservice"
)

func sampleData() Data {
	return Data{
		Quiz: quizservice.Progress{
			QuizID:    "q1",
			Name:      "security drill",
			TopicIDs:  []string{"crypto", "net"},
			Size:      3,
			CreatedAt: time.Date(2026, time.May, 1, 12, 0, 0, 0, time.UTC),
		},
		Problems: []quizservice.Problem{
			{
				Question: quizservice.Question{
					Number: 1,
					Text:   "Which are symmetric ciphers?",
					Kind:   quizservice.KindMultiAnswer,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "AES"},
						{Letter: "B", Text: "RSA"},
						{Letter: "C", Text: "ChaCha20"},
						{Letter: "D", Text: "ECDSA"},
					},
					Answer:      []string{"A", "C"},
					Explanation: "RSA and ECDSA are asymmetric.",
				},
				Status:     quizservice.StatusIncorrect,
				UserAnswer: []string{"A", "D"},
			},
			{
				Question: quizservice.Question{
					Number: 2,
					Text:   "Name the protocol securing HTTP.",
					Kind:   quizservice.KindShortAnswer,
					Answer: []string{"TLS"},
				},
				Status:     quizservice.StatusCorrect,
				UserAnswer: []string{"TLS"},
			},
			{
				Question: quizservice.Question{
					Number: 3,
					Text:   "Default HTTPS port?",
					Kind:   quizservice.KindSingleChoice,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "80"},
						{Letter: "B", Text: "443"},
					},
					Answer: []string{"B"},
				},
				Status: quizservice.StatusNotAnswered,
			},
		},
	}
}

// TestRenderHTMLClassifiesChoices verifies per-choice CSS classes.
func TestRenderHTMLClassifiesChoices(t *testing.T) {
	html, err := RenderHTML(sampleData())
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	for _, fragment := range []string{
		`<li class="choice correct">A. AES</li>`,
		`<li class="choice neutral">B. RSA</li>`,
		`<li class="choice missing">C. ChaCha20</li>`,
		`<li class="choice wrong">D. ECDSA</li>`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in rendered report", fragment)
		}
	}
	// Unanswered questions render without grading emphasis.
	if !strings.Contains(html, `<li class="choice neutral">B. 443</li>`) {
		t.Fatalf("expected unanswered choice to stay neutral")
	}
}

// TestRenderHTMLSummaryAndAnswers verifies header, score, and answer lines.
func TestRenderHTMLSummaryAndAnswers(t *testing.T) {
	html, err := RenderHTML(sampleData())
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	for _, fragment := range []string{
		"security drill",
		"answered 2 of 3, 1 correct, accuracy 50%",
		"your answer: A, D",
		"reference: TLS",
		"RSA and ECDSA are asymmetric.",
		`<span class="status open">`,
	} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in rendered report", fragment)
		}
	}
}

// TestRenderHTMLEscapesContent verifies user content cannot inject markup.
func TestRenderHTMLEscapesContent(t *testing.T) {
	data := Data{
		Quiz: quizservice.Progress{QuizID: "q1", Name: "<script>alert(1)</script>"},
		Problems: []quizservice.Problem{{
			Question: quizservice.Question{
				Number: 1,
				Text:   "a < b && b > c?",
				Kind:   quizservice.KindShortAnswer,
			},
			Status:     quizservice.StatusCorrect,
			UserAnswer: []string{"<img src=x>"},
		}},
	}
	html, err := RenderHTML(data)
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Fatalf("expected quiz name to be escaped")
	}
	if strings.Contains(html, "<img src=x>") {
		t.Fatalf("expected user answer to be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag in output")
	}
}

// TestWriteFile verifies the report lands on disk.
func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	if err := WriteFile(path, sampleData()); err != nil {
		t.Fatalf("write report: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(content), "<!doctype html>") {
		t.Fatalf("expected html document on disk")
	}
}
