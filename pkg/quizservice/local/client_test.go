package local

import (
	"context"
	"errors"
	"testing"
	"time"

	"recall/internal/store/memory"
	"recall/pkg/quizservice"
)

// TestNewFromStorePlaysQuiz verifies the in-process client runs a full quiz.
func TestNewFromStorePlaysQuiz(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		ctx := context.Background()
		client, err := NewFromStore(memory.New())
		if err != nil {
			t.Fatalf("create client: %v", err)
		}
		result, err := client.ImportTopics(ctx, []quizservice.Topic{{
			ID:   "net",
			Name: "Networking",
			Questions: []quizservice.Question{{
				Number: 1,
				Text:   "Default HTTPS port?",
				Kind:   quizservice.KindSingleChoice,
				Choices: []quizservice.Choice{
					{Letter: "A", Text: "80"},
					{Letter: "B", Text: "443"},
				},
				Answer: []string{"B"},
			}},
		}})
		if err != nil {
			t.Fatalf("import: %v", err)
		}
		if !result.OK || result.Questions != 1 {
			t.Fatalf("unexpected import result: %+v", result)
		}

		quiz, err := client.CreateQuiz(ctx, quizservice.NewQuizParams{Topics: []string{"net"}})
		if err != nil {
			t.Fatalf("create quiz: %v", err)
		}
		if quiz.Size != 1 || quiz.CurrentIndex != 0 {
			t.Fatalf("unexpected quiz: %+v", quiz)
		}

		problem, err := client.Question(ctx, quiz.QuizID, 0)
		if err != nil {
			t.Fatalf("question: %v", err)
		}
		if problem.Question.Number != 1 || len(problem.Question.Answer) == 0 {
			t.Fatalf("question payload must carry the canonical answer: %+v", problem)
		}

		graded, err := client.SubmitAnswer(ctx, quiz.QuizID, 0, []string{"B"})
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if graded.Status != quizservice.StatusCorrect {
			t.Fatalf("expected CORRECT, got %s", graded.Status)
		}

		done, err := client.Progress(ctx, quiz.QuizID)
		if err != nil {
			t.Fatalf("progress: %v", err)
		}
		if !done.Done || done.CurrentIndex != -1 {
			t.Fatalf("expected finished quiz, got %+v", done)
		}
	})
}

// TestLocalClientReportsMissingQuiz keeps sentinel errors intact in-process.
func TestLocalClientReportsMissingQuiz(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		client, err := NewFromStore(memory.New())
		if err != nil {
			t.Fatalf("create client: %v", err)
		}
		_, err = client.Progress(context.Background(), "ghost")
		if !errors.Is(err, quizservice.ErrQuizNotFound) {
			t.Fatalf("expected ErrQuizNotFound, got %v", err)
		}
	})
}

func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("test timed out")
	}
}
