package quizservice

import "context"

// Service is the client-facing API a quiz session depends on.
type Service interface {
	Progress(ctx context.Context, quizID string) (Progress, error)
	Question(ctx context.Context, quizID string, index int) (Problem, error)
	SubmitAnswer(ctx context.Context, quizID string, index int, answers []string) (Problem, error)
}
