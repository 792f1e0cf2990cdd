// Package store defines persistence for topics and quizzes. Backends live in
// the memory and duckdb subpackages.
package store

import (
	"context"
	"errors"
	"time"

	"recall/pkg/quizservice"
)

// ErrNotFound is returned when a topic or quiz does not exist.
var ErrNotFound = errors.New("not found")

// Store persists topics and quizzes. Implementations return private copies;
// callers may mutate results freely.
type Store interface {
	// PutTopic inserts or replaces a topic.
	PutTopic(ctx context.Context, topic quizservice.Topic) error
	// GetTopic loads one topic. Missing topics wrap ErrNotFound.
	GetTopic(ctx context.Context, id string) (quizservice.Topic, error)
	// TopicIDs returns all topic ids in sorted order.
	TopicIDs(ctx context.Context) ([]string, error)
	// ListTopics returns summaries for all topics in sorted id order.
	ListTopics(ctx context.Context) ([]quizservice.TopicInfo, error)
	// SaveQuiz inserts or replaces a quiz.
	SaveQuiz(ctx context.Context, quiz Quiz) error
	// GetQuiz loads one quiz. Missing quizzes wrap ErrNotFound.
	GetQuiz(ctx context.Context, id string) (Quiz, error)
}

// Quiz is the persisted quiz aggregate: metadata plus the full problem list.
// Progress fields are derived from the problems, never stored.
type Quiz struct {
	ID        string
	Name      string
	TopicIDs  []string
	CreatedAt time.Time
	UpdatedAt *time.Time
	BegunAt   *time.Time
	DoneAt    *time.Time
	Problems  []quizservice.Problem
}

// Size returns the number of problems.
func (q Quiz) Size() int {
	return len(q.Problems)
}

// CurrentIndex returns the index of the first unanswered problem, or -1 when
// the quiz has no open problems left.
func (q Quiz) CurrentIndex() int {
	for i, p := range q.Problems {
		if !p.Answered() {
			return i
		}
	}
	return -1
}

// Done reports whether every problem is answered.
func (q Quiz) Done() bool {
	return q.CurrentIndex() == -1
}

// Progress returns the wire-facing view of the quiz.
func (q Quiz) Progress() quizservice.Progress {
	return quizservice.Progress{
		QuizID:       q.ID,
		Name:         q.Name,
		TopicIDs:     q.TopicIDs,
		Size:         q.Size(),
		CurrentIndex: q.CurrentIndex(),
		Done:         q.Done(),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
		BegunAt:      q.BegunAt,
		DoneAt:       q.DoneAt,
	}
}

// Clone returns a deep copy safe to mutate.
func (q Quiz) Clone() Quiz {
	out := q
	out.TopicIDs = append([]string(nil), q.TopicIDs...)
	out.UpdatedAt = cloneTime(q.UpdatedAt)
	out.BegunAt = cloneTime(q.BegunAt)
	out.DoneAt = cloneTime(q.DoneAt)
	if q.Problems != nil {
		out.Problems = make([]quizservice.Problem, len(q.Problems))
		for i, p := range q.Problems {
			out.Problems[i] = CloneProblem(p)
		}
	}
	return out
}

// CloneProblem returns a deep copy of a problem.
func CloneProblem(p quizservice.Problem) quizservice.Problem {
	out := p
	out.Question = CloneQuestion(p.Question)
	out.UserAnswer = append([]string(nil), p.UserAnswer...)
	return out
}

// CloneQuestion returns a deep copy of a question.
func CloneQuestion(q quizservice.Question) quizservice.Question {
	out := q
	out.Choices = append([]quizservice.Choice(nil), q.Choices...)
	out.Answer = append([]string(nil), q.Answer...)
	return out
}

// CloneTopic returns a deep copy of a topic.
func CloneTopic(t quizservice.Topic) quizservice.Topic {
	out := t
	if t.Questions != nil {
		out.Questions = make([]quizservice.Question, len(t.Questions))
		for i, q := range t.Questions {
			out.Questions[i] = CloneQuestion(q)
		}
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}
