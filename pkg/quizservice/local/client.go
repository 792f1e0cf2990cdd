// Package local provides an in-process quiz service backed by the server
// core, for use without a running quizd.
package local

import (
	"context"

	"recall/internal/server"
	"recall/internal/store"
	"recall/pkg/quizservice"
)

// Client implements the quiz service interface directly on a server core.
type Client struct {
	core *server.Core
}

// New wraps an existing core.
func New(core *server.Core) *Client {
	return &Client{core: core}
}

// NewFromStore builds a core over the given store and wraps it.
func NewFromStore(st store.Store) (*Client, error) {
	core, err := server.New(server.Config{Store: st})
	if err != nil {
		return nil, err
	}
	return &Client{core: core}, nil
}

// Progress fetches the progress view of a quiz.
func (c *Client) Progress(ctx context.Context, quizID string) (quizservice.Progress, error) {
	return c.core.Progress(ctx, quizID)
}

// Question fetches one quiz slot.
func (c *Client) Question(ctx context.Context, quizID string, index int) (quizservice.Problem, error) {
	return c.core.Problem(ctx, quizID, index)
}

// SubmitAnswer records an answer for one quiz slot.
func (c *Client) SubmitAnswer(ctx context.Context, quizID string, index int, answers []string) (quizservice.Problem, error) {
	return c.core.Answer(ctx, quizID, index, answers)
}

// CreateQuiz assembles a new quiz.
func (c *Client) CreateQuiz(ctx context.Context, params quizservice.NewQuizParams) (quizservice.Progress, error) {
	return c.core.CreateQuiz(ctx, params)
}

// Topics lists the imported topic banks.
func (c *Client) Topics(ctx context.Context) ([]quizservice.TopicInfo, error) {
	return c.core.Topics(ctx)
}

// Topic fetches one full topic bank.
func (c *Client) Topic(ctx context.Context, id string) (quizservice.Topic, error) {
	return c.core.Topic(ctx, id)
}

// Problems fetches every slot of a quiz.
func (c *Client) Problems(ctx context.Context, quizID string) ([]quizservice.Problem, error) {
	return c.core.Problems(ctx, quizID)
}

// ImportTopics stores topic banks.
func (c *Client) ImportTopics(ctx context.Context, topics []quizservice.Topic) (quizservice.ImportResult, error) {
	return c.core.ImportTopics(ctx, topics)
}
