// Package httpclient implements the quiz service interface against a remote
// quizd server.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recall/pkg/quizservice"
)

// Client talks to a quizd server over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// New constructs a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: &http.Client{}}
}

// NewWithTimeout constructs a client for the given base URL with a request timeout.
func NewWithTimeout(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type quizResponse struct {
	Quiz quizservice.Progress `json:"quiz"`
}

type problemResponse struct {
	Problem quizservice.Problem `json:"problem"`
}

type problemsResponse struct {
	Problems []quizservice.Problem `json:"problems"`
}

type topicsResponse struct {
	Topics []quizservice.TopicInfo `json:"topics"`
}

type topicResponse struct {
	Topic quizservice.Topic `json:"topic"`
}

type importRequest struct {
	Topics []quizservice.Topic `json:"topics"`
}

type answerRequest struct {
	Answers []string `json:"answers"`
}

// Progress fetches the progress view of a quiz.
func (c *Client) Progress(ctx context.Context, quizID string) (quizservice.Progress, error) {
	body, status, err := c.get(ctx, "/v1/quizzes/"+quizID)
	if err != nil {
		return quizservice.Progress{}, err
	}
	if status != http.StatusOK {
		return quizservice.Progress{}, decodeHTTPError(status, body)
	}
	var res quizResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.Progress{}, err
	}
	return res.Quiz, nil
}

// Question fetches one quiz slot.
func (c *Client) Question(ctx context.Context, quizID string, index int) (quizservice.Problem, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("/v1/quizzes/%s/problems/%d", quizID, index))
	if err != nil {
		return quizservice.Problem{}, err
	}
	if status != http.StatusOK {
		return quizservice.Problem{}, decodeHTTPError(status, body)
	}
	var res problemResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.Problem{}, err
	}
	return res.Problem, nil
}

// SubmitAnswer records an answer for one quiz slot.
func (c *Client) SubmitAnswer(ctx context.Context, quizID string, index int, answers []string) (quizservice.Problem, error) {
	payload, err := json.Marshal(answerRequest{Answers: answers})
	if err != nil {
		return quizservice.Problem{}, err
	}
	body, status, err := c.send(ctx, http.MethodPost, fmt.Sprintf("/v1/quizzes/%s/problems/%d/answer", quizID, index), payload)
	if err != nil {
		return quizservice.Problem{}, err
	}
	if status != http.StatusOK {
		return quizservice.Problem{}, decodeHTTPError(status, body)
	}
	var res problemResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.Problem{}, err
	}
	return res.Problem, nil
}

// CreateQuiz assembles a new quiz on the server.
func (c *Client) CreateQuiz(ctx context.Context, params quizservice.NewQuizParams) (quizservice.Progress, error) {
	payload, err := json.Marshal(params)
	if err != nil {
		return quizservice.Progress{}, err
	}
	body, status, err := c.send(ctx, http.MethodPost, "/v1/quizzes", payload)
	if err != nil {
		return quizservice.Progress{}, err
	}
	if status != http.StatusOK {
		return quizservice.Progress{}, decodeHTTPError(status, body)
	}
	var res quizResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.Progress{}, err
	}
	return res.Quiz, nil
}

// Topics lists the imported topic banks.
func (c *Client) Topics(ctx context.Context) ([]quizservice.TopicInfo, error) {
	body, status, err := c.get(ctx, "/v1/topics")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, decodeHTTPError(status, body)
	}
	var res topicsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	return res.Topics, nil
}

// Topic fetches one full topic bank.
func (c *Client) Topic(ctx context.Context, id string) (quizservice.Topic, error) {
	body, status, err := c.get(ctx, "/v1/topics/"+id)
	if err != nil {
		return quizservice.Topic{}, err
	}
	if status != http.StatusOK {
		return quizservice.Topic{}, decodeHTTPError(status, body)
	}
	var res topicResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.Topic{}, err
	}
	return res.Topic, nil
}

// Problems fetches every slot of a quiz.
func (c *Client) Problems(ctx context.Context, quizID string) ([]quizservice.Problem, error) {
	body, status, err := c.get(ctx, "/v1/quizzes/"+quizID+"/problems")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, decodeHTTPError(status, body)
	}
	var res problemsResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	return res.Problems, nil
}

// ImportTopics uploads topic banks to the server.
func (c *Client) ImportTopics(ctx context.Context, topics []quizservice.Topic) (quizservice.ImportResult, error) {
	payload, err := json.Marshal(importRequest{Topics: topics})
	if err != nil {
		return quizservice.ImportResult{}, err
	}
	body, status, err := c.send(ctx, http.MethodPut, "/v1/admin/topics", payload)
	if err != nil {
		return quizservice.ImportResult{}, err
	}
	if status != http.StatusOK {
		return quizservice.ImportResult{}, decodeHTTPError(status, body)
	}
	var res quizservice.ImportResult
	if err := json.Unmarshal(body, &res); err != nil {
		return quizservice.ImportResult{}, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, int, error) {
	return c.send(ctx, http.MethodGet, path, nil)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) ([]byte, int, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return body, resp.StatusCode, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeHTTPError turns an error body into a sentinel-wrapping error so
// callers can match with errors.Is across the HTTP boundary.
func decodeHTTPError(status int, body []byte) error {
	var resp errorResponse
	if err := json.Unmarshal(body, &resp); err == nil && resp.Error != "" {
		if sentinel, ok := sentinelForCode(resp.Error); ok {
			return fmt.Errorf("http %d: %w", status, sentinel)
		}
		return fmt.Errorf("http %d: %s", status, resp.Error)
	}
	return fmt.Errorf("http %d", status)
}

func sentinelForCode(code string) (error, bool) {
	switch code {
	case "quiz_not_found":
		return quizservice.ErrQuizNotFound, true
	case "problem_not_found":
		return quizservice.ErrProblemNotFound, true
	case "already_answered":
		return quizservice.ErrAlreadyAnswered, true
	case "invalid_answer":
		return quizservice.ErrInvalidAnswer, true
	case "unknown_topic":
		return quizservice.ErrUnknownTopic, true
	case "invalid_request":
		return quizservice.ErrInvalidParams, true
	}
	return nil, false
}
