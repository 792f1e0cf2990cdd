package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"recall/pkg/quizservice"
)

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

type importRequest struct {
	Topics []quizservice.Topic `json:"topics"`
}

type answerRequest struct {
	Answers []string `json:"answers"`
}

// HTTPPutTopics sends a PUT /v1/admin/topics request.
func HTTPPutTopics(t testing.TB, baseURL string, topics []quizservice.Topic) quizservice.ImportResult {
	t.Helper()
	data, err := json.Marshal(importRequest{Topics: topics})
	if err != nil {
		t.Fatalf("marshal topics: %v", err)
	}
	var resp quizservice.ImportResult
	body := doRequest(t, http.MethodPut, baseURL+"/v1/admin/topics", data)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode import response: %v", err)
	}
	if !resp.OK {
		t.Fatalf("topic import returned ok=false")
	}
	return resp
}

// HTTPListTopics sends a GET /v1/topics request.
func HTTPListTopics(t testing.TB, baseURL string) []quizservice.TopicInfo {
	t.Helper()
	var resp topicsResponse
	body := doRequest(t, http.MethodGet, baseURL+"/v1/topics", nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode topics response: %v", err)
	}
	return resp.Topics
}

// HTTPCreateQuiz sends a POST /v1/quizzes request.
func HTTPCreateQuiz(t testing.TB, baseURL string, params quizservice.NewQuizParams) quizservice.Progress {
	t.Helper()
	data, err := json.Marshal(params)
	if err != nil {
		t.Fatalf("marshal quiz params: %v", err)
	}
	var resp quizResponse
	body := doRequest(t, http.MethodPost, baseURL+"/v1/quizzes", data)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode quiz response: %v", err)
	}
	return resp.Quiz
}

// HTTPGetQuiz sends a GET /v1/quizzes/{id} request.
func HTTPGetQuiz(t testing.TB, baseURL, quizID string) quizservice.Progress {
	t.Helper()
	var resp quizResponse
	body := doRequest(t, http.MethodGet, baseURL+"/v1/quizzes/"+quizID, nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode quiz response: %v", err)
	}
	return resp.Quiz
}

// HTTPGetProblem sends a GET /v1/quizzes/{id}/problems/{index} request.
func HTTPGetProblem(t testing.TB, baseURL, quizID string, index int) quizservice.Problem {
	t.Helper()
	var resp problemResponse
	url := fmt.Sprintf("%s/v1/quizzes/%s/problems/%d", baseURL, quizID, index)
	body := doRequest(t, http.MethodGet, url, nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode problem response: %v", err)
	}
	return resp.Problem
}

// HTTPListProblems sends a GET /v1/quizzes/{id}/problems request.
func HTTPListProblems(t testing.TB, baseURL, quizID string) []quizservice.Problem {
	t.Helper()
	var resp problemsResponse
	body := doRequest(t, http.MethodGet, baseURL+"/v1/quizzes/"+quizID+"/problems", nil)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode problems response: %v", err)
	}
	return resp.Problems
}

// HTTPPostAnswer sends a POST /v1/quizzes/{id}/problems/{index}/answer request.
func HTTPPostAnswer(t testing.TB, baseURL, quizID string, index int, answers []string) quizservice.Problem {
	t.Helper()
	data, err := json.Marshal(answerRequest{Answers: answers})
	if err != nil {
		t.Fatalf("marshal answers: %v", err)
	}
	var resp problemResponse
	url := fmt.Sprintf("%s/v1/quizzes/%s/problems/%d/answer", baseURL, quizID, index)
	body := doRequest(t, http.MethodPost, url, data)
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode answer response: %v", err)
	}
	return resp.Problem
}

// doRequest executes an HTTP request with a JSON payload and returns the body.
func doRequest(t testing.TB, method, url string, payload []byte) []byte {
	t.Helper()
	ctx := Context(t, 2*time.Second)
	reader := bytes.NewReader(payload)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.Fatalf("unexpected status %d for %s %s: %s", resp.StatusCode, method, url, string(body))
	}
	return body
}
