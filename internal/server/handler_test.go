package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"recall/internal/testutil"
	"recall/pkg/quizservice"
)

func startTestServer(t *testing.T) *testutil.ServerInstance {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2026, time.May, 2, 8, 0, 0, 0, time.UTC))
	return testutil.StartServer(t, testutil.ServerConfig{Now: clock.Now})
}

func seedServer(t *testing.T, baseURL string) {
	t.Helper()
	testutil.HTTPPutTopics(t, baseURL, []quizservice.Topic{{
		ID:   "net",
		Name: "Networking",
		Questions: []quizservice.Question{
			choiceQuestion(1, "net", "first question"),
			choiceQuestion(2, "net", "second question"),
		},
	}})
}

// doRaw issues a request without failing on error statuses.
func doRaw(t *testing.T, method, url string, payload []byte) (int, []byte) {
	t.Helper()
	ctx := testutil.Context(t, 2*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
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
	return resp.StatusCode, body
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode error body %q: %v", body, err)
	}
	return payload.Error
}

// TestHTTPQuizLifecycle drives the API end to end over HTTP.
func TestHTTPQuizLifecycle(t *testing.T) {
	instance := startTestServer(t)
	seedServer(t, instance.BaseURL)

	topics := testutil.HTTPListTopics(t, instance.BaseURL)
	if len(topics) != 1 || topics[0].ID != "net" || topics[0].QuestionCount != 2 {
		t.Fatalf("unexpected topics: %+v", topics)
	}

	prog := testutil.HTTPCreateQuiz(t, instance.BaseURL, quizservice.NewQuizParams{Topics: []string{"net"}})
	if prog.Size != 2 || prog.Done {
		t.Fatalf("unexpected new quiz: %+v", prog)
	}

	fetched := testutil.HTTPGetQuiz(t, instance.BaseURL, prog.QuizID)
	if fetched.QuizID != prog.QuizID || fetched.CurrentIndex != 0 {
		t.Fatalf("unexpected fetched quiz: %+v", fetched)
	}

	problem := testutil.HTTPGetProblem(t, instance.BaseURL, prog.QuizID, 0)
	if problem.Status != quizservice.StatusNotAnswered {
		t.Fatalf("unexpected problem status: %+v", problem)
	}
	if len(problem.Question.Answer) == 0 || problem.Question.Explanation == "" {
		t.Fatalf("canonical answer must ship before answering: %+v", problem.Question)
	}

	graded := testutil.HTTPPostAnswer(t, instance.BaseURL, prog.QuizID, 0, []string{"A"})
	if graded.Status != quizservice.StatusCorrect {
		t.Fatalf("expected correct verdict: %+v", graded)
	}
	graded = testutil.HTTPPostAnswer(t, instance.BaseURL, prog.QuizID, 1, []string{"B"})
	if graded.Status != quizservice.StatusIncorrect {
		t.Fatalf("expected incorrect verdict: %+v", graded)
	}

	final := testutil.HTTPGetQuiz(t, instance.BaseURL, prog.QuizID)
	if !final.Done || final.DoneAt == nil {
		t.Fatalf("quiz should be done: %+v", final)
	}

	collection := testutil.HTTPGetQuiz(t, instance.BaseURL, quizservice.WrongAnswersQuizID)
	if collection.Size != 1 {
		t.Fatalf("missed question should be collected: %+v", collection)
	}
	missed := testutil.HTTPListProblems(t, instance.BaseURL, quizservice.WrongAnswersQuizID)
	if len(missed) != 1 || missed[0].Question.Number != 2 || missed[0].Answered() {
		t.Fatalf("unexpected collection content: %+v", missed)
	}
}

// TestHTTPErrorCodes checks the error body and status per failure mode.
func TestHTTPErrorCodes(t *testing.T) {
	instance := startTestServer(t)
	seedServer(t, instance.BaseURL)
	prog := testutil.HTTPCreateQuiz(t, instance.BaseURL, quizservice.NewQuizParams{Topics: []string{"net"}})
	testutil.HTTPPostAnswer(t, instance.BaseURL, prog.QuizID, 0, []string{"A"})

	quizURL := instance.BaseURL + "/v1/quizzes/" + prog.QuizID

	cases := []struct {
		name       string
		method     string
		url        string
		body       []byte
		wantStatus int
		wantCode   string
	}{
		{name: "missing_quiz", method: http.MethodGet, url: instance.BaseURL + "/v1/quizzes/missing", wantStatus: http.StatusNotFound, wantCode: "quiz_not_found"},
		{name: "missing_problem", method: http.MethodGet, url: quizURL + "/problems/99", wantStatus: http.StatusNotFound, wantCode: "problem_not_found"},
		{name: "bad_index", method: http.MethodGet, url: quizURL + "/problems/one", wantStatus: http.StatusNotFound, wantCode: "problem_not_found"},
		{name: "unknown_topic", method: http.MethodGet, url: instance.BaseURL + "/v1/topics/missing", wantStatus: http.StatusNotFound, wantCode: "unknown_topic"},
		{name: "already_answered", method: http.MethodPost, url: quizURL + "/problems/0/answer", body: []byte(`{"answers":["A"]}`), wantStatus: http.StatusBadRequest, wantCode: "already_answered"},
		{name: "invalid_answer", method: http.MethodPost, url: quizURL + "/problems/1/answer", body: []byte(`{"answers":["Z"]}`), wantStatus: http.StatusBadRequest, wantCode: "invalid_answer"},
		{name: "malformed_body", method: http.MethodPut, url: instance.BaseURL + "/v1/admin/topics", body: []byte(`{`), wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "unknown_field", method: http.MethodPost, url: instance.BaseURL + "/v1/quizzes", body: []byte(`{"topics":["net"],"bogus":1}`), wantStatus: http.StatusBadRequest, wantCode: "invalid_request"},
		{name: "unknown_creation_topic", method: http.MethodPost, url: instance.BaseURL + "/v1/quizzes", body: []byte(`{"topics":["missing"]}`), wantStatus: http.StatusNotFound, wantCode: "unknown_topic"},
		{name: "bare_subtree", method: http.MethodGet, url: instance.BaseURL + "/v1/quizzes/", wantStatus: http.StatusNotFound, wantCode: "not_found"},
	}
	for _, tc := range cases {
		status, body := doRaw(t, tc.method, tc.url, tc.body)
		if status != tc.wantStatus {
			t.Fatalf("%s: expected status %d, got %d (%s)", tc.name, tc.wantStatus, status, body)
		}
		if got := errorCode(t, body); got != tc.wantCode {
			t.Fatalf("%s: expected code %q, got %q", tc.name, tc.wantCode, got)
		}
	}

	if status, _ := doRaw(t, http.MethodDelete, instance.BaseURL+"/v1/topics", nil); status != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for unsupported method, got %d", status)
	}
}

// TestHTTPHealth answers readiness probes.
func TestHTTPHealth(t *testing.T) {
	instance := startTestServer(t)
	status, body := doRaw(t, http.MethodGet, instance.BaseURL+"/healthz", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var payload struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || !payload.OK {
		t.Fatalf("unexpected health body %q: %v", body, err)
	}
}
