package server

import (
	"encoding/json"
	"net/http"

	"recall/pkg/quizservice"
)

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	OK bool `json:"ok"`
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

func writeError(w http.ResponseWriter, status int, code string) {
	writeBytes(w, status, mustJSONError(errorResponse{Error: code}))
}

func writeHealth(w http.ResponseWriter, status int, payload healthResponse) {
	writeBytes(w, status, mustJSONHealth(payload))
}

func writeQuiz(w http.ResponseWriter, status int, payload quizResponse) {
	writeBytes(w, status, mustJSONQuiz(payload))
}

func writeProblem(w http.ResponseWriter, status int, payload problemResponse) {
	writeBytes(w, status, mustJSONProblem(payload))
}

func writeProblems(w http.ResponseWriter, status int, payload problemsResponse) {
	writeBytes(w, status, mustJSONProblems(payload))
}

func writeTopics(w http.ResponseWriter, status int, payload topicsResponse) {
	writeBytes(w, status, mustJSONTopics(payload))
}

func writeTopic(w http.ResponseWriter, status int, payload topicResponse) {
	writeBytes(w, status, mustJSONTopic(payload))
}

func writeImportResult(w http.ResponseWriter, status int, payload quizservice.ImportResult) {
	writeBytes(w, status, mustJSONImportResult(payload))
}

func writeBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func mustJSONError(payload errorResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONHealth(payload healthResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONQuiz(payload quizResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONProblem(payload problemResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONProblems(payload problemsResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONTopics(payload topicsResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONTopic(payload topicResponse) []byte {
	data, _ := json.Marshal(payload)
	return data
}

func mustJSONImportResult(payload quizservice.ImportResult) []byte {
	data, _ := json.Marshal(payload)
	return data
}
