package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"recall/pkg/quizservice"
)

type importRequest struct {
	Topics []quizservice.Topic `json:"topics"`
}

type answerRequest struct {
	Answers []string `json:"answers"`
}

// NewHandler builds the HTTP handler for the quiz API.
func NewHandler(core *Core) http.Handler {
	h := &handler{core: core}
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/v1/topics", h.handleTopics)
	mux.HandleFunc("/v1/topics/", h.handleTopicByID)
	mux.HandleFunc("/v1/admin/topics", h.handleAdminTopics)
	mux.HandleFunc("/v1/quizzes", h.handleQuizzes)
	mux.HandleFunc("/v1/quizzes/", h.handleQuizSubtree)
	return mux
}

type handler struct {
	core *Core
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeHealth(w, http.StatusOK, healthResponse{OK: true})
}

func (h *handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	topics, err := h.core.Topics(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeTopics(w, http.StatusOK, topicsResponse{Topics: topics})
}

func (h *handler) handleTopicByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/topics/")
	id = strings.TrimSpace(id)
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	topic, err := h.core.Topic(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeTopic(w, http.StatusOK, topicResponse{Topic: topic})
}

func (h *handler) handleAdminTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req importRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if len(req.Topics) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	result, err := h.core.ImportTopics(r.Context(), req.Topics)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeImportResult(w, http.StatusOK, result)
}

func (h *handler) handleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var params quizservice.NewQuizParams
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&params); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	prog, err := h.core.CreateQuiz(r.Context(), params)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeQuiz(w, http.StatusOK, quizResponse{Quiz: prog})
}

func (h *handler) handleQuizSubtree(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/quizzes/")
	parts := strings.Split(rest, "/")
	switch {
	case len(parts) == 1 && parts[0] != "":
		h.handleQuizProgress(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "problems":
		h.handleQuizProblems(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "problems":
		h.handleProblem(w, r, parts[0], parts[2])
	case len(parts) == 4 && parts[1] == "problems" && parts[3] == "answer":
		h.handleAnswer(w, r, parts[0], parts[2])
	default:
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (h *handler) handleQuizProgress(w http.ResponseWriter, r *http.Request, quizID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	prog, err := h.core.Progress(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeQuiz(w, http.StatusOK, quizResponse{Quiz: prog})
}

func (h *handler) handleQuizProblems(w http.ResponseWriter, r *http.Request, quizID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	problems, err := h.core.Problems(r.Context(), quizID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeProblems(w, http.StatusOK, problemsResponse{Problems: problems})
}

func (h *handler) handleProblem(w http.ResponseWriter, r *http.Request, quizID, rawIndex string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		writeError(w, http.StatusNotFound, "problem_not_found")
		return
	}
	problem, err := h.core.Problem(r.Context(), quizID, index)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeProblem(w, http.StatusOK, problemResponse{Problem: problem})
}

func (h *handler) handleAnswer(w http.ResponseWriter, r *http.Request, quizID, rawIndex string) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	index, err := strconv.Atoi(rawIndex)
	if err != nil {
		writeError(w, http.StatusNotFound, "problem_not_found")
		return
	}
	var req answerRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	problem, err := h.core.Answer(r.Context(), quizID, index, req.Answers)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeProblem(w, http.StatusOK, problemResponse{Problem: problem})
}

// writeServiceError maps service sentinels to HTTP error codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quizservice.ErrQuizNotFound):
		writeError(w, http.StatusNotFound, "quiz_not_found")
	case errors.Is(err, quizservice.ErrProblemNotFound):
		writeError(w, http.StatusNotFound, "problem_not_found")
	case errors.Is(err, quizservice.ErrUnknownTopic):
		writeError(w, http.StatusNotFound, "unknown_topic")
	case errors.Is(err, quizservice.ErrAlreadyAnswered):
		writeError(w, http.StatusBadRequest, "already_answered")
	case errors.Is(err, quizservice.ErrInvalidAnswer):
		writeError(w, http.StatusBadRequest, "invalid_answer")
	case errors.Is(err, quizservice.ErrUnsupportedKind), errors.Is(err, quizservice.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, "invalid_request")
	default:
		writeError(w, http.StatusInternalServerError, "backend_error")
	}
}
