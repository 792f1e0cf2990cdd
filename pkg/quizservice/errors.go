package quizservice

import "errors"

// ErrQuizNotFound indicates the service has no quiz with the requested id.
var ErrQuizNotFound = errors.New("quiz not found")

// ErrProblemNotFound indicates a question index outside the quiz.
var ErrProblemNotFound = errors.New("question not found")

// ErrAlreadyAnswered indicates a submission for a slot that is already terminal.
var ErrAlreadyAnswered = errors.New("question already answered")

// ErrInvalidAnswer indicates a submission the question cannot grade.
var ErrInvalidAnswer = errors.New("answer not acceptable")

// ErrUnsupportedKind indicates a question kind outside the closed set.
var ErrUnsupportedKind = errors.New("unsupported question kind")

// ErrUnknownTopic indicates a quiz creation request naming an absent topic.
var ErrUnknownTopic = errors.New("unknown topic")

// ErrInvalidParams indicates a malformed quiz creation or import request.
var ErrInvalidParams = errors.New("invalid parameters")
