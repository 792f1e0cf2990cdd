package quizservice

import (
	"fmt"
	"strings"
	"time"
)

// QuestionKind defines the answering semantics of a question.
type QuestionKind string

const (
	// KindSingleChoice expects exactly one choice letter.
	KindSingleChoice QuestionKind = "single_choice"
	// KindMultiAnswer expects a set of choice letters.
	KindMultiAnswer QuestionKind = "multi_answer"
	// KindShortAnswer expects free-form text.
	KindShortAnswer QuestionKind = "short_answer"
)

// Bank labels used by the original PDF-derived question corpus.
const (
	labelSingleChoice = "单项选择题"
	labelMultiAnswer  = "多项选择题"
	labelShortAnswer  = "简答题"
)

// ParseKind maps a kind token or a legacy bank label to a QuestionKind.
func ParseKind(value string) (QuestionKind, error) {
	switch strings.TrimSpace(value) {
	case string(KindSingleChoice), labelSingleChoice:
		return KindSingleChoice, nil
	case string(KindMultiAnswer), labelMultiAnswer:
		return KindMultiAnswer, nil
	case string(KindShortAnswer), labelShortAnswer:
		return KindShortAnswer, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, value)
}

// AnswerStatus tracks whether a quiz slot has been answered and how it graded.
type AnswerStatus string

const (
	// StatusNotAnswered marks a slot that has not been attempted.
	StatusNotAnswered AnswerStatus = "NOT_ANSWERED"
	// StatusCorrect marks a slot answered correctly.
	StatusCorrect AnswerStatus = "CORRECT"
	// StatusIncorrect marks a slot answered incorrectly.
	StatusIncorrect AnswerStatus = "INCORRECT"
)

// WrongAnswersQuizID names the quiz that collects incorrectly answered questions.
const WrongAnswersQuizID = "all_wrong"

// AllTopicsSelector expands to every known topic when creating a quiz.
const AllTopicsSelector = "all"

// Choice is one selectable option of a choice question.
type Choice struct {
	Letter string `json:"letter"`
	Text   string `json:"text"`
}

// Question is a bank question. Answer holds the canonical choice letters for
// choice kinds and optional reference text for short answers; it always ships
// with the payload so clients can grade locally.
type Question struct {
	Number      int          `json:"number"`
	Text        string       `json:"text"`
	Kind        QuestionKind `json:"kind"`
	Choices     []Choice     `json:"choices,omitempty"`
	Answer      []string     `json:"answer,omitempty"`
	Explanation string       `json:"explain,omitempty"`
	TopicID     string       `json:"topic_id,omitempty"`
	Revision    string       `json:"revision,omitempty"`
}

// Problem is one quiz slot: a question plus its answer state.
type Problem struct {
	Question   Question     `json:"question"`
	Status     AnswerStatus `json:"status"`
	UserAnswer []string     `json:"user_answer"`
}

// Answered reports whether the slot has reached a terminal status.
func (p Problem) Answered() bool {
	return p.Status != StatusNotAnswered && p.Status != ""
}

// Progress is the quiz summary served to clients. CurrentIndex is the first
// unanswered slot, or -1 once every slot is answered.
type Progress struct {
	QuizID       string     `json:"quiz_id"`
	Name         string     `json:"name"`
	TopicIDs     []string   `json:"topic_ids"`
	Size         int        `json:"size"`
	CurrentIndex int        `json:"current_index"`
	Done         bool       `json:"is_done"`
	CreatedAt    time.Time  `json:"create_time"`
	UpdatedAt    *time.Time `json:"update_time,omitempty"`
	BegunAt      *time.Time `json:"begin_time,omitempty"`
	DoneAt       *time.Time `json:"done_time,omitempty"`
}

// NewQuizParams selects and orders bank questions for a new quiz. A
// MaxQuestions of zero means no limit; sampling shuffles before truncating,
// and the Shuffle flag controls whether the final order stays shuffled or is
// sorted by question number.
type NewQuizParams struct {
	Topics       []string `json:"topics"`
	Shuffle      bool     `json:"shuffle"`
	MaxQuestions int      `json:"total_question,omitempty"`
	Name         string   `json:"name,omitempty"`
}

// Topic groups bank questions under one subject.
type Topic struct {
	ID        string     `json:"topic_id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// TopicInfo is the listing view of a topic.
type TopicInfo struct {
	ID            string `json:"topic_id"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// ImportResult reports what an admin bank import stored.
type ImportResult struct {
	OK        bool `json:"ok"`
	Topics    int  `json:"topics"`
	Questions int  `json:"questions"`
}
