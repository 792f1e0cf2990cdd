// Package server implements the quiz service: quiz assembly from topic banks,
// problem serving, grading, and the wrong-answer collection quiz. The HTTP
// layer in handler.go exposes it; pkg/quizservice/local embeds it in-process.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"recall/internal/quiz"
	"recall/internal/store"
	"recall/pkg/quizservice"
)

// WrongAnswersQuizName is the display name of the wrong-answer collection.
const WrongAnswersQuizName = "wrong answers"

// Config wires dependencies for the Core.
type Config struct {
	// Store persists topics and quizzes. Required.
	Store store.Store
	// Now supplies timestamps. Defaults to time.Now.
	Now func() time.Time
	// Shuffle permutes n elements via swap when sampling questions.
	// Defaults to math/rand; tests inject a deterministic version.
	Shuffle func(n int, swap func(i, j int))
}

// Core is the quiz service backend.
type Core struct {
	store   store.Store
	nowFn   func() time.Time
	shuffle func(n int, swap func(i, j int))
}

// New builds a Core on the given store.
func New(cfg Config) (*Core, error) {
	if cfg.Store == nil {
		return nil, errors.New("server: store is required")
	}
	core := &Core{store: cfg.Store, nowFn: cfg.Now, shuffle: cfg.Shuffle}
	if core.nowFn == nil {
		core.nowFn = time.Now
	}
	if core.shuffle == nil {
		core.shuffle = rand.Shuffle
	}
	return core, nil
}

// Topics lists the imported topic banks.
func (c *Core) Topics(ctx context.Context) ([]quizservice.TopicInfo, error) {
	return c.store.ListTopics(ctx)
}

// Topic returns one full topic bank.
func (c *Core) Topic(ctx context.Context, id string) (quizservice.Topic, error) {
	topic, err := c.store.GetTopic(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return quizservice.Topic{}, fmt.Errorf("%w: %q", quizservice.ErrUnknownTopic, id)
		}
		return quizservice.Topic{}, fmt.Errorf("load topic %q: %w", id, err)
	}
	return topic, nil
}

// ImportTopics stores every topic in the batch, replacing existing ones.
func (c *Core) ImportTopics(ctx context.Context, topics []quizservice.Topic) (quizservice.ImportResult, error) {
	var result quizservice.ImportResult
	for _, topic := range topics {
		if topic.ID == "" {
			return quizservice.ImportResult{}, fmt.Errorf("%w: topic without id", quizservice.ErrInvalidParams)
		}
		if err := c.store.PutTopic(ctx, topic); err != nil {
			return quizservice.ImportResult{}, fmt.Errorf("import topic %q: %w", topic.ID, err)
		}
		result.Topics++
		result.Questions += len(topic.Questions)
	}
	result.OK = true
	return result, nil
}

// CreateQuiz assembles a quiz from the requested topics and stores it.
// Questions are de-duplicated by number (first position kept, last payload
// wins). A question limit samples randomly before truncating; unless Shuffle
// is set the final order is sorted by question number.
func (c *Core) CreateQuiz(ctx context.Context, params quizservice.NewQuizParams) (quizservice.Progress, error) {
	if len(params.Topics) == 0 {
		return quizservice.Progress{}, fmt.Errorf("%w: no topics requested", quizservice.ErrInvalidParams)
	}
	if params.MaxQuestions < 0 {
		return quizservice.Progress{}, fmt.Errorf("%w: negative question limit", quizservice.ErrInvalidParams)
	}
	topicIDs, err := c.resolveTopics(ctx, params.Topics)
	if err != nil {
		return quizservice.Progress{}, err
	}

	var questions []quizservice.Question
	for _, id := range topicIDs {
		topic, err := c.Topic(ctx, id)
		if err != nil {
			return quizservice.Progress{}, err
		}
		questions = append(questions, topic.Questions...)
	}
	questions = dedupeByNumber(questions)

	if params.MaxQuestions > 0 {
		c.shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
		if params.MaxQuestions < len(questions) {
			questions = questions[:params.MaxQuestions]
		}
	}
	if !params.Shuffle {
		sort.Slice(questions, func(i, j int) bool {
			return questions[i].Number < questions[j].Number
		})
	}

	id := uuid.NewString()
	name := params.Name
	if name == "" {
		name = "quiz:" + id
	}
	record := store.Quiz{
		ID:        id,
		Name:      name,
		TopicIDs:  questionTopicIDs(questions, topicIDs),
		CreatedAt: c.nowFn().UTC(),
		Problems:  make([]quizservice.Problem, 0, len(questions)),
	}
	for _, q := range questions {
		record.Problems = append(record.Problems, quizservice.Problem{
			Question: q,
			Status:   quizservice.StatusNotAnswered,
		})
	}
	if err := c.store.SaveQuiz(ctx, record); err != nil {
		return quizservice.Progress{}, fmt.Errorf("save quiz: %w", err)
	}
	return record.Progress(), nil
}

// Progress returns the progress view of one quiz.
func (c *Core) Progress(ctx context.Context, quizID string) (quizservice.Progress, error) {
	record, err := c.loadQuiz(ctx, quizID)
	if err != nil {
		return quizservice.Progress{}, err
	}
	return record.Progress(), nil
}

// Problem returns one quiz slot with its full question payload. The canonical
// answer and explanation always ship; grading happens client-side too.
func (c *Core) Problem(ctx context.Context, quizID string, index int) (quizservice.Problem, error) {
	record, err := c.loadQuiz(ctx, quizID)
	if err != nil {
		return quizservice.Problem{}, err
	}
	if index < 0 || index >= record.Size() {
		return quizservice.Problem{}, fmt.Errorf("%w: index %d", quizservice.ErrProblemNotFound, index)
	}
	return record.Problems[index], nil
}

// Problems returns every slot of a quiz.
func (c *Core) Problems(ctx context.Context, quizID string) ([]quizservice.Problem, error) {
	record, err := c.loadQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return record.Problems, nil
}

// Answer grades and records an answer for one open slot. Incorrect answers
// are merged into the wrong-answer quiz after the graded quiz is saved, so
// missing a question inside the collection itself re-queues a fresh copy
// instead of losing the update.
func (c *Core) Answer(ctx context.Context, quizID string, index int, answers []string) (quizservice.Problem, error) {
	record, err := c.loadQuiz(ctx, quizID)
	if err != nil {
		return quizservice.Problem{}, err
	}
	if index < 0 || index >= record.Size() {
		return quizservice.Problem{}, fmt.Errorf("%w: index %d", quizservice.ErrProblemNotFound, index)
	}
	problem := record.Problems[index]
	if problem.Answered() {
		return quizservice.Problem{}, fmt.Errorf("%w: problem %d", quizservice.ErrAlreadyAnswered, index)
	}
	correct, err := quiz.GradeAnswer(problem.Question, answers)
	if err != nil {
		return quizservice.Problem{}, err
	}

	problem.Status = quizservice.StatusIncorrect
	if correct {
		problem.Status = quizservice.StatusCorrect
	}
	problem.UserAnswer = append([]string(nil), answers...)
	record.Problems[index] = problem

	now := c.nowFn().UTC()
	if record.BegunAt == nil {
		record.BegunAt = &now
	}
	record.UpdatedAt = &now
	if record.Done() {
		record.DoneAt = &now
	}
	if err := c.store.SaveQuiz(ctx, record); err != nil {
		return quizservice.Problem{}, fmt.Errorf("save quiz: %w", err)
	}

	if !correct {
		if err := c.recordWrongAnswer(ctx, problem.Question); err != nil {
			return quizservice.Problem{}, fmt.Errorf("update wrong-answer quiz: %w", err)
		}
	}
	return problem, nil
}

// resolveTopics expands the all-topics selector.
func (c *Core) resolveTopics(ctx context.Context, requested []string) ([]string, error) {
	for _, id := range requested {
		if id == quizservice.AllTopicsSelector {
			ids, err := c.store.TopicIDs(ctx)
			if err != nil {
				return nil, fmt.Errorf("list topics: %w", err)
			}
			return ids, nil
		}
	}
	return requested, nil
}

// recordWrongAnswer merges a missed question into the wrong-answer quiz,
// creating the collection on first use.
func (c *Core) recordWrongAnswer(ctx context.Context, question quizservice.Question) error {
	collection, err := c.store.GetQuiz(ctx, quizservice.WrongAnswersQuizID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		collection = store.Quiz{
			ID:        quizservice.WrongAnswersQuizID,
			Name:      WrongAnswersQuizName,
			CreatedAt: c.nowFn().UTC(),
		}
	}
	collection.Problems = mergeWrongProblem(collection.Problems, question)
	collection.TopicIDs = mergeTopicID(collection.TopicIDs, question.TopicID)
	now := c.nowFn().UTC()
	collection.UpdatedAt = &now
	return c.store.SaveQuiz(ctx, collection)
}

// mergeWrongProblem queues a fresh copy of a missed question. An open copy of
// the same question is replaced in place so repeats do not pile up; answered
// copies stay as history and the fresh copy goes to the back.
func mergeWrongProblem(problems []quizservice.Problem, question quizservice.Question) []quizservice.Problem {
	fresh := quizservice.Problem{
		Question: store.CloneQuestion(question),
		Status:   quizservice.StatusNotAnswered,
	}
	for i, p := range problems {
		if !p.Answered() && p.Question.Number == question.Number {
			problems[i] = fresh
			return problems
		}
	}
	return append(problems, fresh)
}

// mergeTopicID keeps the topic-id list sorted and unique.
func mergeTopicID(ids []string, id string) []string {
	if id == "" {
		return ids
	}
	for _, known := range ids {
		if known == id {
			return ids
		}
	}
	ids = append(ids, id)
	sort.Strings(ids)
	return ids
}

// questionTopicIDs derives quiz metadata from the sampled questions, falling
// back to the requested topics when the bank omits per-question topic ids.
func questionTopicIDs(questions []quizservice.Question, requested []string) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, q := range questions {
		if q.TopicID == "" {
			continue
		}
		if _, ok := seen[q.TopicID]; ok {
			continue
		}
		seen[q.TopicID] = struct{}{}
		ids = append(ids, q.TopicID)
	}
	if len(ids) == 0 {
		for _, id := range requested {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// dedupeByNumber keeps one question per number: the first occurrence keeps
// its position, the last occurrence supplies the payload.
func dedupeByNumber(questions []quizservice.Question) []quizservice.Question {
	position := make(map[int]int, len(questions))
	out := make([]quizservice.Question, 0, len(questions))
	for _, q := range questions {
		if at, ok := position[q.Number]; ok {
			out[at] = q
			continue
		}
		position[q.Number] = len(out)
		out = append(out, q)
	}
	return out
}

// loadQuiz maps storage misses to the service-level sentinel.
func (c *Core) loadQuiz(ctx context.Context, quizID string) (store.Quiz, error) {
	record, err := c.store.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Quiz{}, fmt.Errorf("%w: %q", quizservice.ErrQuizNotFound, quizID)
		}
		return store.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return record, nil
}
