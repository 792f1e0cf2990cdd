// Package memory provides an in-process store for tests and serverless runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"recall/internal/store"
	"recall/pkg/quizservice"
)

// Store keeps topics and quizzes in maps guarded by a RWMutex. All data is
// cloned on the way in and out, so callers never share memory with the store.
type Store struct {
	mu      sync.RWMutex
	topics  map[string]quizservice.Topic
	quizzes map[string]store.Quiz
}

// New returns an empty store.
func New() *Store {
	return &Store{
		topics:  make(map[string]quizservice.Topic),
		quizzes: make(map[string]store.Quiz),
	}
}

// PutTopic inserts or replaces a topic.
func (s *Store) PutTopic(ctx context.Context, topic quizservice.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[topic.ID] = store.CloneTopic(topic)
	return nil
}

// GetTopic loads one topic.
func (s *Store) GetTopic(ctx context.Context, id string) (quizservice.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	topic, ok := s.topics[id]
	if !ok {
		return quizservice.Topic{}, fmt.Errorf("topic %q: %w", id, store.ErrNotFound)
	}
	return store.CloneTopic(topic), nil
}

// TopicIDs returns all topic ids in sorted order.
func (s *Store) TopicIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.topics))
	for id := range s.topics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// ListTopics returns summaries for all topics in sorted id order.
func (s *Store) ListTopics(ctx context.Context) ([]quizservice.TopicInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]quizservice.TopicInfo, 0, len(s.topics))
	for _, topic := range s.topics {
		infos = append(infos, quizservice.TopicInfo{
			ID:            topic.ID,
			Name:          topic.Name,
			QuestionCount: len(topic.Questions),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// SaveQuiz inserts or replaces a quiz.
func (s *Store) SaveQuiz(ctx context.Context, quiz store.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz.Clone()
	return nil
}

// GetQuiz loads one quiz.
func (s *Store) GetQuiz(ctx context.Context, id string) (store.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return store.Quiz{}, fmt.Errorf("quiz %q: %w", id, store.ErrNotFound)
	}
	return quiz.Clone(), nil
}
