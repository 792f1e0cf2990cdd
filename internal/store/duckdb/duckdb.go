// Package duckdb persists topics and quizzes in a DuckDB database file.
package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"recall/internal/store"
	"recall/pkg/quizservice"
)

// schemaDDL holds the DuckDB schema definition.
//
//go:embed schema.sql
var schemaDDL string

// SchemaDDL returns the schema DDL applied to new databases.
func SchemaDDL() string {
	return schemaDDL
}

// Store is a DuckDB-backed store.Store.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating it and applying the schema when
// needed. An empty path opens an in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// PutTopic inserts or replaces a topic.
func (s *Store) PutTopic(ctx context.Context, topic quizservice.Topic) error {
	questions, err := json.Marshal(topic.Questions)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO topics (topic_id, name, questions, imported_at)
		 VALUES (?, ?, ?, now())
		 ON CONFLICT (topic_id) DO UPDATE SET
		     name = excluded.name,
		     questions = excluded.questions,
		     imported_at = now()`,
		topic.ID,
		topic.Name,
		string(questions),
	); err != nil {
		return fmt.Errorf("upsert topic: %w", err)
	}
	return nil
}

// GetTopic loads one topic.
func (s *Store) GetTopic(ctx context.Context, id string) (quizservice.Topic, error) {
	var (
		topic     quizservice.Topic
		questions string
	)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT topic_id, name, questions FROM topics WHERE topic_id = ?`,
		id,
	)
	if err := row.Scan(&topic.ID, &topic.Name, &questions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return quizservice.Topic{}, fmt.Errorf("topic %q: %w", id, store.ErrNotFound)
		}
		return quizservice.Topic{}, fmt.Errorf("load topic: %w", err)
	}
	if err := json.Unmarshal([]byte(questions), &topic.Questions); err != nil {
		return quizservice.Topic{}, fmt.Errorf("decode questions for topic %q: %w", id, err)
	}
	return topic, nil
}

// TopicIDs returns all topic ids in sorted order.
func (s *Store) TopicIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic_id FROM topics ORDER BY topic_id`)
	if err != nil {
		return nil, fmt.Errorf("list topic ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan topic id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list topic ids: %w", err)
	}
	return ids, nil
}

// ListTopics returns summaries for all topics in sorted id order.
func (s *Store) ListTopics(ctx context.Context) ([]quizservice.TopicInfo, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT topic_id, name, questions FROM topics ORDER BY topic_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()
	var infos []quizservice.TopicInfo
	for rows.Next() {
		var (
			info      quizservice.TopicInfo
			questions string
		)
		if err := rows.Scan(&info.ID, &info.Name, &questions); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		var decoded []quizservice.Question
		if err := json.Unmarshal([]byte(questions), &decoded); err != nil {
			return nil, fmt.Errorf("decode questions for topic %q: %w", info.ID, err)
		}
		info.QuestionCount = len(decoded)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	return infos, nil
}

// SaveQuiz inserts or replaces a quiz.
func (s *Store) SaveQuiz(ctx context.Context, quiz store.Quiz) error {
	topicIDs, err := json.Marshal(quiz.TopicIDs)
	if err != nil {
		return fmt.Errorf("encode topic ids: %w", err)
	}
	problems, err := json.Marshal(quiz.Problems)
	if err != nil {
		return fmt.Errorf("encode problems: %w", err)
	}
	if _, err := s.db.ExecContext(
		ctx,
		`INSERT INTO quizzes (quiz_id, name, topic_ids, problems, create_time, update_time, begin_time, done_time)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (quiz_id) DO UPDATE SET
		     name = excluded.name,
		     topic_ids = excluded.topic_ids,
		     problems = excluded.problems,
		     update_time = excluded.update_time,
		     begin_time = excluded.begin_time,
		     done_time = excluded.done_time`,
		quiz.ID,
		quiz.Name,
		string(topicIDs),
		string(problems),
		quiz.CreatedAt,
		quiz.UpdatedAt,
		quiz.BegunAt,
		quiz.DoneAt,
	); err != nil {
		return fmt.Errorf("upsert quiz: %w", err)
	}
	return nil
}

// GetQuiz loads one quiz.
func (s *Store) GetQuiz(ctx context.Context, id string) (store.Quiz, error) {
	var (
		quiz     store.Quiz
		topicIDs string
		problems string
		updated  sql.NullTime
		begun    sql.NullTime
		done     sql.NullTime
	)
	row := s.db.QueryRowContext(
		ctx,
		`SELECT quiz_id, name, topic_ids, problems, create_time, update_time, begin_time, done_time
		 FROM quizzes WHERE quiz_id = ?`,
		id,
	)
	if err := row.Scan(&quiz.ID, &quiz.Name, &topicIDs, &problems, &quiz.CreatedAt, &updated, &begun, &done); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Quiz{}, fmt.Errorf("quiz %q: %w", id, store.ErrNotFound)
		}
		return store.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	if err := json.Unmarshal([]byte(topicIDs), &quiz.TopicIDs); err != nil {
		return store.Quiz{}, fmt.Errorf("decode topic ids for quiz %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(problems), &quiz.Problems); err != nil {
		return store.Quiz{}, fmt.Errorf("decode problems for quiz %q: %w", id, err)
	}
	quiz.UpdatedAt = nullableTime(updated)
	quiz.BegunAt = nullableTime(begun)
	quiz.DoneAt = nullableTime(done)
	return quiz, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}
