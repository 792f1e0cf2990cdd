package bank

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"recall/pkg/quizservice"
)

// Issue captures a validation problem in a bank file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("bank validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Normalize validates a bank file and converts it to service topics. Each
// question receives a fresh revision id, matching how the original corpus
// tracked question edits.
func Normalize(file File) ([]quizservice.Topic, error) {
	collector := &issueCollector{}
	if file.Version == 0 {
		collector.add("version", "is required")
	} else if file.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", file.Version))
	}
	if len(file.Topics) == 0 {
		collector.add("topics", "must include at least one entry")
	}

	topics := make([]quizservice.Topic, 0, len(file.Topics))
	seenTopics := map[string]struct{}{}
	for i, topicSpec := range file.Topics {
		prefix := fmt.Sprintf("topics[%d]", i)
		id := strings.TrimSpace(topicSpec.ID)
		if id == "" {
			collector.add(prefix+".topic_id", "is required")
		} else if _, exists := seenTopics[id]; exists {
			collector.add(prefix+".topic_id", fmt.Sprintf("duplicate topic %q", id))
		} else {
			seenTopics[id] = struct{}{}
		}

		name := strings.TrimSpace(topicSpec.Name)
		if name == "" {
			name = id
		}

		if len(topicSpec.Questions) == 0 {
			collector.add(prefix+".questions", "must include at least one entry")
		}
		questions := make([]quizservice.Question, 0, len(topicSpec.Questions))
		seenNumbers := map[int]struct{}{}
		for j, questionSpec := range topicSpec.Questions {
			questionPrefix := fmt.Sprintf("%s.questions[%d]", prefix, j)
			if questionSpec.Number > 0 {
				if _, exists := seenNumbers[questionSpec.Number]; exists {
					collector.add(questionPrefix+".number", fmt.Sprintf("duplicate number %d", questionSpec.Number))
				} else {
					seenNumbers[questionSpec.Number] = struct{}{}
				}
			}
			question, ok := normalizeQuestion(questionSpec, questionPrefix, collector)
			if !ok {
				continue
			}
			question.TopicID = id
			question.Revision = uuid.NewString()
			questions = append(questions, question)
		}

		topics = append(topics, quizservice.Topic{ID: id, Name: name, Questions: questions})
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return topics, nil
}

func normalizeQuestion(spec QuestionSpec, prefix string, collector *issueCollector) (quizservice.Question, bool) {
	ok := true
	question := quizservice.Question{
		Number:      spec.Number,
		Text:        strings.TrimSpace(spec.Text),
		Explanation: strings.TrimSpace(spec.Explanation),
	}
	if question.Number <= 0 {
		collector.add(prefix+".number", "must be a positive integer")
		ok = false
	}
	if question.Text == "" {
		collector.add(prefix+".text", "is required")
		ok = false
	}

	kind, err := quizservice.ParseKind(spec.Kind)
	if err != nil {
		collector.add(prefix+".kind", fmt.Sprintf("unsupported kind %q", spec.Kind))
		return quizservice.Question{}, false
	}
	question.Kind = kind

	if kind == quizservice.KindShortAnswer {
		if len(spec.Choices) != 0 {
			collector.add(prefix+".choices", "must be empty for short answers")
			ok = false
		}
		// Reference text, not letters; empty entries carry no information.
		for _, answer := range spec.Answer {
			if trimmed := strings.TrimSpace(answer); trimmed != "" {
				question.Answer = append(question.Answer, trimmed)
			}
		}
		return question, ok
	}

	letters := map[string]struct{}{}
	for k, choiceSpec := range spec.Choices {
		letter := strings.ToUpper(strings.TrimSpace(choiceSpec.Letter))
		text := strings.TrimSpace(choiceSpec.Text)
		if letter == "" {
			collector.add(fmt.Sprintf("%s.choices[%d].letter", prefix, k), "is required")
			ok = false
			continue
		}
		if _, exists := letters[letter]; exists {
			collector.add(fmt.Sprintf("%s.choices[%d].letter", prefix, k), fmt.Sprintf("duplicate letter %q", letter))
			ok = false
			continue
		}
		letters[letter] = struct{}{}
		if text == "" {
			collector.add(fmt.Sprintf("%s.choices[%d].text", prefix, k), "is required")
			ok = false
		}
		question.Choices = append(question.Choices, quizservice.Choice{Letter: letter, Text: text})
	}
	if len(question.Choices) == 0 {
		collector.add(prefix+".choices", "must include at least one entry")
		ok = false
	}

	for k, answer := range spec.Answer {
		letter := strings.ToUpper(strings.TrimSpace(answer))
		if letter == "" {
			collector.add(fmt.Sprintf("%s.answer[%d]", prefix, k), "is required")
			ok = false
			continue
		}
		if _, exists := letters[letter]; !exists {
			collector.add(fmt.Sprintf("%s.answer[%d]", prefix, k), fmt.Sprintf("unknown letter %q", letter))
			ok = false
			continue
		}
		question.Answer = append(question.Answer, letter)
	}
	switch kind {
	case quizservice.KindSingleChoice:
		if len(question.Answer) != 1 {
			collector.add(prefix+".answer", "must name exactly one letter")
			ok = false
		}
	case quizservice.KindMultiAnswer:
		if len(question.Answer) == 0 {
			collector.add(prefix+".answer", "must include at least one letter")
			ok = false
		}
	}
	return question, ok
}
