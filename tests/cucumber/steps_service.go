package cucumber

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"recall/internal/server"
	"recall/internal/store/memory"
	"recall/pkg/quizservice"
)

// sampleBank is the fixture used by the play scenarios: one topic per
// question kind, with distinct question numbers across topics.
func sampleBank() []quizservice.Topic {
	return []quizservice.Topic{
		{
			ID:   "ports",
			Name: "Well-known ports",
			Questions: []quizservice.Question{
				{
					Number: 1,
					Text:   "Which port does HTTPS use by default?",
					Kind:   quizservice.KindSingleChoice,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "80"},
						{Letter: "B", Text: "443"},
						{Letter: "C", Text: "8080"},
					},
					Answer:      []string{"B"},
					Explanation: "HTTPS defaults to TCP port 443.",
					TopicID:     "ports",
					Revision:    "rev-ports-1",
				},
			},
		},
		{
			ID:   "ciphers",
			Name: "Symmetric ciphers",
			Questions: []quizservice.Question{
				{
					Number: 2,
					Text:   "Which of these are symmetric ciphers?",
					Kind:   quizservice.KindMultiAnswer,
					Choices: []quizservice.Choice{
						{Letter: "A", Text: "AES"},
						{Letter: "B", Text: "RSA"},
						{Letter: "C", Text: "ChaCha20"},
						{Letter: "D", Text: "ECDSA"},
					},
					Answer:   []string{"A", "C"},
					TopicID:  "ciphers",
					Revision: "rev-ciphers-1",
				},
			},
		},
		{
			ID:   "protocols",
			Name: "Secure protocols",
			Questions: []quizservice.Question{
				{
					Number:   3,
					Text:     "Which protocol secures HTTP?",
					Kind:     quizservice.KindShortAnswer,
					Answer:   []string{"TLS"},
					TopicID:  "protocols",
					Revision: "rev-protocols-1",
				},
			},
		},
	}
}

// startService boots an in-memory quiz service and drops a client config
// into the scenario working directory so commands find it by discovery.
func (s *featureState) startService() error {
	core, err := server.New(server.Config{Store: memory.New()})
	if err != nil {
		return fmt.Errorf("build core: %w", err)
	}
	s.core = core
	s.service = httptest.NewServer(server.NewHandler(core))
	s.baseURL = s.service.URL

	config := fmt.Sprintf("version: 1\nserver:\n  url: %s\n", s.baseURL)
	path := filepath.Join(s.workDir, ".recall.yml")
	if err := os.WriteFile(path, []byte(config), 0o644); err != nil {
		return fmt.Errorf("write client config: %w", err)
	}
	return nil
}

func (s *featureState) anEmptyQuizService() error {
	return s.startService()
}

func (s *featureState) aQuizServiceWithSampleBank() error {
	if err := s.startService(); err != nil {
		return err
	}
	if _, err := s.core.ImportTopics(context.Background(), sampleBank()); err != nil {
		return fmt.Errorf("import sample bank: %w", err)
	}
	return nil
}

func (s *featureState) aBankFileContaining(name string, doc *godog.DocString) error {
	path := filepath.Join(s.workDir, name)
	return os.WriteFile(path, []byte(doc.Content+"\n"), 0o644)
}

func (s *featureState) aQuizOverTopic(topic string) error {
	if s.core == nil {
		return fmt.Errorf("no quiz service running")
	}
	progress, err := s.core.CreateQuiz(context.Background(), quizservice.NewQuizParams{Topics: []string{topic}})
	if err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}
	s.quizID = progress.QuizID
	return nil
}
