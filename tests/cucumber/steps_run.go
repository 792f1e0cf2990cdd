package cucumber

import (
	"fmt"
	"os"
	"strings"

	"github.com/cucumber/godog"

	"recall/internal/cli"
)

// iRunCommand executes a CLI command for the scenario. A $QUIZ token expands
// to the quiz created earlier in the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "recall" {
		args = args[1:]
	}
	for i, arg := range args {
		if arg == "$QUIZ" {
			if s.quizID == "" {
				return fmt.Errorf("no quiz created in this scenario")
			}
			args[i] = s.quizID
		}
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// iPlayTheQuizEntering drives the plain play surface with scripted input,
// one line per action. The doc string keeps its blank lines; a trailing
// newline is added so the final line is delivered.
func (s *featureState) iPlayTheQuizEntering(doc *godog.DocString) error {
	if s.quizID == "" {
		return fmt.Errorf("no quiz created in this scenario")
	}
	return s.playQuiz(s.quizID, doc.Content+"\n")
}

// iPlayQuizEnteringNothing starts a play session with no input at all.
func (s *featureState) iPlayQuizEnteringNothing(quizID string) error {
	return s.playQuiz(quizID, "")
}

func (s *featureState) playQuiz(quizID, input string) error {
	cli.Stdin = strings.NewReader(input)
	defer func() { cli.Stdin = os.Stdin }()

	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run([]string{"play", "--quiz", quizID, "--ui", "plain"}, &s.stdout, &s.stderr)
	return nil
}
