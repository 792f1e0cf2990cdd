package cucumber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"
)

func (s *featureState) theExitCodeIsZero() error {
	if s.exitCode != 0 {
		return fmt.Errorf("exit code %d, want 0; stderr: %s", s.exitCode, s.stderr.String())
	}
	return nil
}

func (s *featureState) theExitCodeIsNonZero() error {
	if s.exitCode == 0 {
		return fmt.Errorf("exit code 0, want non-zero; stdout: %s", s.stdout.String())
	}
	return nil
}

func (s *featureState) theOutputContains(text string) error {
	if !strings.Contains(s.stdout.String(), text) {
		return fmt.Errorf("stdout does not contain %q:\n%s", text, s.stdout.String())
	}
	return nil
}

func (s *featureState) theErrorOutputContains(text string) error {
	if !strings.Contains(s.stderr.String(), text) {
		return fmt.Errorf("stderr does not contain %q:\n%s", text, s.stderr.String())
	}
	return nil
}

func (s *featureState) theOutputListsCommands(table *godog.Table) error {
	out := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			if !strings.Contains(out, cell.Value) {
				return fmt.Errorf("usage output does not mention %q:\n%s", cell.Value, out)
			}
		}
	}
	return nil
}

// theGradedChoicesRead checks that every marked choice line from the table
// appears in the transcript, marker included.
func (s *featureState) theGradedChoicesRead(table *godog.Table) error {
	out := s.stdout.String()
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			if !strings.Contains(out, cell.Value) {
				return fmt.Errorf("transcript does not contain %q:\n%s", cell.Value, out)
			}
		}
	}
	return nil
}

// theQuizIsRecordedAsDone asks the service directly; the play surface drains
// answer uploads before exiting, so by now the quiz state is settled.
func (s *featureState) theQuizIsRecordedAsDone() error {
	if s.quizID == "" {
		return fmt.Errorf("no quiz created in this scenario")
	}
	progress, err := s.core.Progress(context.Background(), s.quizID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}
	if !progress.Done {
		return fmt.Errorf("quiz %s is not done: %d/%d answered", s.quizID, progress.CurrentIndex, progress.Size)
	}
	return nil
}

func (s *featureState) theFileContains(name, text string) error {
	data, err := os.ReadFile(filepath.Join(s.workDir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if !strings.Contains(string(data), text) {
		return fmt.Errorf("%s does not contain %q", name, text)
	}
	return nil
}
