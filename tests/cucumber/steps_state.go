package cucumber

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"

	"github.com/cucumber/godog"

	"recall/internal/cli"
	"recall/internal/server"
)

// featureState holds per-scenario state: a quiz service, a working directory
// with a client config, and the outcome of the last CLI invocation.
type featureState struct {
	service  *httptest.Server
	core     *server.Core
	baseURL  string
	workDir  string
	prevWD   string
	quizID   string
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	exitCode int
}

// InitializeScenario wires the steps to the feature state.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &featureState{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, state.reset()
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		state.cleanup()
		return ctx, nil
	})

	ctx.Step(`^a quiz service with the sample question bank$`, state.aQuizServiceWithSampleBank)
	ctx.Step(`^an empty quiz service$`, state.anEmptyQuizService)
	ctx.Step(`^a bank file "([^"]+)" containing:$`, state.aBankFileContaining)
	ctx.Step(`^a quiz over the "([^"]+)" topic$`, state.aQuizOverTopic)
	ctx.Step(`^I play the quiz entering:$`, state.iPlayTheQuizEntering)
	ctx.Step(`^I play quiz "([^"]+)" entering nothing$`, state.iPlayQuizEnteringNothing)
	ctx.Step(`^I run "([^"]+)"$`, state.iRunCommand)
	ctx.Step(`^the play exits cleanly$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is zero$`, state.theExitCodeIsZero)
	ctx.Step(`^the exit code is non-zero$`, state.theExitCodeIsNonZero)
	ctx.Step(`^the output contains "([^"]*)"$`, state.theOutputContains)
	ctx.Step(`^the error output contains "([^"]*)"$`, state.theErrorOutputContains)
	ctx.Step(`^the output lists these commands:$`, state.theOutputListsCommands)
	ctx.Step(`^the graded choices read:$`, state.theGradedChoicesRead)
	ctx.Step(`^the quiz is recorded as done on the service$`, state.theQuizIsRecordedAsDone)
	ctx.Step(`^the file "([^"]+)" contains "([^"]*)"$`, state.theFileContains)
}

// reset prepares a fresh working directory before each scenario. Commands run
// with the scenario directory as CWD so config discovery and relative paths
// behave like a real invocation.
func (s *featureState) reset() error {
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = 0
	s.quizID = ""
	s.service = nil
	s.core = nil
	s.baseURL = ""

	previous, err := os.Getwd()
	if err != nil {
		return err
	}
	s.prevWD = previous

	dir, err := os.MkdirTemp("", "recall-feature-")
	if err != nil {
		return err
	}
	s.workDir = dir
	return os.Chdir(dir)
}

// cleanup tears the scenario down: CWD, stdin seam, server, temp files.
func (s *featureState) cleanup() {
	if s.prevWD != "" {
		_ = os.Chdir(s.prevWD)
	}
	cli.Stdin = os.Stdin
	if s.service != nil {
		s.service.Close()
	}
	if s.workDir != "" {
		_ = os.RemoveAll(s.workDir)
	}
}
