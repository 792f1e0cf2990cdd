package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"recall/internal/quiz"
	"recall/pkg/quizservice"
)

const pageCSS = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:48rem;padding:0 1rem;color:#1f2328}
h1{margin-bottom:0.25rem}
.meta{color:#57606a;margin-top:0}
.summary{background:#f6f8fa;border:1px solid #d0d7de;border-radius:6px;padding:0.75rem 1rem;margin:1rem 0}
.problems{padding-left:1.5rem}
.problem{margin:1.5rem 0}
.problem h2{font-size:1.05rem;margin-bottom:0.25rem}
.kind{font-size:0.8rem;color:#57606a;font-weight:normal;margin-left:0.5rem}
.status{font-size:0.8rem;font-weight:normal;margin-left:0.5rem;padding:0.1rem 0.4rem;border-radius:6px}
.status.correct{background:#dafbe1;color:#1a7f37}
.status.wrong{background:#ffebe9;color:#cf222e}
.status.open{background:#f6f8fa;color:#57606a}
.choices{list-style:none;padding-left:0.5rem}
.choice{padding:0.1rem 0}
.choice.correct{color:#1a7f37;font-weight:600}
.choice.wrong{color:#cf222e;text-decoration:line-through}
.choice.missing{color:#9a6700;font-weight:600}
.choice.selected{color:#0969da}
.choice.neutral{color:inherit}
.answer,.reference{margin:0.25rem 0;color:#1f2328}
.explain{background:#fff8c5;border-radius:6px;padding:0.5rem 0.75rem;margin:0.5rem 0}`

// Page builds the full report document as a component.
func Page(data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>`)
		out.text(data.Quiz.Name)
		out.raw(`</title><style>`)
		out.raw(pageCSS)
		out.raw(`</style></head><body><main>`)
		writeHeader(out, data.Quiz)
		writeSummary(out, data.Stats())
		out.raw(`<ol class="problems">`)
		for _, problem := range data.Problems {
			writeProblem(out, problem)
		}
		out.raw(`</ol></main></body></html>`)
		return out.err
	})
}

func writeHeader(out *htmlWriter, progress quizservice.Progress) {
	out.raw(`<h1>`)
	out.text(progress.Name)
	out.raw(`</h1><p class="meta">quiz `)
	out.text(progress.QuizID)
	if len(progress.TopicIDs) > 0 {
		out.raw(`, topics `)
		out.text(strings.Join(progress.TopicIDs, ", "))
	}
	if !progress.CreatedAt.IsZero() {
		out.raw(`, created `)
		out.text(formatTime(progress.CreatedAt))
	}
	out.raw(`</p>`)
}

func writeSummary(out *htmlWriter, stats Stats) {
	out.raw(`<section class="summary">`)
	out.rawf("answered %d of %d", stats.Answered, stats.Total)
	out.rawf(", %d correct", stats.Correct)
	if stats.Answered > 0 {
		out.raw(`, accuracy `)
		out.text(formatAccuracy(stats.Accuracy()))
	}
	out.raw(`</section>`)
}

func writeProblem(out *htmlWriter, problem quizservice.Problem) {
	question := problem.Question
	statusLabel, statusClass := formatStatus(problem.Status)

	out.raw(`<li class="problem"><h2>`)
	out.rawf("Q%d", question.Number)
	out.raw(`<span class="kind">`)
	out.text(formatKind(question.Kind))
	out.raw(`</span><span class="status `)
	out.raw(statusClass)
	out.raw(`">`)
	out.text(statusLabel)
	out.raw(`</span></h2><p class="text">`)
	out.text(question.Text)
	out.raw(`</p>`)

	writeChoices(out, problem)
	writeAnswerLines(out, problem)

	if problem.Answered() && question.Explanation != "" {
		out.raw(`<p class="explain">`)
		out.text(question.Explanation)
		out.raw(`</p>`)
	}
	out.raw(`</li>`)
}

func writeChoices(out *htmlWriter, problem quizservice.Problem) {
	state := quiz.StateNotAnswered
	if problem.Answered() {
		state = quiz.StateAnswered
	}
	marks := quiz.MarkChoices(problem.Question, state, quiz.NewChoiceSet(problem.UserAnswer...))
	if len(marks) == 0 {
		return
	}
	out.raw(`<ul class="choices">`)
	for _, mark := range marks {
		out.raw(`<li class="choice `)
		out.raw(string(mark.Mark))
		out.raw(`">`)
		out.text(mark.Choice.Letter + ". " + mark.Choice.Text)
		out.raw(`</li>`)
	}
	out.raw(`</ul>`)
}

func writeAnswerLines(out *htmlWriter, problem quizservice.Problem) {
	if !problem.Answered() {
		return
	}
	question := problem.Question
	if question.Kind == quizservice.KindShortAnswer {
		if len(problem.UserAnswer) > 0 {
			out.raw(`<p class="answer">your answer: `)
			out.text(strings.Join(problem.UserAnswer, " "))
			out.raw(`</p>`)
		}
		if len(question.Answer) > 0 {
			out.raw(`<p class="reference">reference: `)
			out.text(strings.Join(question.Answer, " "))
			out.raw(`</p>`)
		}
		return
	}
	if len(problem.UserAnswer) > 0 {
		out.raw(`<p class="answer">your answer: `)
		out.text(strings.Join(problem.UserAnswer, ", "))
		out.raw(`</p>`)
	}
}

// htmlWriter accumulates the first write error so component code stays flat.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (out *htmlWriter) raw(s string) {
	if out.err == nil {
		_, out.err = io.WriteString(out.w, s)
	}
}

func (out *htmlWriter) rawf(format string, args ...interface{}) {
	if out.err == nil {
		_, out.err = fmt.Fprintf(out.w, format, args...)
	}
}

func (out *htmlWriter) text(s string) {
	out.raw(templ.EscapeString(s))
}
