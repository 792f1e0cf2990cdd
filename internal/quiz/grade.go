package quiz

import (
	"fmt"

	"recall/pkg/quizservice"
)

// GradeAnswer grades a submission against a question's canonical answer.
// Single choice requires exactly one known letter; multi answer requires
// every letter to be known and grades by set equality, so an empty submission
// is valid but incorrect; short answers are self-graded and always correct.
func GradeAnswer(q quizservice.Question, answers []string) (bool, error) {
	switch q.Kind {
	case quizservice.KindSingleChoice:
		if len(answers) != 1 || !hasChoice(q, answers[0]) {
			return false, fmt.Errorf("%w: single choice expects one known letter", quizservice.ErrInvalidAnswer)
		}
		return len(q.Answer) == 1 && answers[0] == q.Answer[0], nil
	case quizservice.KindMultiAnswer:
		for _, letter := range answers {
			if !hasChoice(q, letter) {
				return false, fmt.Errorf("%w: unknown letter %q", quizservice.ErrInvalidAnswer, letter)
			}
		}
		return NewChoiceSet(answers...).Equal(NewChoiceSet(q.Answer...)), nil
	case quizservice.KindShortAnswer:
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", quizservice.ErrUnsupportedKind, q.Kind)
}

func hasChoice(q quizservice.Question, letter string) bool {
	for _, choice := range q.Choices {
		if choice.Letter == letter {
			return true
		}
	}
	return false
}
