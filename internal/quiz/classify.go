package quiz

import "recall/pkg/quizservice"

// Mark is the display classification of one choice.
type Mark string

const (
	// MarkNeutral renders a choice with no emphasis.
	MarkNeutral Mark = "neutral"
	// MarkSelected highlights a choice the user has picked before grading.
	MarkSelected Mark = "selected"
	// MarkCorrect flags a picked choice that is in the canonical answer.
	MarkCorrect Mark = "correct"
	// MarkWrong flags a picked choice that is not in the canonical answer.
	MarkWrong Mark = "wrong"
	// MarkMissing flags a canonical choice the user failed to pick.
	MarkMissing Mark = "missing"
)

// MarkFor classifies one choice from the attempt state and the choice's
// membership in the current selection and the canonical answer. The table is
// the same for every question kind.
func MarkFor(state State, selected, canonical bool) Mark {
	if state == StateNotAnswered {
		if selected {
			return MarkSelected
		}
		return MarkNeutral
	}
	switch {
	case selected && canonical:
		return MarkCorrect
	case selected:
		return MarkWrong
	case canonical:
		return MarkMissing
	default:
		return MarkNeutral
	}
}

// ChoiceMark pairs a rendered choice with its classification.
type ChoiceMark struct {
	Choice quizservice.Choice
	Mark   Mark
}

// MarkChoices classifies every choice of a question against a selection.
func MarkChoices(q quizservice.Question, state State, selection ChoiceSet) []ChoiceMark {
	if len(q.Choices) == 0 {
		return nil
	}
	canonical := NewChoiceSet(q.Answer...)
	marks := make([]ChoiceMark, 0, len(q.Choices))
	for _, choice := range q.Choices {
		marks = append(marks, ChoiceMark{
			Choice: choice,
			Mark:   MarkFor(state, selection.Contains(choice.Letter), canonical.Contains(choice.Letter)),
		})
	}
	return marks
}
