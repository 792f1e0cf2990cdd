package quiz

import (
	"testing"

	"recall/pkg/quizservice"
)

// TestMarkForTable enumerates every state and membership combination.
func TestMarkForTable(t *testing.T) {
	cases := []struct {
		name      string
		state     State
		selected  bool
		canonical bool
		want      Mark
	}{
		{name: "open_unselected", state: StateNotAnswered, selected: false, canonical: false, want: MarkNeutral},
		{name: "open_unselected_canonical", state: StateNotAnswered, selected: false, canonical: true, want: MarkNeutral},
		{name: "open_selected", state: StateNotAnswered, selected: true, canonical: false, want: MarkSelected},
		{name: "open_selected_canonical", state: StateNotAnswered, selected: true, canonical: true, want: MarkSelected},
		{name: "locked_untouched", state: StateAnswered, selected: false, canonical: false, want: MarkNeutral},
		{name: "locked_missed", state: StateAnswered, selected: false, canonical: true, want: MarkMissing},
		{name: "locked_wrong", state: StateAnswered, selected: true, canonical: false, want: MarkWrong},
		{name: "locked_correct", state: StateAnswered, selected: true, canonical: true, want: MarkCorrect},
	}
	for _, tc := range cases {
		if got := MarkFor(tc.state, tc.selected, tc.canonical); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

// TestMarkChoicesMultiAnswer verifies per-choice classification after grading.
func TestMarkChoicesMultiAnswer(t *testing.T) {
	q := multiAnswerQuestion()
	marks := MarkChoices(q, StateAnswered, NewChoiceSet("A", "D"))
	want := map[string]Mark{"A": MarkCorrect, "B": MarkNeutral, "C": MarkMissing, "D": MarkWrong}
	if len(marks) != len(q.Choices) {
		t.Fatalf("expected %d marks, got %d", len(q.Choices), len(marks))
	}
	for _, mark := range marks {
		if mark.Mark != want[mark.Choice.Letter] {
			t.Fatalf("choice %s: expected %s, got %s", mark.Choice.Letter, want[mark.Choice.Letter], mark.Mark)
		}
	}
}

// TestMarkChoicesShortAnswer verifies questions without choices have no marks.
func TestMarkChoicesShortAnswer(t *testing.T) {
	q := quizservice.Question{Number: 9, Kind: quizservice.KindShortAnswer, Text: "define ACL"}
	if marks := MarkChoices(q, StateAnswered, NewChoiceSet()); marks != nil {
		t.Fatalf("expected no marks, got %v", marks)
	}
}
